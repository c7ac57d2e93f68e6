package steamlang

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

// EResult is Steam's universal result code, surfaced on web responses
// through the X-eresult header.
type EResult int

//goland:noinspection GoUnusedConst
const (
	InvalidResult            EResult = 0
	OKResult                 EResult = 1
	FailResult               EResult = 2
	NoConnectionResult       EResult = 3
	InvalidPasswordResult    EResult = 5
	LoggedInElsewhereResult  EResult = 6
	InvalidParamResult       EResult = 8
	BusyResult               EResult = 10
	InvalidStateResult       EResult = 11
	AccessDeniedResult       EResult = 15
	TimeoutResult            EResult = 16
	BannedResult             EResult = 17
	AccountNotFoundResult    EResult = 18
	InvalidSteamIDResult     EResult = 19
	ServiceUnavailableResult EResult = 20
	NotLoggedOnResult        EResult = 21
	PendingResult            EResult = 22
	InsufficientPrivilege    EResult = 24
	LimitExceededResult      EResult = 25
	RevokedResult            EResult = 26
	ExpiredResult            EResult = 27
	DuplicateRequestResult   EResult = 29
	BlockedResult            EResult = 40
	IgnoredResult            EResult = 41
	NoMatchResult            EResult = 42
	AccountDisabledResult    EResult = 43
	RateLimitExceededResult  EResult = 84
	ItemDeletedResult        EResult = 86
	TwoFactorCodeMismatch    EResult = 88
	NotModifiedResult        EResult = 91
	LimitedUserAccountResult EResult = 112
)

var resultNames = map[EResult]string{
	InvalidResult:            "Invalid",
	OKResult:                 "OK",
	FailResult:               "Fail",
	NoConnectionResult:       "NoConnection",
	InvalidPasswordResult:    "InvalidPassword",
	LoggedInElsewhereResult:  "LoggedInElsewhere",
	InvalidParamResult:       "InvalidParam",
	BusyResult:               "Busy",
	InvalidStateResult:       "InvalidState",
	AccessDeniedResult:       "AccessDenied",
	TimeoutResult:            "Timeout",
	BannedResult:             "Banned",
	AccountNotFoundResult:    "AccountNotFound",
	InvalidSteamIDResult:     "InvalidSteamID",
	ServiceUnavailableResult: "ServiceUnavailable",
	NotLoggedOnResult:        "NotLoggedOn",
	PendingResult:            "Pending",
	InsufficientPrivilege:    "InsufficientPrivilege",
	LimitExceededResult:      "LimitExceeded",
	RevokedResult:            "Revoked",
	ExpiredResult:            "Expired",
	DuplicateRequestResult:   "DuplicateRequest",
	BlockedResult:            "Blocked",
	IgnoredResult:            "Ignored",
	NoMatchResult:            "NoMatch",
	AccountDisabledResult:    "AccountDisabled",
	RateLimitExceededResult:  "RateLimitExceeded",
	ItemDeletedResult:        "ItemDeleted",
	TwoFactorCodeMismatch:    "TwoFactorCodeMismatch",
	NotModifiedResult:        "NotModified",
	LimitedUserAccountResult: "LimitedUserAccount",
}

func (e EResult) String() string {
	if name, ok := resultNames[e]; ok {
		return name
	}
	return strconv.Itoa(int(e))
}

// FromResponse reads the EResult declared by a web response, or
// InvalidResult when the header is absent or unparsable.
func FromResponse(httpResponse *http.Response) EResult {
	for _, header := range httpResponse.Header.Values("X-Eresult") {
		if parsed, parseErr := strconv.ParseInt(header, 10, 64); parseErr == nil {
			return EResult(parsed)
		}
	}
	return InvalidResult
}

func EnsureSuccessResponse(response *http.Response) error {
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("request failed with status %v", response.StatusCode)
	}

	return nil
}

// EnsureEResultResponse fails when a response carries a non-OK X-eresult
// header. Responses without the header pass through.
func EnsureEResultResponse(httpResponse *http.Response) error {
	eResults, hasEResult := httpResponse.Header["X-Eresult"]
	if !hasEResult {
		return nil
	}

	eResult := InvalidResult
	for _, result := range eResults {
		if parsedResult, parseErr := strconv.ParseInt(result, 10, 64); parseErr == nil {
			eResult = EResult(parsedResult)
			break
		}
	}

	if eResult == OKResult {
		return nil
	}

	if errorMessageHeaders, ok := httpResponse.Header["X-Error_message"]; ok {
		errorMessages := make([]error, len(errorMessageHeaders))
		for i, header := range errorMessageHeaders {
			errorMessages[i] = errors.New(header)
		}

		return fmt.Errorf("steam responded with non-OK result %v: %v", eResult, errors.Join(errorMessages...))
	}

	return fmt.Errorf("steam responded with non-OK result %v", eResult)
}
