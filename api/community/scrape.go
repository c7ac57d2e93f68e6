package community

import (
	"errors"
	"regexp"
	"strconv"
)

// Trade offer pages embed state as javascript variable assignments rather
// than anything structured. Each value this package needs is extracted by a
// single narrow function here, so the fragile parsing surface stays small
// and testable without a live session.

var (
	//	var g_ulTradePartnerSteamID = '7656...'; (javascript)
	tradePartnerIdExp = regexp.MustCompile(`var g_ulTradePartnerSteamID = '(\d+)';`)
	myEscrowExp       = regexp.MustCompile(`var g_daysMyEscrow = (\d+);`)
	theirEscrowExp    = regexp.MustCompile(`var g_daysTheirEscrow = (\d+);`)
	tradeTokenExp     = regexp.MustCompile(`tradeoffer/new/\?partner=\d+(?:&|&amp;)token=([a-zA-Z0-9-_]+)`)
)

var (
	ErrNoTradePartnerId = errors.New("trade offer page contains no partner steamid assignment")
	ErrNoEscrowDays     = errors.New("trade offer page contains no escrow day assignments")
	ErrNoTradeToken     = errors.New("privacy page contains no trade offer token")
)

// scrapeTradePartnerId extracts the partner's SteamID64 string from a trade
// offer page body.
func scrapeTradePartnerId(body string) (string, error) {
	match := tradePartnerIdExp.FindStringSubmatch(body)
	if len(match) != 2 {
		return "", ErrNoTradePartnerId
	}
	return match[1], nil
}

// scrapeEscrowDays extracts both escrow durations, in days, from a trade
// offer page body. Both assignments must be present.
func scrapeEscrowDays(body string) (myDays int, theirDays int, err error) {
	myMatch := myEscrowExp.FindStringSubmatch(body)
	theirMatch := theirEscrowExp.FindStringSubmatch(body)
	if len(myMatch) != 2 || len(theirMatch) != 2 {
		return 0, 0, ErrNoEscrowDays
	}

	myDays, err = strconv.Atoi(myMatch[1])
	if err != nil {
		return 0, 0, err
	}

	theirDays, err = strconv.Atoi(theirMatch[1])
	if err != nil {
		return 0, 0, err
	}

	return myDays, theirDays, nil
}

// scrapeTradeToken extracts the account's own offer-creation token from the
// trade offers privacy page.
func scrapeTradeToken(body string) (string, error) {
	match := tradeTokenExp.FindStringSubmatch(body)
	if len(match) != 2 {
		return "", ErrNoTradeToken
	}
	return match[1], nil
}
