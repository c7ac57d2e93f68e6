package api

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/tradewind-gg/steam/api/classify"
	"github.com/tradewind-gg/steam/steamlang"
)

const BaseURL = "https://api.steampowered.com"
const CommunityURL = "https://steamcommunity.com"

// The community site serves different markup (and different trade
// eligibility checks) to non-mobile clients, so every request goes out with
// a fixed mobile-browser identity.
const mobileUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 15_4 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148"

//goland:noinspection GoUnusedConst
const JsonContentType = "application/json"
const FormContentType = "application/x-www-form-urlencoded"

// Request describes a single call against either steam surface. The
// transport owns session cookies, headers and the API key; a Request only
// declares where it goes and what it carries.
type Request interface {
	Retryable() bool
	CacheTTL() time.Duration
	RequiresApiKey() bool
	Method() string
	Url() string
	Values() (url.Values, error)
	Headers() (http.Header, error)
	EnsureResponseSuccess(httpResponse *http.Response) error
}

type Transport interface {
	CookieJar() http.CookieJar
	Send(ctx context.Context, request Request, response any) error
	Fetch(ctx context.Context, request Request) (string, error)
	HttpClient() *http.Client
}

type WebTransport struct {
	webApiKey   string
	client      *http.Client
	retryClient *retryablehttp.Client
	logger      *zap.Logger
}

type WebTransportOptions struct {
	WebApiKey     string
	ResponseCache CacheAdaptor

	// InsecureSkipVerify disables TLS certificate validation. The upstream
	// certificate chain has known quirks behind some proxies; this is an
	// explicit opt-in, never the default.
	InsecureSkipVerify bool

	Logger *zap.Logger
}

func NewTransport(options WebTransportOptions) *WebTransport {
	jar, err := cookiejar.New(nil)
	if err != nil {
		panic("Failed to create cookie jar, which should never happen as cookiejar.New does not return any errors")
	}

	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	pooledTransport := cleanhttp.DefaultPooledTransport()
	if options.InsecureSkipVerify {
		pooledTransport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	var roundTripper http.RoundTripper = pooledTransport
	if options.ResponseCache != nil {
		roundTripper = newCachingTransport(pooledTransport, options.ResponseCache, logger)
	}

	httpClient := &http.Client{
		Transport: roundTripper,
		Jar:       jar,
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = httpClient
	retryClient.Logger = nil

	return &WebTransport{
		webApiKey:   options.WebApiKey,
		client:      httpClient,
		retryClient: retryClient,
		logger:      logger,
	}
}

func (c *WebTransport) CookieJar() http.CookieJar {
	return c.client.Jar
}

func (c *WebTransport) HttpClient() *http.Client {
	return c.client
}

// Send executes a JSON request and unmarshals the body into response. API
// marker rules (key denial, success != 1) are applied inside the round trip,
// ahead of any status interpretation; an empty body leaves response at its
// zero value.
func (c *WebTransport) Send(ctx context.Context, request Request, response any) error {
	body, err := c.roundTrip(ctx, request, true)
	if err != nil {
		return err
	}

	if response == nil || len(strings.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal([]byte(body), response); err != nil {
		return eris.Wrapf(err, "couldn't unmarshal steam response")
	}

	return nil
}

// Fetch executes a request against a human-facing community page and
// returns the raw document text. Classification is context dependent and is
// left to the caller.
func (c *WebTransport) Fetch(ctx context.Context, request Request) (string, error) {
	return c.roundTrip(ctx, request, false)
}

func (c *WebTransport) roundTrip(ctx context.Context, request Request, acceptJson bool) (string, error) {
	httpMethod := request.Method()

	requestValues, valuesErr := request.Values()
	if valuesErr != nil {
		return "", valuesErr
	}

	if request.RequiresApiKey() {
		if requestValues == nil {
			requestValues = make(url.Values)
		}
		requestValues.Set("key", c.webApiKey)
	}

	requestUrl := request.Url()
	var httpBody io.Reader
	if len(requestValues) > 0 {
		if httpMethod == http.MethodGet {
			if strings.Contains(requestUrl, "?") {
				requestUrl += "&"
			} else {
				requestUrl += "?"
			}
			requestUrl += requestValues.Encode()
		} else {
			httpBody = strings.NewReader(requestValues.Encode())
		}
	}

	if ttl := request.CacheTTL(); ttl > 0 && httpMethod == http.MethodGet {
		ctx = ContextWithCachingTtl(ctx, ttl)
	}

	httpRequest, httpRequestErr := http.NewRequestWithContext(ctx, httpMethod, requestUrl, httpBody)
	if httpRequestErr != nil {
		return "", httpRequestErr
	}

	httpRequest.Header.Set("User-Agent", mobileUserAgent)
	httpRequest.Header.Set("Accept-Language", "en-US,en;q=0.9")
	if acceptJson {
		httpRequest.Header.Set("Accept", JsonContentType)
	}
	if httpMethod == http.MethodPost {
		httpRequest.Header.Set("Content-Type", FormContentType)
	}

	headers, headersErr := request.Headers()
	if headersErr != nil {
		return "", headersErr
	}
	for headerKey, headerValues := range headers {
		for _, headerValue := range headerValues {
			httpRequest.Header.Add(headerKey, headerValue)
		}
	}

	httpClient := c.client
	if request.Retryable() {
		httpClient = c.retryClient.StandardClient()
	}

	httpResponse, httpResponseErr := httpClient.Do(httpRequest)
	if httpResponseErr != nil {
		return "", eris.Wrapf(httpResponseErr, "request to steam failed")
	}

	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			c.logger.Warn("error closing steam response body", zap.Error(err))
		}
	}(httpResponse.Body)

	c.logger.Debug("steam request",
		zap.String("method", httpMethod),
		zap.String("url", request.Url()),
		zap.Int("status", httpResponse.StatusCode),
	)

	responseBody, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return "", eris.Wrapf(err, "couldn't read steam response")
	}
	body := string(responseBody)

	// Body markers beat the status code: the API key denial page arrives
	// with a 403, and failing on the status first would hide the marker.
	if acceptJson {
		if err := classify.Check(body, classify.APIBody); err != nil {
			return "", err
		}
	}

	if err := request.EnsureResponseSuccess(httpResponse); err != nil {
		return "", err
	}

	if err := steamlang.EnsureEResultResponse(httpResponse); err != nil {
		return "", err
	}

	return body, nil
}
