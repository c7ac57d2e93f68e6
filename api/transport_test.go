package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/tradewind-gg/steam/api/classify"
	"github.com/tradewind-gg/steam/steamlang"
)

type testRequest struct {
	url         string
	method      string
	values      url.Values
	requiresKey bool
}

func (t testRequest) Retryable() bool         { return false }
func (t testRequest) CacheTTL() time.Duration { return 0 }
func (t testRequest) RequiresApiKey() bool    { return t.requiresKey }
func (t testRequest) Method() string          { return t.method }
func (t testRequest) Url() string             { return t.url }

func (t testRequest) Values() (url.Values, error) {
	return t.values, nil
}

func (t testRequest) Headers() (http.Header, error) {
	return nil, nil
}

func (t testRequest) EnsureResponseSuccess(httpResponse *http.Response) error {
	return steamlang.EnsureSuccessResponse(httpResponse)
}

func TestSendDecodesJsonAndAppendsKey(t *testing.T) {
	var gotQuery url.Values
	var gotUserAgent string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", JsonContentType)
		_, _ = w.Write([]byte(`{"response": {"value": 42}}`))
	}))
	defer server.Close()

	transport := NewTransport(WebTransportOptions{WebApiKey: "SECRETKEY"})

	request := testRequest{
		url:         server.URL,
		method:      http.MethodGet,
		values:      url.Values{"tradeofferid": []string{"1"}},
		requiresKey: true,
	}

	var response struct {
		Response struct {
			Value int `json:"value"`
		} `json:"response"`
	}
	if err := transport.Send(context.Background(), request, &response); err != nil {
		t.Fatal(err)
	}

	if response.Response.Value != 42 {
		t.Errorf("decoded value = %d, want 42", response.Response.Value)
	}
	if gotQuery.Get("key") != "SECRETKEY" {
		t.Errorf("key parameter = %q, want SECRETKEY", gotQuery.Get("key"))
	}
	if gotQuery.Get("tradeofferid") != "1" {
		t.Errorf("tradeofferid parameter = %q, want 1", gotQuery.Get("tradeofferid"))
	}
	if !strings.Contains(gotUserAgent, "iPhone") {
		t.Errorf("requests must identify as a mobile browser, got %q", gotUserAgent)
	}
}

func TestSendClassifiesInvalidApiKeyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>Access is denied. Retrying will not help. " +
			"Please verify your <pre>key=</pre> parameter.</html>"))
	}))
	defer server.Close()

	transport := NewTransport(WebTransportOptions{WebApiKey: "WRONG"})

	err := transport.Send(context.Background(), testRequest{url: server.URL, method: http.MethodGet}, nil)
	if !classify.IsKind(err, classify.InvalidAPIKey) {
		t.Errorf("expected InvalidAPIKey classification, got %v", err)
	}
}

// Steam serves the key denial page with a 403; the body marker must still
// classify instead of being shadowed by the generic status failure.
func TestSendClassifiesInvalidApiKeyOn403(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<html>Access is denied. Retrying will not help. " +
			"Please verify your <pre>key=</pre> parameter.</html>"))
	}))
	defer server.Close()

	transport := NewTransport(WebTransportOptions{WebApiKey: "WRONG"})

	err := transport.Send(context.Background(), testRequest{url: server.URL, method: http.MethodGet}, nil)
	if !classify.IsKind(err, classify.InvalidAPIKey) {
		t.Errorf("expected InvalidAPIKey classification on 403, got %v", err)
	}
}

func TestGetJoinsExistingQueryParameters(t *testing.T) {
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", JsonContentType)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	request := testRequest{
		url:    server.URL + "/?fixed=1",
		method: http.MethodGet,
		values: url.Values{"added": []string{"2"}},
	}
	if err := NewTransport(WebTransportOptions{}).Send(context.Background(), request, nil); err != nil {
		t.Fatal(err)
	}

	if gotQuery.Get("fixed") != "1" || gotQuery.Get("added") != "2" {
		t.Errorf("query = %v, want both fixed=1 and added=2", gotQuery)
	}
}

func TestSendToleratesEmptyBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTransport(WebTransportOptions{})

	var response struct {
		Value int `json:"value"`
	}
	if err := transport.Send(context.Background(), testRequest{url: server.URL, method: http.MethodGet}, &response); err != nil {
		t.Fatal(err)
	}
	if response.Value != 0 {
		t.Errorf("empty body must leave the response at its zero value, got %d", response.Value)
	}
}

func TestFetchReturnsRawBody(t *testing.T) {
	const page = "<html><body>var g_daysMyEscrow = 0;</body></html>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer server.Close()

	transport := NewTransport(WebTransportOptions{})

	body, err := transport.Fetch(context.Background(), testRequest{url: server.URL, method: http.MethodGet})
	if err != nil {
		t.Fatal(err)
	}
	if body != page {
		t.Errorf("Fetch() = %q, want the raw page", body)
	}
}

func TestSendSurfacesEResultRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("X-Eresult", "15")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := NewTransport(WebTransportOptions{})

	err := transport.Send(context.Background(), testRequest{url: server.URL, method: http.MethodPost}, nil)
	if err == nil {
		t.Fatal("expected non-OK X-eresult to fail the call")
	}
}
