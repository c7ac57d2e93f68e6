package econ

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/tradewind-gg/steam/api"
)

type recordingTransport struct {
	lastRequest api.Request
}

func (r *recordingTransport) CookieJar() http.CookieJar { return nil }
func (r *recordingTransport) HttpClient() *http.Client  { return nil }

func (r *recordingTransport) Send(_ context.Context, request api.Request, _ any) error {
	r.lastRequest = request
	return nil
}

func (r *recordingTransport) Fetch(_ context.Context, request api.Request) (string, error) {
	r.lastRequest = request
	return "", nil
}

func TestOfferActionRequests(t *testing.T) {
	transport := &recordingTransport{}
	client := NewClient(transport)

	tests := []struct {
		name   string
		call   func() error
		action string
	}{
		{"decline", func() error { return client.DeclineTradeOffer(context.Background(), 42) }, "DeclineTradeOffer"},
		{"cancel", func() error { return client.CancelTradeOffer(context.Background(), 42) }, "CancelTradeOffer"},
	}

	for _, test := range tests {
		if err := test.call(); err != nil {
			t.Fatalf("%s: %v", test.name, err)
		}

		request := transport.lastRequest
		if request.Method() != http.MethodPost {
			t.Errorf("%s: method = %s, want POST", test.name, request.Method())
		}
		if !request.RequiresApiKey() {
			t.Errorf("%s: the web API variant must carry the key", test.name)
		}
		if request.Retryable() {
			t.Errorf("%s: mutating calls must not retry", test.name)
		}
		if !strings.Contains(request.Url(), "/IEconService/"+test.action+"/v1/") {
			t.Errorf("%s: url = %s", test.name, request.Url())
		}

		values, err := request.Values()
		if err != nil {
			t.Fatal(err)
		}
		if values.Get("tradeofferid") != "42" {
			t.Errorf("%s: tradeofferid = %q, want 42", test.name, values.Get("tradeofferid"))
		}
	}
}
