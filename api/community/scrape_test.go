package community

import "testing"

const offerPageBody = `<html><head><script>
	var g_ulTradePartnerSteamID = '76561198012345678';
	var g_daysMyEscrow = 0;
	var g_daysTheirEscrow = 3;
</script></head><body></body></html>`

func TestScrapeTradePartnerId(t *testing.T) {
	partnerId, err := scrapeTradePartnerId(offerPageBody)
	if err != nil {
		t.Fatal(err)
	}
	if partnerId != "76561198012345678" {
		t.Errorf("partnerId = %q, want 76561198012345678", partnerId)
	}
}

func TestScrapeTradePartnerIdMissing(t *testing.T) {
	if _, err := scrapeTradePartnerId("<html></html>"); err != ErrNoTradePartnerId {
		t.Errorf("expected ErrNoTradePartnerId, got %v", err)
	}
}

func TestScrapeEscrowDays(t *testing.T) {
	myDays, theirDays, err := scrapeEscrowDays(offerPageBody)
	if err != nil {
		t.Fatal(err)
	}
	if myDays != 0 {
		t.Errorf("myDays = %d, want 0", myDays)
	}
	if theirDays != 3 {
		t.Errorf("theirDays = %d, want 3", theirDays)
	}
}

func TestScrapeEscrowDaysMissing(t *testing.T) {
	if _, _, err := scrapeEscrowDays("var g_daysMyEscrow = 0;"); err != ErrNoEscrowDays {
		t.Errorf("expected ErrNoEscrowDays when only one assignment present, got %v", err)
	}
}

func TestScrapeTradeToken(t *testing.T) {
	body := `<a href="https://steamcommunity.com/tradeoffer/new/?partner=52078054&amp;token=pWB6yLaZ">your trade url</a>`
	token, err := scrapeTradeToken(body)
	if err != nil {
		t.Fatal(err)
	}
	if token != "pWB6yLaZ" {
		t.Errorf("token = %q, want pWB6yLaZ", token)
	}
}

func TestScrapeTradeTokenMissing(t *testing.T) {
	if _, err := scrapeTradeToken("<html></html>"); err != ErrNoTradeToken {
		t.Errorf("expected ErrNoTradeToken, got %v", err)
	}
}
