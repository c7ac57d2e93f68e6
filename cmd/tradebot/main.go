package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/playnet-public/flagenv"
	"go.uber.org/zap"

	"github.com/tradewind-gg/steam"
	"github.com/tradewind-gg/steam/api"
)

var (
	apiKey             = ""
	sessionId          = ""
	steamLoginSecure   = ""
	pollInterval       = 60
	redisAddr          = ""
	redisPassword      = ""
	insecureSkipVerify = false
)

func main() {
	// a local .env is optional; real deployments use the environment
	_ = godotenv.Load()

	flagenv.EnvPrefix = "tradebot"
	flagenv.StringVar(&apiKey, "apiKey", "", "The Steam Web-API key used for the IEconService queries.")
	flagenv.StringVar(&sessionId, "sessionId", "", "The sessionid community cookie of the bot account.")
	flagenv.StringVar(&steamLoginSecure, "steamLoginSecure", "", "The steamLoginSecure community cookie of the bot account.")
	flagenv.IntVar(&pollInterval, "pollInterval", 60, "Seconds between trade offer polls.")
	flagenv.StringVar(&redisAddr, "redisAddr", "", "Optional redis address for the shared response cache.")
	flagenv.StringVar(&redisPassword, "redisPassword", "", "Password for the redis response cache.")
	flagenv.BoolVar(&insecureSkipVerify, "insecureSkipVerify", false, "Disable TLS certificate validation towards steam.")
	flagenv.Parse()

	logger, err := zap.NewProductionConfig().Build()
	if err != nil {
		log.Fatalln(err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if apiKey == "" || sessionId == "" || steamLoginSecure == "" {
		logger.Fatal("apiKey, sessionId and steamLoginSecure are required")
	}

	var responseCache api.CacheAdaptor
	if redisAddr != "" {
		responseCache = api.NewRedisCache(redisAddr, redisPassword, 0)
		logger.Info("using redis response cache", zap.String("addr", redisAddr))
	}

	client := steam.NewClient(steam.ClientOptions{
		WebApiKey:          apiKey,
		ResponseCache:      responseCache,
		InsecureSkipVerify: insecureSkipVerify,
		Logger:             logger,
	})

	client.LoginByCookies(map[string]string{
		"sessionid":        sessionId,
		"steamLoginSecure": steamLoginSecure,
	})

	logger.Info("session initialized",
		zap.String("steamid64", client.Session().SteamID().String()),
		zap.Time("token_expiry", client.Session().TokenExpiresAt()),
	)

	for {
		if err := processActiveOffers(client, logger); err != nil {
			logger.Error("processing offers failed", zap.Error(err))
		}
		time.Sleep(time.Duration(pollInterval) * time.Second)
	}
}

// processActiveOffers accepts every received offer that gives nothing away
// and declines the rest. Offers under escrow or waiting for mobile
// confirmation are left alone.
func processActiveOffers(client *steam.Client, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if alive, err := client.IsSessionAlive(ctx); err != nil {
		return err
	} else if !alive {
		logger.Warn("session cookies are no longer recognized by steam")
		return nil
	}

	offers, err := client.GetTradeOffers(ctx)
	if err != nil {
		return err
	}

	logger.Info("fetched active trade offers",
		zap.Int("received", len(offers.Received)),
		zap.Int("sent", len(offers.Sent)),
	)

	for _, offer := range offers.Received {
		offerLogger := logger.With(
			zap.Uint64("offer_id", offer.Offer.TradeOfferId),
			zap.String("partner_steamid64", offer.Offer.PartnerID().String()),
			zap.String("state", offer.Offer.State.String()),
		)

		if len(offer.ToGive) > 0 {
			offerLogger.Info("declining offer: it takes items from us")
			if _, err := client.DeclineTradeOffer(ctx, offer.Offer.TradeOfferId); err != nil {
				return err
			}
			continue
		}

		offerLogger.Info("accepting gift offer", zap.Int("items", len(offer.ToReceive)))
		response, err := client.AcceptTradeOffer(ctx, offer.Offer.TradeOfferId)
		if err != nil {
			var stateErr *steam.InvalidOfferStateError
			if errors.As(err, &stateErr) {
				offerLogger.Info("offer state changed before accept", zap.String("state", stateErr.State.String()))
				continue
			}
			return err
		}

		if response.NeedsMobileConfirmation {
			offerLogger.Warn("accept requires mobile confirmation, which this bot cannot perform")
		}
	}

	return nil
}
