package cmd

import (
	"context"
	"fmt"

	"sigil/config"
	"sigil/database"
	"sigil/domain/interfaces"
	"sigil/httpapi"
	"sigil/imagestore"
	"sigil/mailer"
	"sigil/notifier"
	"sigil/repository"
	"sigil/service"
	"sigil/solana"
	"sigil/worker"

	log "github.com/sirupsen/logrus"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting sigil service...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established successfully")

	uowFactory := repository.NewUnitOfWorkFactory(db)

	var treasury *solana.Keypair
	if cfg.TreasurySecretKey != "" {
		treasury, err = solana.KeypairFromBase58(cfg.TreasurySecretKey)
		if err != nil {
			return fmt.Errorf("failed to load treasury keypair: %w", err)
		}
		log.Infof("Treasury loaded: %s", treasury.PublicKey())
	} else {
		log.Warn("No treasury keypair configured, payouts disabled")
	}
	chain := solana.NewClient(cfg.SolanaRPCURL, treasury)

	var images interfaces.ObjectStore
	if cfg.ImageBucket != "" {
		images, err = imagestore.NewGCSStore(ctx, cfg.ImageBucket)
		if err != nil {
			return fmt.Errorf("failed to initialize image store: %w", err)
		}
	} else {
		log.Warn("No image bucket configured, billboard images disabled")
	}

	var reviewMailer interfaces.Mailer
	if cfg.ResendAPIKey != "" && cfg.AdminEmail != "" {
		reviewMailer = mailer.NewResendMailer(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AdminEmail, cfg.BaseURL, cfg.AdminSecret)
	}

	neynar := buildNeynar(cfg)
	broadcaster := buildBroadcaster(cfg, neynar)

	var profiles interfaces.ProfileResolver
	if neynar != nil {
		profiles = neynar
	}

	checkInService := service.NewCheckInService(uowFactory, chain, cfg.DailyBonusThreshold)
	rewardsService := service.NewRewardsService(uowFactory, chain)
	claimService := service.NewClaimService(uowFactory, chain, images, profiles, reviewMailer)
	reviewService := service.NewReviewService(uowFactory, chain, images)
	calendarService := service.NewCalendarService(uowFactory)
	settlementService := service.NewSettlementService(uowFactory)
	notifyService := service.NewNotifyService(uowFactory, broadcaster, cfg.BaseURL)
	analyticsService := service.NewAnalyticsService(uowFactory)

	workers := worker.New(settlementService, notifyService)
	stopWorker := workers.StartDailyWorker(ctx, cfg.SettleHourUTC)
	defer stopWorker()

	server := httpapi.NewServer(cfg,
		checkInService, rewardsService, claimService, reviewService,
		calendarService, settlementService, notifyService, analyticsService)

	return server.Start(ctx)
}

func buildNeynar(cfg *config.Config) *notifier.NeynarClient {
	if cfg.NeynarAPIKey == "" {
		return nil
	}
	return notifier.NewNeynarClient(cfg.NeynarAPIKey, cfg.NeynarSignerUUID)
}

// buildBroadcaster assembles the configured social platforms. Missing
// credentials disable the corresponding platform, never the service.
func buildBroadcaster(cfg *config.Config, neynar *notifier.NeynarClient) *notifier.Broadcaster {
	var platforms []notifier.Platform

	if neynar != nil {
		platforms = append(platforms, neynar)
	}
	if cfg.TelegramBotToken != "" && cfg.TelegramChannelID != "" {
		platforms = append(platforms, notifier.NewTelegramClient(cfg.TelegramBotToken, cfg.TelegramChannelID))
	}
	if cfg.BlueskyHandle != "" && cfg.BlueskyPassword != "" {
		platforms = append(platforms, notifier.NewBlueskyClient(cfg.BlueskyHandle, cfg.BlueskyPassword))
	}
	if cfg.DiscordToken != "" && cfg.DiscordChannelID != "" {
		discord, err := notifier.NewDiscordClient(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			log.Warnf("Failed to initialize Discord client: %v", err)
		} else {
			platforms = append(platforms, discord)
		}
	}

	log.Infof("Broadcaster configured with %d platforms", len(platforms))
	return notifier.NewBroadcaster(platforms...)
}
