package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"RaidLedger/internal/cache"
	"RaidLedger/internal/calculator"
	"RaidLedger/internal/config"
	"RaidLedger/internal/distribution"
	"RaidLedger/internal/notifier"
	"RaidLedger/internal/scheduler"
	"RaidLedger/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] RaidLedger starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init store
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
	if err != nil {
		log.Fatalf("[FATAL] init sqlite store: %v", err)
	}
	defer st.Close()

	// Init plan cache
	var planCache cache.Cache
	rc, err := cache.NewRedisCache(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Printf("[WARN] redis unavailable, using in-memory cache: %v", err)
		planCache = cache.NewMemoryCache()
	} else {
		planCache = rc
		defer rc.Close()
	}

	// Init engine
	calc := calculator.New(cfg.Tables)
	allocator := distribution.NewAllocator(cfg.Distribution.FairnessPenalty)
	planner := distribution.NewPlanner(cfg.Tables.DropTable, allocator)
	svc := distribution.NewService(st, planCache, calc, planner, distribution.Options{
		DefaultWeeks:     cfg.Distribution.DefaultWeeks,
		ManualCutoffWeek: cfg.Distribution.ManualCutoffWeek,
		FairnessPenalty:  cfg.Distribution.FairnessPenalty,
		PlanTTL:          cfg.PlanTTL(),
	})

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, svc, st, calc, tn,
		cfg.Distribution.DefaultWeeks, cfg.Distribution.ManualCutoffWeek)
	if err := sched.RegisterAll(cfg.Schedule.WeeklyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing weekly recompute now")
		go sched.RunWeeklyNow()
	}

	log.Println("[INFO] RaidLedger is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] RaidLedger stopped")
}
