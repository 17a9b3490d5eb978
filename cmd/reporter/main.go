package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"FreqReporter/internal/client"
	"FreqReporter/internal/config"
	"FreqReporter/internal/notifier"
	"FreqReporter/internal/report"
	"FreqReporter/internal/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	os.Exit(run())
}

func run() int {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	once := flag.Bool("once", false, "run a single report cycle and exit (for cron usage)")
	flag.Parse()

	// .env is optional; variables may come from the environment directly.
	_ = godotenv.Load()

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("[ERROR] load config: %v", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		log.Printf("[ERROR] config validation: %v", err)
		return 1
	}

	api := client.New(cfg.API.BaseURL, cfg.API.Username, cfg.API.Password,
		cfg.HTTPTimeout(), cfg.HTTP.MaxRetries, cfg.Backoff())
	tg := notifier.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Telegram.Silent,
		cfg.HTTPTimeout(), cfg.HTTP.MaxRetries, cfg.Backoff())

	sched := scheduler.New(api, tg, scheduler.Options{
		Interval:        cfg.Interval(),
		RetryDelay:      cfg.RetryDelay(),
		OnceMaxAttempts: cfg.Schedule.OnceMaxAttempts,
		IncludePairlist: cfg.Pairlist.Include,
		Pairlist: report.PairlistOptions{
			Limit:    cfg.Pairlist.Limit,
			Heading:  cfg.Pairlist.Heading,
			Style:    cfg.Pairlist.Style,
			Columns:  cfg.Pairlist.Columns,
			ColWidth: cfg.Pairlist.ColWidth,
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	log.Printf("[INFO] FreqReporter starting (api=%s, once=%v)", cfg.API.BaseURL, *once)

	if *once {
		if err := sched.RunOnce(ctx); err != nil {
			log.Printf("[ERROR] %v", err)
			return 1
		}
		return 0
	}

	// Continuous mode: answer chat commands between scheduled reports.
	go tg.StartPolling(ctx, func(cmd string) string {
		return sched.HandleCommand(ctx, cmd)
	})

	if cfg.Schedule.Cron != "" {
		if err := sched.RunCron(ctx, cfg.Schedule.Cron); err != nil {
			log.Printf("[ERROR] %v", err)
			return 1
		}
		return 0
	}

	sched.RunForever(ctx)
	return 0
}
