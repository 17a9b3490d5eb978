package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"FreqReporter/internal/extract"
	"FreqReporter/internal/report"

	"github.com/robfig/cron/v3"
)

// BotAPI is the slice of the REST client the scheduler needs.
type BotAPI interface {
	Fetch(ctx context.Context, endpoint string) (any, error)
	FetchWhitelist(ctx context.Context) []string
}

// Sender delivers a finished report.
type Sender interface {
	Send(ctx context.Context, text string) error
}

// Options configures the report loops.
type Options struct {
	Interval        time.Duration
	RetryDelay      time.Duration
	OnceMaxAttempts int
	IncludePairlist bool
	Pairlist        report.PairlistOptions
}

// Scheduler runs fetch-format-send cycles against the bot API.
type Scheduler struct {
	api    BotAPI
	sender Sender
	opts   Options
	mu     sync.Mutex // one cycle at a time
}

// New creates a Scheduler.
func New(api BotAPI, sender Sender, opts Options) *Scheduler {
	return &Scheduler{api: api, sender: sender, opts: opts}
}

// RunCycle performs one report cycle: fetch status, profit and balance,
// extract display fields, optionally attach the pairlist block, and send.
// Any fetch or send failure aborts the cycle. Cycles are serialized: a
// chat-triggered report or an overlapping cron fire waits for the running
// cycle to finish.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	statusPayload, err := s.api.Fetch(ctx, "status")
	if err != nil {
		return err
	}
	profitPayload, err := s.api.Fetch(ctx, "profit")
	if err != nil {
		return err
	}
	balancePayload, err := s.api.Fetch(ctx, "balance")
	if err != nil {
		return err
	}

	var fields report.Fields
	fields.Status, fields.Trades = extract.Status(statusPayload)
	fields.ProfitAbs, fields.ProfitPct = extract.Profit(profitPayload)
	fields.Balance = extract.Balance(balancePayload)

	var block string
	if s.opts.IncludePairlist {
		block = report.FormatPairlist(s.api.FetchWhitelist(ctx), s.opts.Pairlist)
	}

	return s.sender.Send(ctx, report.BuildMessage(fields, block))
}

// RunOnce retries a single report cycle until it succeeds or the attempt
// budget is spent. The budget is exact: with N attempts configured the
// cycle runs at most N times.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	maxAttempts := s.opts.OnceMaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	for attempt := 1; ; attempt++ {
		err := s.RunCycle(ctx)
		if err == nil {
			return nil
		}
		log.Printf("[WARN] report cycle failed (attempt %d/%d): %v", attempt, maxAttempts, err)
		if attempt >= maxAttempts {
			return fmt.Errorf("report failed after %d attempts: %w", maxAttempts, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.opts.RetryDelay):
		}
	}
}

// RunForever loops report cycles until ctx is cancelled. A failed cycle is
// logged and retried after RetryDelay instead of waiting out the full
// interval; failures are never fatal in this mode.
func (s *Scheduler) RunForever(ctx context.Context) {
	for {
		delay := s.opts.Interval
		if err := s.RunCycle(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Printf("[WARN] report cycle failed: %v", err)
			delay = s.opts.RetryDelay
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// RunCron runs report cycles on a cron schedule instead of a fixed
// interval. Blocks until ctx is cancelled.
func (s *Scheduler) RunCron(ctx context.Context, spec string) error {
	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc(spec, func() {
		if err := s.RunCycle(ctx); err != nil {
			log.Printf("[WARN] report cycle failed: %v", err)
		}
	}); err != nil {
		return fmt.Errorf("register report schedule: %w", err)
	}
	c.Start()
	defer c.Stop()
	log.Printf("[INFO] cron schedule registered: %s", spec)
	<-ctx.Done()
	return nil
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch command {
	case "/report":
		if err := s.RunCycle(ctx); err != nil {
			return fmt.Sprintf("report failed: %v", err)
		}
		return ""
	default:
		return "Available commands:\n/report - send a status report now"
	}
}
