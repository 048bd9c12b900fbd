package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"budgetwise/internal/amqp"
	"budgetwise/internal/core"
	"budgetwise/internal/engine"
)

// AdvisorConfig holds configuration for the advisor loop.
type AdvisorConfig struct {
	// Window is the period insights are computed over each cycle.
	Window core.Window

	// Interval is how often insights are recomputed (default: 6h).
	Interval time.Duration
}

func DefaultAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{
		Window:   core.WindowMonth,
		Interval: 6 * time.Hour,
	}
}

// Advisor periodically recomputes insights and publishes each one to
// the bus. The engine stays pull-based; the advisor is just a caller
// with a clock.
type Advisor struct {
	engine     *engine.Engine
	amqpClient *amqp.Client
	config     AdvisorConfig

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewAdvisor(eng *engine.Engine, amqpClient *amqp.Client, config AdvisorConfig) *Advisor {
	return &Advisor{
		engine:     eng,
		amqpClient: amqpClient,
		config:     config,
	}
}

// Start begins the advisor loop. Returns an error if already running.
func (a *Advisor) Start(ctx context.Context) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("advisor is already running")
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.doneCh = make(chan struct{})
	a.mu.Unlock()

	go a.runLoop(ctx)

	slog.InfoContext(ctx, "Advisor started",
		"window", string(a.config.Window),
		"interval", a.config.Interval)
	return nil
}

// Stop gracefully stops the advisor and waits for completion.
func (a *Advisor) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.mu.Unlock()

	close(a.stopCh)

	select {
	case <-a.doneCh:
		slog.InfoContext(ctx, "Advisor stopped gracefully")
	case <-ctx.Done():
		slog.WarnContext(ctx, "Advisor stop timed out")
		return ctx.Err()
	}

	a.mu.Lock()
	a.running = false
	a.mu.Unlock()
	return nil
}

func (a *Advisor) IsRunning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.running
}

func (a *Advisor) runLoop(ctx context.Context) {
	defer close(a.doneCh)

	ticker := time.NewTicker(a.config.Interval)
	defer ticker.Stop()

	// Publish once on startup, then on every tick.
	a.publishInsights(ctx)

	for {
		select {
		case <-a.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.publishInsights(ctx)
		}
	}
}

// publishInsights runs one cycle. Publish failures are logged per
// insight; the remaining insights still go out.
func (a *Advisor) publishInsights(ctx context.Context) {
	insights, err := a.engine.Insights(ctx, a.config.Window, time.Now())
	if err != nil {
		slog.ErrorContext(ctx, "Failed to compute insights", "error", err)
		return
	}
	if len(insights) == 0 {
		slog.DebugContext(ctx, "No insights this cycle")
		return
	}

	for _, in := range insights {
		msg := amqp.NewInsightAlertMessage(string(a.config.Window), string(in.Type), in.Title, in.Message)
		if err := a.amqpClient.PublishInsightAlert(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish insight",
				"title", in.Title, "error", err)
		}
	}
	slog.InfoContext(ctx, "Published insight cycle", "count", len(insights))
}
