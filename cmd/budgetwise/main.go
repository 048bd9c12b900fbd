package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"budgetwise/internal/amqp"
	"budgetwise/internal/classify"
	"budgetwise/internal/config"
	"budgetwise/internal/core"
	"budgetwise/internal/engine"
	"budgetwise/internal/ledger"
	"budgetwise/internal/ledger/memory"
	"budgetwise/internal/log"
	"budgetwise/internal/services"
	"budgetwise/internal/storage"
)

func main() {
	// Load .env for local development; absent files are fine.
	_ = godotenv.Load()

	var (
		report = flag.String("report", "summary", "report to print: summary, trends, insights, overview, predict, patterns, recommend, monthly")
		window = flag.String("window", "month", "period: week, month, all")
		year   = flag.Int("year", time.Now().Year(), "year for the monthly report")
		month  = flag.Int("month", int(time.Now().Month()), "month for the monthly report")

		addAmount = flag.String("add", "", "record an expense with this amount (e.g. 12.50) instead of reporting")
		addDesc   = flag.String("desc", "", "description for the recorded expense")
		addCat    = flag.Int64("category", 0, "category ID for the recorded expense; 0 lets the classifier pick")
	)
	flag.Parse()

	cfg := config.Load()
	logger := log.New(cfg.LogLevel, "app")
	log.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	store, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize store", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	defer closeStore()

	if *addAmount != "" {
		if err := recordExpense(ctx, cfg, store, logger, *addAmount, *addDesc, *addCat); err != nil {
			logger.Error("Failed to record expense", "error", err)
			os.Exit(1)
		}
		return
	}

	eng := engine.New(store)
	if err := printReport(ctx, eng, *report, core.Window(*window), *year, time.Month(*month)); err != nil {
		logger.Error("Report failed", "error", err, "report", *report)
		os.Exit(1)
	}
}

func openStore(cfg *config.Config, logger *log.Logger) (ledger.Store, func(), error) {
	switch cfg.DataBackend {
	case "sqlite":
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Initialized sqlite backend", "path", cfg.SQLiteDBPath)
		return repo, func() { repo.Close() }, nil
	default:
		logger.Info("Initialized memory backend")
		return memory.NewSeeded(), func() {}, nil
	}
}

func recordExpense(ctx context.Context, cfg *config.Config, store ledger.Store, logger *log.Logger, amount, desc string, categoryID int64) error {
	cents, err := core.ParseDecimalToCents(amount)
	if err != nil {
		return fmt.Errorf("parse amount %q: %w", amount, err)
	}
	money := core.Money{Cents: cents}

	var classifier classify.Classifier = classify.Keyword{}
	if cfg.ClassifierBackend == "gemini" {
		g, err := classify.NewGemini(ctx, cfg.GeminiModel, logger.WithComponent("classify"))
		if err != nil {
			logger.Warn("Gemini unavailable, using keyword classifier", "error", err)
		} else {
			classifier = g
		}
	}

	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, events disabled", "error", err)
			amqpClient = nil
		} else {
			defer amqpClient.Close()
		}
	}

	svc := services.NewExpenseService(store, classifier, amqpClient)
	e, err := svc.CreateExpense(ctx, services.CreateExpenseInput{
		Amount:      money,
		CategoryID:  categoryID,
		Description: desc,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Recorded expense #%d: %s (category %d)\n", e.ID, e.Amount.Format(), e.CategoryID)
	return nil
}

func printReport(ctx context.Context, eng *engine.Engine, report string, window core.Window, year int, month time.Month) error {
	now := time.Now()
	switch report {
	case "summary":
		sum, err := eng.Summary(ctx, window, now)
		if err != nil {
			return err
		}
		fmt.Printf("Income:    %s\n", sum.TotalIncome.Format())
		fmt.Printf("Expenses:  %s\n", sum.TotalExpenses.Format())
		fmt.Printf("Remaining: %s\n", sum.RemainingBudget.Format())
		names := make([]string, 0, len(sum.CategorySpending))
		for name := range sum.CategorySpending {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-12s %s of %s\n", name, sum.CategorySpending[name].Format(), sum.CategoryBudgets[name].Format())
		}
	case "trends":
		trend, err := eng.Trends(ctx, window, now)
		if err != nil {
			return err
		}
		for _, d := range trend.DailyTotals {
			fmt.Printf("%s  %s\n", d.Date.Format("2006-01-02"), d.Amount.Format())
		}
		for _, c := range trend.CategoryTrends {
			fmt.Printf("%-12s %s (%d transactions)\n", c.Name, c.Total.Format(), c.Count)
		}
	case "insights":
		insights, err := eng.Insights(ctx, window, now)
		if err != nil {
			return err
		}
		if len(insights) == 0 {
			fmt.Println("No insights for this period.")
		}
		for _, in := range insights {
			fmt.Printf("[%s] %s: %s\n", in.Type, in.Title, in.Message)
		}
	case "overview":
		o, err := eng.Overview(ctx, now)
		if err != nil {
			return err
		}
		fmt.Printf("Income:      %s\n", o.TotalIncome.Format())
		fmt.Printf("Expenses:    %s\n", o.TotalExpenses.Format())
		fmt.Printf("Investments: %s\n", o.TotalInvestments.Format())
		fmt.Printf("Savings:     %s\n", o.TotalSavings.Format())
		fmt.Printf("Debts:       %s\n", o.TotalDebts.Format())
		fmt.Printf("Net worth:   %s\n", o.NetWorth.Format())
	case "predict":
		p, err := eng.PredictSpend(ctx, window, now)
		if err != nil {
			return err
		}
		fmt.Printf("%s (confidence: %s)\n", p.Message, p.Confidence)
	case "patterns":
		p, err := eng.SpendingPatterns(ctx, now)
		if err != nil {
			return err
		}
		for _, d := range p.DayPatterns {
			fmt.Printf("%-10s %s (%d transactions)\n", d.Day, d.Total.Format(), d.Count)
		}
		fmt.Printf("Avg transaction: %s\n", p.AvgTransaction.Format())
		fmt.Printf("Min transaction: %s\n", p.MinTransaction.Format())
		fmt.Printf("Max transaction: %s\n", p.MaxTransaction.Format())
		if p.TopCategory != nil {
			fmt.Printf("Top category:    %s (%s)\n", p.TopCategory.Name, p.TopCategory.Total.Format())
		}
	case "recommend":
		recs, err := eng.Recommend(ctx, now)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Println("Nothing to suggest right now.")
		}
		for _, r := range recs {
			fmt.Printf("%s: %s\n", r.Title, r.Description)
		}
	case "monthly":
		r, err := eng.MonthlyReport(ctx, year, month)
		if err != nil {
			return err
		}
		fmt.Printf("%s %d\n", r.Month, r.Year)
		fmt.Printf("Income:   %s\n", r.Income.Format())
		fmt.Printf("Expenses: %s\n", r.Expenses.Format())
		fmt.Printf("Savings:  %s (%.1f%%)\n", r.Savings.Format(), r.SavingsRate)
		for _, c := range r.ByCategory {
			fmt.Printf("  %-12s %s (%d transactions)\n", c.Name, c.Total.Format(), c.Count)
		}
	default:
		return fmt.Errorf("unknown report %q", report)
	}
	return nil
}
