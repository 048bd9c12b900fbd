package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

const (
	Stock      InvestmentType = "Stock"
	Crypto     InvestmentType = "Crypto"
	Bond       InvestmentType = "Bond"
	ETF        InvestmentType = "ETF"
	MutualFund InvestmentType = "Mutual Fund"
	OtherAsset InvestmentType = "Other"
)

type (
	Frequency      string
	InvestmentType string

	// IncomeEntry is a recurring income source. Entries carry no own
	// timestamp; see the aggregator for how they enter windowed totals.
	IncomeEntry struct {
		ID     int64
		Amount Money
		Source string
		Period Frequency // weekly or monthly
	}

	Category struct {
		ID          int64
		Name        string // unique, case-insensitive
		BudgetLimit Money  // zero means no budget set
		Color       string // display only
	}

	Expense struct {
		ID          int64
		Amount      Money
		CategoryID  int64
		Description string
		DateAdded   time.Time // creation timestamp, immutable
	}

	// RecurringExpense is a bill template. It is never posted as an
	// Expense row; only its monthly equivalent enters aggregate figures.
	RecurringExpense struct {
		ID         int64
		Name       string
		Amount     Money
		CategoryID int64
		Frequency  Frequency
		NextDue    *time.Time
	}

	Debt struct {
		ID           int64
		Name         string
		Total        Money // fixed at creation
		Remaining    Money // mutable only by payment application
		InterestRate float64
		DueDate      *time.Time
		Description  string
	}

	Investment struct {
		ID           int64
		Name         string
		Type         InvestmentType
		Cost         Money // purchase cost, immutable
		CurrentValue Money
		PurchaseDate *time.Time
	}

	SavingsGoal struct {
		ID          int64
		Name        string
		Target      Money
		Current     Money // may exceed Target
		Deadline    *time.Time
		Description string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrUnknownCategory = errors.New("unknown category")
	ErrNoCategories    = errors.New("no categories defined")
	ErrEmptyName       = errors.New("empty name")
	ErrInvalidFreq     = errors.New("invalid frequency")
)

func (f Frequency) Valid() bool {
	switch f {
	case Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (t InvestmentType) Valid() bool {
	switch t {
	case Stock, Crypto, Bond, ETF, MutualFund, OtherAsset:
		return true
	}
	return false
}

func (e IncomeEntry) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.Period != Weekly && e.Period != Monthly {
		return ErrInvalidFreq
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if c.BudgetLimit.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (e Expense) Validate() error {
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if e.CategoryID <= 0 {
		return ErrUnknownCategory
	}
	if e.DateAdded.IsZero() {
		return errors.New("expense date cannot be zero")
	}
	return nil
}

func (re RecurringExpense) Validate() error {
	if strings.TrimSpace(re.Name) == "" {
		return ErrEmptyName
	}
	if err := re.Amount.Validate(); err != nil {
		return err
	}
	if re.CategoryID <= 0 {
		return ErrUnknownCategory
	}
	if !re.Frequency.Valid() {
		return ErrInvalidFreq
	}
	return nil
}

func (d Debt) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return ErrEmptyName
	}
	if err := d.Total.Validate(); err != nil {
		return err
	}
	if d.Remaining.Cents < 0 || d.Remaining.Cents > d.Total.Cents {
		return errors.New("remaining amount out of range")
	}
	if d.InterestRate < 0 {
		return errors.New("negative interest rate")
	}
	return nil
}

func (i Investment) Validate() error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	if !i.Type.Valid() {
		return errors.New("invalid investment type")
	}
	if err := i.Cost.Validate(); err != nil {
		return err
	}
	if i.CurrentValue.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (g SavingsGoal) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	if err := g.Target.Validate(); err != nil {
		return err
	}
	if g.Current.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}
