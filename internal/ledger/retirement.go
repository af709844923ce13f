package ledger

import (
	"fmt"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// NeedsMultiplier is the number of years of desired income a retirement fund
// has to cover (the 25x annual income rule).
const NeedsMultiplier = 25

// RetirementGoal is the single retirement plan an owner keeps.
// Percentages are whole-number percent: 7 means 7%.
type RetirementGoal struct {
	OwnerID                 uuid.UUID
	CurrentAge              int
	RetirementAge           int
	CurrentSavings          decimal.Decimal
	MonthlyContribution     decimal.Decimal
	ExpectedAnnualReturnPct decimal.Decimal
	InflationRatePct        decimal.Decimal
	DesiredMonthlyIncome    decimal.Decimal
	LifeExpectancy          int
}

// GoalOption overrides one field of a goal built by NewRetirementGoal.
type GoalOption func(*RetirementGoal)

// NewRetirementGoal returns a goal for ownerID. Fields no option sets keep
// these defaults: age 25, retirement at 60, no savings, 5000 a month
// contributed, 40000 a month desired, 7% return, 4% inflation, life
// expectancy 85.
func NewRetirementGoal(ownerID uuid.UUID, opts ...GoalOption) RetirementGoal {
	goal := RetirementGoal{
		OwnerID:                 ownerID,
		CurrentAge:              25,
		RetirementAge:           60,
		CurrentSavings:          decimal.Zero,
		MonthlyContribution:     decimal.NewFromInt(5000),
		ExpectedAnnualReturnPct: decimal.NewFromInt(7),
		InflationRatePct:        decimal.NewFromInt(4),
		DesiredMonthlyIncome:    decimal.NewFromInt(40000),
		LifeExpectancy:          85,
	}
	for _, opt := range opts {
		opt(&goal)
	}
	return goal
}

func WithCurrentAge(age int) GoalOption {
	return func(g *RetirementGoal) { g.CurrentAge = age }
}

func WithRetirementAge(age int) GoalOption {
	return func(g *RetirementGoal) { g.RetirementAge = age }
}

func WithCurrentSavings(v decimal.Decimal) GoalOption {
	return func(g *RetirementGoal) { g.CurrentSavings = v }
}

func WithMonthlyContribution(v decimal.Decimal) GoalOption {
	return func(g *RetirementGoal) { g.MonthlyContribution = v }
}

func WithExpectedAnnualReturnPct(v decimal.Decimal) GoalOption {
	return func(g *RetirementGoal) { g.ExpectedAnnualReturnPct = v }
}

func WithInflationRatePct(v decimal.Decimal) GoalOption {
	return func(g *RetirementGoal) { g.InflationRatePct = v }
}

func WithDesiredMonthlyIncome(v decimal.Decimal) GoalOption {
	return func(g *RetirementGoal) { g.DesiredMonthlyIncome = v }
}

func WithLifeExpectancy(age int) GoalOption {
	return func(g *RetirementGoal) { g.LifeExpectancy = age }
}

// Validate checks the goal can be projected.
func (g RetirementGoal) Validate() error {
	if g.RetirementAge-g.CurrentAge <= 0 {
		return fmt.Errorf("%w: retirement age %d must be greater than current age %d", ErrInvalidGoal, g.RetirementAge, g.CurrentAge)
	}
	if g.CurrentAge < 0 {
		return fmt.Errorf("%w: negative current age", ErrInvalidGoal)
	}
	if g.CurrentSavings.IsNegative() {
		return fmt.Errorf("%w: negative current savings", ErrInvalidGoal)
	}
	if g.MonthlyContribution.IsNegative() {
		return fmt.Errorf("%w: negative monthly contribution", ErrInvalidGoal)
	}
	if g.DesiredMonthlyIncome.IsNegative() {
		return fmt.Errorf("%w: negative desired monthly income", ErrInvalidGoal)
	}
	for _, m := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"current savings", g.CurrentSavings},
		{"monthly contribution", g.MonthlyContribution},
		{"desired monthly income", g.DesiredMonthlyIncome},
	} {
		if !exactCents(m.value) {
			return fmt.Errorf("%w: %s %s has more than %d decimal places", ErrInvalidGoal, m.name, m.value, moneyScale)
		}
	}
	for _, p := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"expected annual return", g.ExpectedAnnualReturnPct},
		{"inflation rate", g.InflationRatePct},
	} {
		if p.value.LessThanOrEqual(minPercent) || p.value.GreaterThanOrEqual(maxPercent) {
			return fmt.Errorf("%w: %s %s%% outside (%s, %s)", ErrInvalidGoal, p.name, p.value, minPercent, maxPercent)
		}
		if !p.value.Equal(p.value.Truncate(percentScale)) {
			return fmt.Errorf("%w: %s %s%% has more than %d decimal places", ErrInvalidGoal, p.name, p.value, percentScale)
		}
	}
	return nil
}

// YearBalance is one row of the compounding projection.
type YearBalance struct {
	Year          int
	Age           int
	Contributions decimal.Decimal
	Growth        decimal.Decimal
	Balance       decimal.Decimal
}

// CompoundingProjection grows the fund year by year: the running balance earns
// the expected return, then that year's contributions are added.
type CompoundingProjection struct {
	Years                  []YearBalance
	FinalBalance           decimal.Decimal
	InflationAdjustedNeeds decimal.Decimal
	Shortfall              decimal.Decimal
}

// Projection is the outcome of projecting a goal. SimpleFundProjection adds
// contributions without any growth; Compounding is the realistic curve.
type Projection struct {
	YearsToRetirement     int
	RetirementYears       int
	EstimatedTotalNeeds   decimal.Decimal
	AnnualSavingsRequired decimal.Decimal
	SimpleFundProjection  decimal.Decimal
	Compounding           CompoundingProjection
}

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)

	// Percentages are stored as NUMERIC(6, 3).
	minPercent = decimal.NewFromInt(-100)
	maxPercent = decimal.NewFromInt(1000)
)

const percentScale = 3

// Project computes the retirement projection of goal.
func Project(goal RetirementGoal) (Projection, error) {
	if err := goal.Validate(); err != nil {
		return Projection{}, err
	}

	years := goal.RetirementAge - goal.CurrentAge
	yearsDec := decimal.NewFromInt(int64(years))
	annualContribution := goal.MonthlyContribution.Mul(monthsPerYear)
	needs := goal.DesiredMonthlyIncome.Mul(monthsPerYear).Mul(decimal.NewFromInt(NeedsMultiplier))

	p := Projection{
		YearsToRetirement:     years,
		RetirementYears:       max(goal.LifeExpectancy-goal.RetirementAge, 0),
		EstimatedTotalNeeds:   needs,
		AnnualSavingsRequired: needs.Sub(goal.CurrentSavings).Div(yearsDec).Round(2),
		SimpleFundProjection:  goal.CurrentSavings.Add(annualContribution.Mul(yearsDec)),
		Compounding:           projectCompounding(goal, years, annualContribution, needs),
	}
	return p, nil
}

func projectCompounding(goal RetirementGoal, years int, annualContribution, needs decimal.Decimal) CompoundingProjection {
	growthRate := goal.ExpectedAnnualReturnPct.Div(hundred)
	inflationFactor := decimal.NewFromInt(1).Add(goal.InflationRatePct.Div(hundred))

	proj := CompoundingProjection{Years: make([]YearBalance, 0, years)}
	balance := goal.CurrentSavings
	adjustedNeeds := needs
	for year := 1; year <= years; year++ {
		growth := balance.Mul(growthRate).Round(2)
		balance = balance.Add(growth).Add(annualContribution)
		adjustedNeeds = adjustedNeeds.Mul(inflationFactor)

		proj.Years = append(proj.Years, YearBalance{
			Year:          year,
			Age:           goal.CurrentAge + year,
			Contributions: annualContribution,
			Growth:        growth,
			Balance:       balance,
		})
	}

	proj.FinalBalance = balance
	proj.InflationAdjustedNeeds = adjustedNeeds.Round(2)
	if shortfall := proj.InflationAdjustedNeeds.Sub(balance); shortfall.IsPositive() {
		proj.Shortfall = shortfall
	} else {
		proj.Shortfall = decimal.Zero
	}
	return proj
}
