// Package retirement serves the caller's retirement goal and its projection.
package retirement

import (
	"github.com/carson-networks/fintrack-server/internal/ledger"
)

// Goal is the API response model for a retirement goal. Percentages are
// whole-number percent.
type Goal struct {
	CurrentAge              int    `json:"currentAge"`
	RetirementAge           int    `json:"retirementAge"`
	LifeExpectancy          int    `json:"lifeExpectancy"`
	CurrentSavings          string `json:"currentSavings"`
	MonthlyContribution     string `json:"monthlyContribution"`
	ExpectedAnnualReturnPct string `json:"expectedAnnualReturnPct"`
	InflationRatePct        string `json:"inflationRatePct"`
	DesiredMonthlyIncome    string `json:"desiredMonthlyIncome"`
}

func fromGoal(g ledger.RetirementGoal) Goal {
	return Goal{
		CurrentAge:              g.CurrentAge,
		RetirementAge:           g.RetirementAge,
		LifeExpectancy:          g.LifeExpectancy,
		CurrentSavings:          g.CurrentSavings.String(),
		MonthlyContribution:     g.MonthlyContribution.String(),
		ExpectedAnnualReturnPct: g.ExpectedAnnualReturnPct.String(),
		InflationRatePct:        g.InflationRatePct.String(),
		DesiredMonthlyIncome:    g.DesiredMonthlyIncome.String(),
	}
}
