package plan

import (
	"github.com/iwvelando/sip-planner/pkg/calculator"
	"github.com/iwvelando/sip-planner/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// Summary aggregates the portfolio shown on the dashboard.
type Summary struct {
	TotalPlans      int             `json:"totalPlans"`
	ActivePlans     int             `json:"activePlans"`
	PausedPlans     int             `json:"pausedPlans"`
	CompletedPlans  int             `json:"completedPlans"`
	TotalCommitted  decimal.Decimal `json:"totalCommitted"`
	TotalInvested   decimal.Decimal `json:"totalInvested"`
	InvestedPercent decimal.Decimal `json:"investedPercent"`
	GasSpent        decimal.Decimal `json:"gasSpent"`
}

// Summary computes portfolio totals across every stored plan. GasSpent uses
// the fixed fee estimates: one create per plan, one execute per execution and
// one finalize per completed plan.
func (s *Store) Summary() Summary {
	createFee, _ := calculator.LookupGasFee(calculator.OperationCreatePlan)
	executeFee, _ := calculator.LookupGasFee(calculator.OperationExecuteSIP)
	finalizeFee, _ := calculator.LookupGasFee(calculator.OperationFinalizeSIP)

	summary := Summary{
		TotalCommitted:  decimal.Zero,
		TotalInvested:   decimal.Zero,
		InvestedPercent: decimal.Zero,
		GasSpent:        decimal.Zero,
	}

	for _, p := range s.List() {
		summary.TotalPlans++
		switch p.Status {
		case StatusActive:
			summary.ActivePlans++
		case StatusPaused:
			summary.PausedPlans++
		case StatusCompleted:
			summary.CompletedPlans++
			summary.GasSpent = summary.GasSpent.Add(finalizeFee)
		}
		summary.TotalCommitted = summary.TotalCommitted.Add(p.TotalAmount)
		summary.TotalInvested = summary.TotalInvested.Add(p.InvestedAmount())
		summary.GasSpent = summary.GasSpent.Add(createFee).
			Add(executeFee.Mul(decimal.NewFromInt(int64(p.Executions))))
	}

	summary.InvestedPercent = mathutil.Round(mathutil.CalculatePercentage(summary.TotalInvested, summary.TotalCommitted))
	return summary
}
