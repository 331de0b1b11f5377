// Package plan owns the collection of investment plans and the only
// operations allowed to change them.
package plan

import (
	"errors"
	"time"

	"github.com/iwvelando/sip-planner/pkg/calculator"
	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/iwvelando/sip-planner/pkg/mathutil"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when an operation targets an unknown plan id.
	ErrNotFound = errors.New("plan not found")

	// ErrPreconditionFailed is returned when a transition is not allowed from
	// the plan's current state.
	ErrPreconditionFailed = errors.New("plan precondition failed")

	// ErrIDExhausted is returned when Create cannot draw an unused id.
	ErrIDExhausted = errors.New("plan id exhausted")
)

// Status is the lifecycle state of a plan.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// Plan is a systematic investment plan. Token, amounts, frequency and term
// are fixed at creation; schedule, status and progress change through Store.
type Plan struct {
	ID             string               `json:"id"`
	Token          string               `json:"token"`
	TotalAmount    decimal.Decimal      `json:"totalAmount"`
	IntervalAmount decimal.Decimal      `json:"intervalAmount"`
	Frequency      calculator.Frequency `json:"frequency"`
	IntervalDays   int                  `json:"intervalDays"`
	MaturityMonths int                  `json:"maturityMonths"`
	NextExecution  time.Time            `json:"nextExecution"`
	MaturesAt      time.Time            `json:"maturesAt"`
	Status         Status               `json:"status"`
	Progress       int                  `json:"progress"`
	Executions     int                  `json:"executions"`
	CreatedAt      time.Time            `json:"createdAt"`
	CompletedAt    *time.Time           `json:"completedAt,omitempty"`
}

// InvestedAmount is the share of TotalAmount already contributed, as
// indicated by Progress.
func (p Plan) InvestedAmount() decimal.Decimal {
	return mathutil.ApplyPercentage(p.TotalAmount, p.Progress)
}

// ReadyToFinalize reports whether Finalize would complete the plan.
func (p Plan) ReadyToFinalize() bool {
	return p.Status == StatusActive && p.Progress >= constants.MaxProgress
}
