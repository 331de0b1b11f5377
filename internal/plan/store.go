package plan

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/sip-planner/internal/metrics"
	"github.com/iwvelando/sip-planner/pkg/calculator"
	"github.com/iwvelando/sip-planner/pkg/constants"
	"github.com/iwvelando/sip-planner/pkg/datetime"
	"github.com/iwvelando/sip-planner/pkg/mathutil"
	"go.uber.org/zap"
)

// maxIDAttempts bounds how many ids Create draws before giving up.
const maxIDAttempts = 5

// Store is the system of record for plans. It is safe for concurrent use;
// every mutation happens under a single write lock.
type Store struct {
	mu     sync.RWMutex
	plans  []*Plan
	index  map[string]*Plan
	now    func() time.Time
	newID  func() string
	logger *zap.Logger
}

// NewStore constructs an empty store using the wall clock.
func NewStore(logger *zap.Logger) *Store {
	return NewStoreWithClock(logger, time.Now)
}

// NewStoreWithClock constructs an empty store with an injectable clock for
// testing.
func NewStoreWithClock(logger *zap.Logger, now func() time.Time) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if now == nil {
		now = time.Now
	}
	return &Store{
		index:  make(map[string]*Plan),
		now:    now,
		newID:  uuid.NewString,
		logger: logger,
	}
}

// Create derives the interval amount for input and stores a new active plan.
// Input is expected to have passed calculator.Validate; it is not re-checked
// here beyond what deriving the interval amount requires.
func (s *Store) Create(input calculator.PlanInput) (Plan, error) {
	if err := calculator.CheckAmount(input.TotalAmount); err != nil {
		metrics.ObservePlanOperation(metrics.OperationCreate, metrics.ResultError)
		return Plan{}, fmt.Errorf("failed to create %s plan: %w", input.Token, err)
	}
	intervalAmount, err := calculator.ComputeIntervalAmount(s.logger, input.TotalAmount, input.Frequency,
		input.MaturityMonths, input.CustomIntervalDays)
	if err != nil {
		metrics.ObservePlanOperation(metrics.OperationCreate, metrics.ResultError)
		return Plan{}, fmt.Errorf("failed to derive interval amount for %s plan: %w", input.Token, err)
	}
	intervalDays, _ := calculator.FrequencyDays(input.Frequency, input.CustomIntervalDays)

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.unusedIDLocked()
	if err != nil {
		metrics.ObservePlanOperation(metrics.OperationCreate, metrics.ResultError)
		return Plan{}, err
	}

	now := s.now()
	p := &Plan{
		ID:             id,
		Token:          input.Token,
		TotalAmount:    input.TotalAmount,
		IntervalAmount: intervalAmount,
		Frequency:      input.Frequency,
		IntervalDays:   intervalDays,
		MaturityMonths: input.MaturityMonths,
		NextExecution:  datetime.AddDays(now, intervalDays),
		MaturesAt:      datetime.MaturityDate(now, input.MaturityMonths),
		Status:         StatusActive,
		Progress:       0,
		CreatedAt:      now,
	}
	s.plans = append(s.plans, p)
	s.index[p.ID] = p

	s.logger.Info("plan created",
		zap.String("op", "plan.Create"),
		zap.String("id", p.ID),
		zap.String("token", p.Token),
		zap.String("totalAmount", p.TotalAmount.String()),
		zap.String("intervalAmount", p.IntervalAmount.String()),
		zap.String("frequency", string(p.Frequency)),
	)
	metrics.ObservePlanOperation(metrics.OperationCreate, metrics.ResultSuccess)
	s.observeStatusesLocked()
	return *p, nil
}

func (s *Store) unusedIDLocked() (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := s.newID()
		if _, taken := s.index[id]; !taken {
			return id, nil
		}
	}
	s.logger.Error(fmt.Sprintf("no unused plan id after %d attempts", maxIDAttempts),
		zap.String("op", "plan.Create"),
	)
	return "", fmt.Errorf("no unused plan id after %d attempts: %w", maxIDAttempts, ErrIDExhausted)
}

// Execute records one contribution: progress advances by
// constants.ExecutionStep, capped at 100, and the next execution moves one
// interval past now. Reaching 100 does not complete the plan.
func (s *Store) Execute(id string) (Plan, error) {
	return s.transition(metrics.OperationExecute, id, func(p *Plan, now time.Time) error {
		if p.Status != StatusActive {
			return fmt.Errorf("cannot execute %s plan %s: %w", p.Status, p.ID, ErrPreconditionFailed)
		}
		p.Progress = mathutil.ClampInt(p.Progress+constants.ExecutionStep, 0, constants.MaxProgress)
		p.Executions++
		p.NextExecution = datetime.AddDays(now, p.IntervalDays)
		return nil
	})
}

// Finalize completes a fully executed active plan. Finalizing a completed
// plan succeeds without changing it.
func (s *Store) Finalize(id string) (Plan, error) {
	return s.transition(metrics.OperationFinalize, id, func(p *Plan, now time.Time) error {
		switch {
		case p.Status == StatusCompleted:
			return nil
		case p.Status != StatusActive:
			return fmt.Errorf("cannot finalize %s plan %s: %w", p.Status, p.ID, ErrPreconditionFailed)
		case p.Progress < constants.MaxProgress:
			return fmt.Errorf("cannot finalize plan %s at %d%% progress: %w", p.ID, p.Progress, ErrPreconditionFailed)
		}
		p.Status = StatusCompleted
		completedAt := now
		p.CompletedAt = &completedAt
		return nil
	})
}

// Pause suspends executions of an active plan.
func (s *Store) Pause(id string) (Plan, error) {
	return s.transition(metrics.OperationPause, id, func(p *Plan, now time.Time) error {
		if p.Status != StatusActive {
			return fmt.Errorf("cannot pause %s plan %s: %w", p.Status, p.ID, ErrPreconditionFailed)
		}
		p.Status = StatusPaused
		return nil
	})
}

// Resume reactivates a paused plan and schedules its next execution one
// interval from now.
func (s *Store) Resume(id string) (Plan, error) {
	return s.transition(metrics.OperationResume, id, func(p *Plan, now time.Time) error {
		if p.Status != StatusPaused {
			return fmt.Errorf("cannot resume %s plan %s: %w", p.Status, p.ID, ErrPreconditionFailed)
		}
		p.Status = StatusActive
		p.NextExecution = datetime.AddDays(now, p.IntervalDays)
		return nil
	})
}

func (s *Store) transition(op, id string, apply func(p *Plan, now time.Time) error) (Plan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.index[id]
	if !ok {
		s.logger.Warn("plan operation on unknown id",
			zap.String("op", "plan."+op),
			zap.String("id", id),
		)
		metrics.ObservePlanOperation(op, metrics.ResultNotFound)
		return Plan{}, fmt.Errorf("%s %s: %w", op, id, ErrNotFound)
	}

	if err := apply(p, s.now()); err != nil {
		s.logger.Warn("plan operation rejected",
			zap.String("op", "plan."+op),
			zap.String("id", id),
			zap.Error(err),
		)
		metrics.ObservePlanOperation(op, metrics.ResultRejected)
		return *p, err
	}

	s.logger.Debug("plan updated",
		zap.String("op", "plan."+op),
		zap.String("id", p.ID),
		zap.String("status", string(p.Status)),
		zap.Int("progress", p.Progress),
	)
	metrics.ObservePlanOperation(op, metrics.ResultSuccess)
	s.observeStatusesLocked()
	return *p, nil
}

// Get returns a copy of the plan with the given id.
func (s *Store) Get(id string) (Plan, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.index[id]
	if !ok {
		return Plan{}, false
	}
	return *p, true
}

// List returns copies of all plans in insertion order.
func (s *Store) List() []Plan {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]Plan, 0, len(s.plans))
	for _, p := range s.plans {
		result = append(result, *p)
	}
	return result
}

// Len returns the number of stored plans.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.plans)
}

func (s *Store) observeStatusesLocked() {
	counts := make(map[string]int, 3)
	for _, p := range s.plans {
		counts[string(p.Status)]++
	}
	for _, status := range []Status{StatusActive, StatusPaused, StatusCompleted} {
		metrics.SetPlansByStatus(string(status), counts[string(status)])
	}
}
