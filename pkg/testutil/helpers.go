// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/sip-planner/internal/plan"
)

// FindPlanByToken finds the first plan for token in the plans slice.
// Returns a pointer to the plan if found, nil otherwise.
func FindPlanByToken(plans []plan.Plan, token string) *plan.Plan {
	for i := range plans {
		if plans[i].Token == token {
			return &plans[i]
		}
	}
	return nil
}
