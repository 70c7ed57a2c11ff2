package plan

import "errors"

var (
	ErrPlanNotFound  = errors.New("plan not found")
	ErrMonthNotFound = errors.New("month not found in plan")

	// ErrLastPlan guards the non-empty invariant: the sole remaining
	// plan cannot be deleted.
	ErrLastPlan = errors.New("cannot delete the last remaining plan")

	// ErrPremiumRequired signals a feature-gating rejection, distinct
	// from a validation error.
	ErrPremiumRequired = errors.New("premium required")

	// ErrInvalidSchedule rejects a generated schedule that does not
	// contain exactly 12 values.
	ErrInvalidSchedule = errors.New("generated schedule must contain exactly 12 values")

	ErrInvalidReminder = errors.New("invalid reminder settings")
)
