package scheduler

import "errors"

var (
	// ErrInvalidSchedule is returned for a schedule that is not "minute hour * * *"
	ErrInvalidSchedule = errors.New("invalid schedule")

	// ErrNoJob is returned when a trigger is created without a job
	ErrNoJob = errors.New("scheduler job is required")
)
