package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCronSchedule reads a daily cron expression "minute hour * * *".
// Only fixed minute and hour fields are supported; the day fields must be "*".
func ParseCronSchedule(cronExpr string) (hour, minute int, err error) {
	parts := strings.Fields(cronExpr)
	if len(parts) != 5 {
		return 0, 0, fmt.Errorf("%w: %q must have five fields", ErrInvalidSchedule, cronExpr)
	}
	for _, f := range parts[2:] {
		if f != "*" {
			return 0, 0, fmt.Errorf("%w: only daily schedules are supported, got %q", ErrInvalidSchedule, cronExpr)
		}
	}

	minute, err = strconv.Atoi(parts[0])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: minute must be 0-59, got %q", ErrInvalidSchedule, parts[0])
	}
	hour, err = strconv.Atoi(parts[1])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: hour must be 0-23, got %q", ErrInvalidSchedule, parts[1])
	}
	return hour, minute, nil
}
