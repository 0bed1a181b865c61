package usecase

import (
	"math"
	"sort"
	"time"

	"healthcare-booking/internal/data/entity"
)

const (
	freeCancellationHours = 24
	halfFeeHours          = 2
)

// HoursUntil is the signed number of hours from now until start.
func HoursUntil(start, now time.Time) float64 {
	return start.Sub(now).Hours()
}

// CancellationFee is a step function of the notice given:
//
//	>= 24h  -> 0
//	>= 2h   -> 50% of amount
//	<  2h   -> 100% of amount
//
// Exact boundaries fall into the cheaper tier.
func CancellationFee(amount, hoursRemaining float64) float64 {
	switch {
	case hoursRemaining >= freeCancellationHours:
		return 0
	case hoursRemaining >= halfFeeHours:
		return roundCents(amount * 0.5)
	default:
		return amount
	}
}

// CanModify reports whether a patient may still change an appointment.
func CanModify(status entity.AppointmentStatus, hoursRemaining float64, noticeHours int) bool {
	return status.Modifiable() && hoursRemaining >= float64(noticeHours)
}

// GenerateSlots enumerates step-wide start times across the open ranges of
// day, dropping booked times. The result is sorted and has no duplicates.
func GenerateSlots(day entity.DayAvailability, booked []string, step time.Duration) []string {
	slots := []string{}
	if !day.IsAvailable || step <= 0 {
		return slots
	}

	taken := make(map[string]struct{}, len(booked))
	for _, t := range booked {
		taken[t] = struct{}{}
	}

	seen := make(map[string]struct{})
	for _, r := range day.Slots {
		start, err := time.Parse(entity.TimeLayout, r.StartTime)
		if err != nil {
			continue
		}
		end, err := time.Parse(entity.TimeLayout, r.EndTime)
		if err != nil {
			continue
		}
		for t := start; t.Before(end); t = t.Add(step) {
			s := t.Format(entity.TimeLayout)
			if _, ok := taken[s]; ok {
				continue
			}
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			slots = append(slots, s)
		}
	}

	// HH:MM sorts lexically.
	sort.Strings(slots)
	return slots
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
