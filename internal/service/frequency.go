package service

import (
	"time"

	"github.com/adlet/fieldops-planning/internal/model"
)

// customFallbackDays applies when a CUSTOM frequency carries no day
// interval. Documented fallback, not an error.
const customFallbackDays = 30

// NextDate computes the next occurrence after last for the given frequency.
// Month-based frequencies use time.AddDate, which normalizes overflow:
// Jan 31 + 1 month lands on Mar 3 (Mar 2 in leap years), never on a
// clamped Feb 28. Pure and deterministic.
func NextDate(last time.Time, frequency model.Frequency, customDays int) time.Time {
	switch frequency {
	case model.FrequencyWeekly:
		return last.AddDate(0, 0, 7)
	case model.FrequencyMonthly:
		return last.AddDate(0, 1, 0)
	case model.FrequencyQuarterly:
		return last.AddDate(0, 3, 0)
	case model.FrequencySemiannual:
		return last.AddDate(0, 6, 0)
	case model.FrequencyAnnual:
		return last.AddDate(1, 0, 0)
	case model.FrequencyCustom:
		if customDays <= 0 {
			customDays = customFallbackDays
		}
		return last.AddDate(0, 0, customDays)
	default:
		// Unknown codes fall back to the CUSTOM default interval so a
		// schedule never stalls on a single bad row.
		return last.AddDate(0, 0, customFallbackDays)
	}
}
