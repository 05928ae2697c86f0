package model

type Frequency string

const (
	FrequencyWeekly     Frequency = "WEEKLY"
	FrequencyMonthly    Frequency = "MONTHLY"
	FrequencyQuarterly  Frequency = "QUARTERLY"
	FrequencySemiannual Frequency = "SEMIANNUAL"
	FrequencyAnnual     Frequency = "ANNUAL"
	FrequencyCustom     Frequency = "CUSTOM"
)

// Valid reports whether f is one of the known frequency codes.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly,
		FrequencySemiannual, FrequencyAnnual, FrequencyCustom:
		return true
	}
	return false
}
