package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/adlet/fieldops-planning/internal/model"
)

func TestNextDate(t *testing.T) {
	tests := []struct {
		name       string
		last       time.Time
		frequency  model.Frequency
		customDays int
		want       time.Time
	}{
		{"weekly", date(2024, time.January, 15), model.FrequencyWeekly, 0, date(2024, time.January, 22)},
		{"monthly", date(2024, time.January, 15), model.FrequencyMonthly, 0, date(2024, time.February, 15)},
		{"quarterly", date(2024, time.January, 15), model.FrequencyQuarterly, 0, date(2024, time.April, 15)},
		{"semiannual", date(2024, time.January, 15), model.FrequencySemiannual, 0, date(2024, time.July, 15)},
		{"annual", date(2024, time.January, 15), model.FrequencyAnnual, 0, date(2025, time.January, 15)},
		{"custom", date(2024, time.January, 15), model.FrequencyCustom, 45, date(2024, time.February, 29)},
		{"custom zero falls back to 30 days", date(2024, time.January, 15), model.FrequencyCustom, 0, date(2024, time.February, 14)},
		{"custom negative falls back to 30 days", date(2024, time.January, 15), model.FrequencyCustom, -5, date(2024, time.February, 14)},
		// AddDate normalization: Jan 31 + 1 month overflows February.
		{"monthly from jan 31 leap year", date(2024, time.January, 31), model.FrequencyMonthly, 0, date(2024, time.March, 2)},
		{"monthly from jan 31 non-leap", date(2023, time.January, 31), model.FrequencyMonthly, 0, date(2023, time.March, 3)},
		{"annual from feb 29", date(2024, time.February, 29), model.FrequencyAnnual, 0, date(2025, time.March, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDate(tt.last, tt.frequency, tt.customDays)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextDateDeterministic(t *testing.T) {
	last := date(2024, time.June, 10)
	first := NextDate(last, model.FrequencyQuarterly, 0)
	second := NextDate(last, model.FrequencyQuarterly, 0)
	assert.Equal(t, first, second)
}

func TestNextDateAlwaysAdvances(t *testing.T) {
	frequencies := []model.Frequency{
		model.FrequencyWeekly,
		model.FrequencyMonthly,
		model.FrequencyQuarterly,
		model.FrequencySemiannual,
		model.FrequencyAnnual,
		model.FrequencyCustom,
	}
	last := date(2024, time.March, 1)
	for _, frequency := range frequencies {
		got := NextDate(last, frequency, 0)
		assert.True(t, got.After(last), "frequency %s did not advance", frequency)
	}
}
