package timeline

// Frequency is the recurrence cadence of a planned budget amount.
type Frequency string

const (
	FrequencyWeekly      Frequency = "weekly"
	FrequencyFortnightly Frequency = "fortnightly"
	FrequencyMonthly     Frequency = "monthly"
	FrequencyYearly      Frequency = "yearly"
	FrequencyOnce        Frequency = "once"
)

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyFortnightly, FrequencyMonthly, FrequencyYearly, FrequencyOnce:
		return true
	}
	return false
}

// MonthlyAmount converts an amount at the given recurrence frequency into
// its monthly equivalent. One-time amounts are smeared evenly across twelve
// months. An unrecognized frequency contributes nothing; bad data is caught
// upstream by input validation.
func MonthlyAmount(amount float64, freq Frequency) float64 {
	switch freq {
	case FrequencyWeekly:
		return amount * 52 / 12
	case FrequencyFortnightly:
		return amount * 26 / 12
	case FrequencyMonthly:
		return amount
	case FrequencyYearly, FrequencyOnce:
		return amount / 12
	}
	return 0
}

// AnnualAmount converts an amount at the given recurrence frequency into
// its annual equivalent.
func AnnualAmount(amount float64, freq Frequency) float64 {
	switch freq {
	case FrequencyWeekly:
		return amount * 52
	case FrequencyFortnightly:
		return amount * 26
	case FrequencyMonthly:
		return amount * 12
	case FrequencyYearly, FrequencyOnce:
		return amount
	}
	return 0
}
