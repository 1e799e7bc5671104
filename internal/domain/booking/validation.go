package booking

import (
	"time"

	"rukorent/internal/domain/ruko"
	"rukorent/internal/domain/shared/daterange"
)

const (
	ReasonDatesRequired     = "start and end dates are required."
	ReasonMinimumMonth      = "minimum one month for monthly rentals."
	ReasonMinimumYear       = "minimum one year for yearly rentals."
	ReasonEndBeforeStart    = "end date must be after start date."
	ReasonTenantIncomplete  = "tenant details incomplete."
	ReasonUnknownRentalType = "unknown rental type."
)

// ValidationError is a recoverable rejection: the user edits the form and resubmits.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "booking: " + e.Reason
}

type ValidationResult struct {
	Valid  bool
	Reason string
}

func valid() ValidationResult { return ValidationResult{Valid: true} }

func invalid(reason string) ValidationResult {
	return ValidationResult{Reason: reason}
}

// Err returns nil for a valid result and a *ValidationError otherwise.
func (r ValidationResult) Err() error {
	if r.Valid {
		return nil
	}
	return &ValidationError{Reason: r.Reason}
}

// ValidateDates checks the requested period against the ruko's cadence. Durations
// are measured in calendar boundaries crossed, see daterange.MonthsBetween.
// The cadence minimum is reported ahead of a reversed range.
func ValidateDates(rentalType ruko.RentalType, start, end time.Time) ValidationResult {
	if start.IsZero() || end.IsZero() {
		return invalid(ReasonDatesRequired)
	}
	if !rentalType.Valid() {
		return invalid(ReasonUnknownRentalType)
	}
	period := daterange.DateRange{Start: start.UTC(), End: end.UTC()}
	if rentalType == ruko.RentalYearly {
		if period.Years() < 1 {
			return invalid(ReasonMinimumYear)
		}
	} else if period.Months() < 1 {
		return invalid(ReasonMinimumMonth)
	}
	if err := period.Validate(); err != nil {
		return invalid(ReasonEndBeforeStart)
	}
	return valid()
}

// Validate is the gate in front of submission.
func Validate(rentalType ruko.RentalType, d Draft) ValidationResult {
	if res := ValidateDates(rentalType, d.Start, d.End); !res.Valid {
		return res
	}
	if !d.Tenant.Complete() {
		return invalid(ReasonTenantIncomplete)
	}
	return valid()
}
