/*
rules.go - Business rule set parameterizing all calculation

PURPOSE:
  Holds the numeric constants every downstream calculation is parameterized
  by. The rule set is an immutable value passed explicitly into each entry
  point, never process-wide state, so multiple rule sets (per contract, per
  jurisdiction) can be evaluated concurrently without interference.

RULES:
  PaidHoursPerShift       Overtime threshold AND the scheduled-hours
                          baseline for lost-hours calculation. A shift is
                          either fully staffed against this constant or it
                          is not; there is no partial scheduling concept.
  OvertimeRate            Multiplier applied to hours above the threshold.
  NightShiftAllowanceRate Fraction of pay added for night-shift hours,
                          stacked on top of regular/overtime pay.
  StandardHoursPerWeek    Used only by collaborators outside the lost-hours
                          core (weekly cost projection in workforce.go).

SEE ALSO:
  - calculator.go: Applies the first three rules per shift
  - workforce.go: The one consumer of StandardHoursPerWeek
  - factory/: JSON rule-set definitions and named presets
*/
package engine

import "github.com/shopspring/decimal"

// Rules is the business rule set. Treat as immutable once constructed.
type Rules struct {
	PaidHoursPerShift       decimal.Decimal
	OvertimeRate            decimal.Decimal
	NightShiftAllowanceRate decimal.Decimal
	StandardHoursPerWeek    decimal.Decimal
}

// DefaultRules returns the production rule set: 7.5 paid hours per shift,
// 1.5x overtime, 10% night allowance, 45-hour standard week.
func DefaultRules() Rules {
	return Rules{
		PaidHoursPerShift:       decimal.NewFromFloat(7.5),
		OvertimeRate:            decimal.NewFromFloat(1.5),
		NightShiftAllowanceRate: decimal.NewFromFloat(0.10),
		StandardHoursPerWeek:    decimal.NewFromInt(45),
	}
}
