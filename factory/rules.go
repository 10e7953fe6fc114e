/*
Package factory provides JSON to Go rule-set conversion.

PURPOSE:
  Converts JSON rule-set definitions into engine.Rules values. This keeps
  business constants out of code: a deployment (or an individual contract
  or jurisdiction) defines its rule set in JSON, and the factory produces
  the immutable Rules value the engine entry points take.

JSON SCHEMA:
  {
    "id": "za-warehouse",
    "name": "ZA Warehouse Standard",
    "paid_hours_per_shift": 7.5,
    "overtime_rate": 1.5,
    "night_shift_allowance_rate": 0.10,
    "standard_hours_per_week": 45
  }

DEFAULTS:
  Omitted fields fall back to the production defaults (engine.DefaultRules).
  Negative values are rejected; zero paid hours per shift is rejected
  because every downstream ratio divides by it.

PRESETS:
  Named presets cover the common deployments so the server can start from
  a flag instead of a config file.

SEE ALSO:
  - engine/rules.go: The Rules value this produces
  - cmd/server/main.go: Selects a preset via -rules
*/
package factory

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/labor-analytics/engine"
)

// ErrUnknownPreset is returned when a preset name is not registered.
var ErrUnknownPreset = errors.New("unknown rules preset")

// RulesJSON is the JSON representation of a rule set. Pointer fields
// distinguish "omitted" (use the default) from an explicit zero.
type RulesJSON struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	PaidHoursPerShift       *float64 `json:"paid_hours_per_shift,omitempty"`
	OvertimeRate            *float64 `json:"overtime_rate,omitempty"`
	NightShiftAllowanceRate *float64 `json:"night_shift_allowance_rate,omitempty"`
	StandardHoursPerWeek    *float64 `json:"standard_hours_per_week,omitempty"`
}

// ParseRules converts a JSON rule-set definition into engine.Rules.
func ParseRules(data []byte) (engine.Rules, error) {
	var cfg RulesJSON
	if err := json.Unmarshal(data, &cfg); err != nil {
		return engine.Rules{}, fmt.Errorf("invalid rules JSON: %w", err)
	}
	return RulesFromConfig(cfg)
}

// RulesFromConfig applies defaults and validation to a parsed definition.
func RulesFromConfig(cfg RulesJSON) (engine.Rules, error) {
	rules := engine.DefaultRules()

	if cfg.PaidHoursPerShift != nil {
		if *cfg.PaidHoursPerShift <= 0 {
			return engine.Rules{}, fmt.Errorf("paid_hours_per_shift must be positive, got %v", *cfg.PaidHoursPerShift)
		}
		rules.PaidHoursPerShift = decimal.NewFromFloat(*cfg.PaidHoursPerShift)
	}
	if cfg.OvertimeRate != nil {
		if *cfg.OvertimeRate < 0 {
			return engine.Rules{}, fmt.Errorf("overtime_rate must be non-negative, got %v", *cfg.OvertimeRate)
		}
		rules.OvertimeRate = decimal.NewFromFloat(*cfg.OvertimeRate)
	}
	if cfg.NightShiftAllowanceRate != nil {
		if *cfg.NightShiftAllowanceRate < 0 {
			return engine.Rules{}, fmt.Errorf("night_shift_allowance_rate must be non-negative, got %v", *cfg.NightShiftAllowanceRate)
		}
		rules.NightShiftAllowanceRate = decimal.NewFromFloat(*cfg.NightShiftAllowanceRate)
	}
	if cfg.StandardHoursPerWeek != nil {
		if *cfg.StandardHoursPerWeek < 0 {
			return engine.Rules{}, fmt.Errorf("standard_hours_per_week must be non-negative, got %v", *cfg.StandardHoursPerWeek)
		}
		rules.StandardHoursPerWeek = decimal.NewFromFloat(*cfg.StandardHoursPerWeek)
	}
	return rules, nil
}

// =============================================================================
// PRESETS
// =============================================================================

func f(v float64) *float64 { return &v }

var presets = map[string]RulesJSON{
	// The production warehouse rule set; identical to the defaults.
	"standard": {
		ID:   "standard",
		Name: "Standard Warehouse",
	},
	// Contract variant with an 8-hour paid shift and flat overtime.
	"eight-hour-flat": {
		ID:                "eight-hour-flat",
		Name:              "Eight Hour Flat Overtime",
		PaidHoursPerShift: f(8),
		OvertimeRate:      f(1.0),
	},
	// Jurisdiction variant with double-time overtime and a richer night
	// allowance.
	"double-time-night": {
		ID:                      "double-time-night",
		Name:                    "Double Time / 15% Night",
		OvertimeRate:            f(2.0),
		NightShiftAllowanceRate: f(0.15),
	},
}

// Preset returns the named rule set.
func Preset(name string) (engine.Rules, error) {
	cfg, ok := presets[name]
	if !ok {
		return engine.Rules{}, fmt.Errorf("%w: %q", ErrUnknownPreset, name)
	}
	return RulesFromConfig(cfg)
}

// PresetNames lists the registered presets, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
