package core

import "fmt"

// ConfigError reports an invalid input parameter. Configuration errors
// are rejected at the component boundary before any work is done, so a
// caller never sees partially-processed results alongside one.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErrorf(field, format string, args ...any) error {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// UndefinedReason explains why a metric carries no value. Reason codes
// are part of the result surface so callers can branch on them instead
// of sniffing NaN or zero.
type UndefinedReason string

const (
	ReasonNoFeasibleSamples UndefinedReason = "no_feasible_samples"
	ReasonZeroISLCost       UndefinedReason = "zero_isl_unit_cost"
	ReasonZeroOpexSavings   UndefinedReason = "zero_annual_opex_savings"
)

// Metric is a scalar that may be undefined. Aggregates over an empty
// feasible-sample set and divisions by zero surface as undefined
// metrics with a reason code rather than as silent zeros or ±Inf.
// Callers must check Defined before using Value.
type Metric struct {
	Value   float64         `json:"value"`
	Defined bool            `json:"defined"`
	Reason  UndefinedReason `json:"reason,omitempty"`
}

// DefinedMetric wraps a concrete value.
func DefinedMetric(v float64) Metric {
	return Metric{Value: v, Defined: true}
}

// UndefinedMetric marks a metric as having no value for the given reason.
func UndefinedMetric(reason UndefinedReason) Metric {
	return Metric{Defined: false, Reason: reason}
}

func (m Metric) String() string {
	if !m.Defined {
		return fmt.Sprintf("undefined (%s)", m.Reason)
	}
	return fmt.Sprintf("%.3f", m.Value)
}

// IntMetric is the integer counterpart of Metric, used for counts such
// as the cost tipping point.
type IntMetric struct {
	Value   int             `json:"value"`
	Defined bool            `json:"defined"`
	Reason  UndefinedReason `json:"reason,omitempty"`
}

func DefinedIntMetric(v int) IntMetric {
	return IntMetric{Value: v, Defined: true}
}

func UndefinedIntMetric(reason UndefinedReason) IntMetric {
	return IntMetric{Defined: false, Reason: reason}
}

func (m IntMetric) String() string {
	if !m.Defined {
		return fmt.Sprintf("undefined (%s)", m.Reason)
	}
	return fmt.Sprintf("%d", m.Value)
}
