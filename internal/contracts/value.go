package contracts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Value is a derived metric value
// NaN is a defined sentinel ("no meaningful basis") and renders as "NaN"
type Value float64

// NaN returns the not-a-number sentinel
func NaN() Value {
	return Value(math.NaN())
}

// IsNaN reports whether v is the not-a-number sentinel
func (v Value) IsNaN() bool {
	return math.IsNaN(float64(v))
}

// Float returns v as float64
func (v Value) Float() float64 {
	return float64(v)
}

// String formats v with two decimals, or "NaN"
func (v Value) String() string {
	if v.IsNaN() {
		return "NaN"
	}
	return strconv.FormatFloat(float64(v), 'f', 2, 64)
}

// MarshalJSON encodes NaN as the string "NaN" since JSON has no NaN literal
func (v Value) MarshalJSON() ([]byte, error) {
	if v.IsNaN() {
		return []byte(`"NaN"`), nil
	}
	if math.IsInf(float64(v), 0) {
		return nil, fmt.Errorf("value %v is not representable", float64(v))
	}
	return []byte(strconv.FormatFloat(float64(v), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number or the string "NaN"
func (v *Value) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != "NaN" {
			return fmt.Errorf("invalid value %q", s)
		}
		*v = NaN()
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Value(f)
	return nil
}
