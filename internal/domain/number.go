package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is an upstream numeric field. Steam returns some numbers as JSON
// strings and others as JSON numbers; anything unparsable decodes to 0.
type Number float64

// UnmarshalJSON never fails.
func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number(ParseNumber(data))
	return nil
}

// Float returns the value as float64.
func (n Number) Float() float64 {
	return float64(n)
}

// Int returns the value truncated to an int.
func (n Number) Int() int {
	return int(n)
}

// ParseNumber parses a raw JSON value that may be a number, a numeric
// string, a boolean or null. Invalid input yields 0.
func ParseNumber(raw []byte) float64 {
	f, _ := parseNumber(raw)
	return f
}

// parseNumber reports ok=false for anything that is not a finite number
// or numeric string.
func parseNumber(raw []byte) (float64, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0, false
	}

	s := string(raw)
	switch raw[0] {
	case '"':
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return 0, false
		}
		s = strings.TrimSpace(str)
	case 't', 'f', 'n', '{', '[':
		return 0, false
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// OptionalNumber is a Number that remembers whether the upstream sent a
// usable value. Absent, null and unparsable fields are all unset, so a
// reported zero stays distinguishable from no value at all.
type OptionalNumber struct {
	Number Number
	Set    bool
}

// UnmarshalJSON never fails.
func (o *OptionalNumber) UnmarshalJSON(data []byte) error {
	f, ok := parseNumber(data)
	*o = OptionalNumber{Number: Number(f), Set: ok}
	return nil
}

// MarshalJSON writes null when unset.
func (o OptionalNumber) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("null"), nil
	}
	return json.Marshal(float64(o.Number))
}

// Get returns the value and whether it was set.
func (o OptionalNumber) Get() (float64, bool) {
	return o.Number.Float(), o.Set
}

// Flag is an upstream boolean that may arrive as true/false, 0/1 or a
// string form of either.
type Flag bool

// UnmarshalJSON never fails.
func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch strings.ToLower(strings.Trim(string(data), `"`)) {
	case "true", "1":
		*f = true
	default:
		*f = Flag(ParseNumber(data) != 0)
	}
	return nil
}

// UnmarshalJSON ignores anything that is not an object.
func (v *VoteData) UnmarshalJSON(data []byte) error {
	type plain VoteData
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*v = VoteData{}
		return nil
	}
	*v = VoteData(p)
	return nil
}

// UnmarshalJSON ignores anything that is not an object.
func (v *VoteSummary) UnmarshalJSON(data []byte) error {
	type plain VoteSummary
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		*v = VoteSummary{}
		return nil
	}
	*v = VoteSummary(p)
	return nil
}
