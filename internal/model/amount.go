package model

import (
	"bytes"
	"math"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Amount is a monetary value in the user's currency. NaN marks an unset
// value, which is distinct from zero.
type Amount float64

// Absent returns the unset amount.
func Absent() Amount { return Amount(math.NaN()) }

// Valid reports whether a holds a usable number.
func (a Amount) Valid() bool {
	f := float64(a)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Float returns the amount and whether it is set.
func (a Amount) Float() (float64, bool) {
	return float64(a), a.Valid()
}

// MarshalJSON writes unset amounts as null.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid() {
		return []byte("null"), nil
	}
	return strconv.AppendFloat(nil, float64(a), 'f', -1, 64), nil
}

// UnmarshalJSON reads null, numbers, and numeric strings. Anything else
// decodes as unset rather than failing the whole document.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Absent()
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*a = Absent()
			return nil
		}
		*a = ParseAmount(s)
		return nil
	}
	f, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		*a = Absent()
		return nil
	}
	*a = Amount(f)
	return nil
}

// ParseAmount parses user input. Blank or non-numeric input is unset.
// A decimal comma is accepted.
func ParseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	if s == "" {
		return Absent()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) {
		return Absent()
	}
	return Amount(f)
}

// String renders the raw number, or an empty string when unset.
func (a Amount) String() string {
	if !a.Valid() {
		return ""
	}
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}
