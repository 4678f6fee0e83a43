// Package format renders amounts and profit figures for display.
package format

import (
	"math"

	"github.com/dustin/go-humanize"

	"github.com/nhle/sortbase/internal/model"
)

// Placeholder is shown in place of an unset amount.
const Placeholder = "-"

// Class is the sign classification of a profit figure.
type Class int

const (
	Unknown Class = iota
	Gain
	Loss
	Neutral
)

// String returns the class name understood by theme.ProfitStyle.
func (c Class) String() string {
	switch c {
	case Gain:
		return "gain"
	case Loss:
		return "loss"
	case Neutral:
		return "neutral"
	default:
		return "unknown"
	}
}

// Classify reports whether a profit is a gain, a loss, exactly zero, or
// unknown because it is unset.
func Classify(profit model.Amount) Class {
	f, ok := profit.Float()
	switch {
	case !ok:
		return Unknown
	case f > 0:
		return Gain
	case f < 0:
		return Loss
	default:
		return Neutral
	}
}

// Formatter renders amounts with a currency symbol.
type Formatter struct {
	Currency string
}

// New returns a Formatter for the given currency symbol.
func New(currency string) Formatter {
	return Formatter{Currency: currency}
}

// Money renders a with two decimals and thousands separators, or the
// placeholder when a is unset.
func (f Formatter) Money(a model.Amount) string {
	v, ok := a.Float()
	if !ok {
		return Placeholder
	}
	sign := ""
	if v < 0 {
		sign = "-"
	}
	return sign + f.Currency + humanize.FormatFloat("#,###.##", math.Abs(v))
}

// Profit renders a profit figure, prefixing gains with "+".
func (f Formatter) Profit(a model.Amount) string {
	if Classify(a) == Gain {
		return "+" + f.Money(a)
	}
	return f.Money(a)
}

// Label names a profit figure by its class.
func Label(c Class) string {
	switch c {
	case Gain:
		return "Profit"
	case Loss:
		return "Loss"
	case Neutral:
		return "Break-even"
	default:
		return "Profit"
	}
}

// Count renders an integer count with thousands separators.
func Count(n int) string {
	return humanize.Comma(int64(n))
}
