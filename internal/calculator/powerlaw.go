package calculator

import (
	"math"
	"time"
)

// Genesis is the fixed time origin of the power-law model (days = 0).
var Genesis = time.Date(2009, time.January, 3, 0, 0, 0, 0, time.UTC)

const (
	// DefaultCoefficient and DefaultExponent are the fixed fit parameters.
	// They are inputs to this system, not derived here.
	DefaultCoefficient = 1.0117e-17
	DefaultExponent    = 5.82

	// DefaultStdDev is the residual standard deviation of log-price used
	// when no externally supplied value is available.
	DefaultStdDev = 0.6

	// ProjectToYear is the last calendar year the model series extends to.
	ProjectToYear = 2030

	dayMillis = 24 * 60 * 60 * 1000
)

// Params holds the fixed power-law parameters. Coefficient and Exponent must
// be positive; StdDev is the residual sigma used for the confidence bands.
type Params struct {
	Coefficient float64
	Exponent    float64
	StdDev      float64
}

// DefaultParams returns the stock model parameters.
func DefaultParams() Params {
	return Params{
		Coefficient: DefaultCoefficient,
		Exponent:    DefaultExponent,
		StdDev:      DefaultStdDev,
	}
}

// FairPrice evaluates coefficient * days^exponent. Negative days is a caller
// contract violation and is clamped to 0 rather than producing NaN.
func (p Params) FairPrice(days float64) float64 {
	if days < 0 {
		days = 0
	}
	return p.Coefficient * math.Pow(days, p.Exponent)
}

// Bands returns the upper and lower confidence bands around a fair price.
// The multipliers are deliberately asymmetric: +2 sigma above, -1 sigma
// below. The underlying process is log-normal-like, so comparisons against
// fair value belong in ratio space.
func (p Params) Bands(fair float64) (upper, lower float64) {
	return fair * math.Exp(2*p.StdDev), fair * math.Exp(-p.StdDev)
}

// DaysSinceGenesis converts a timestamp to fractional days since genesis.
func DaysSinceGenesis(t time.Time) float64 {
	return float64(t.UnixMilli()-Genesis.UnixMilli()) / float64(dayMillis)
}

// GenesisPlusDays converts fractional days since genesis back to a timestamp.
func GenesisPlusDays(days float64) time.Time {
	return time.UnixMilli(Genesis.UnixMilli() + int64(days*dayMillis)).UTC()
}
