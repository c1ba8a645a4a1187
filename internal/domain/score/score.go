// Package score maps ascent-style labels to paired-comparison scores.
package score

// Recognized lead-style labels. Anything else is not ratable.
const (
	Onsight  = "Onsight"
	Flash    = "Flash"
	Redpoint = "Redpoint"
	FellHung = "Fell/Hung"
)

// Standard and strict table values. The two variants are not
// comparable rating systems; a run uses exactly one.
const (
	standardFlash    = 0.8
	standardRedpoint = 0.6
	strictFlash      = 0.9
	strictRedpoint   = 0.7
)

// Table resolves a lead-style label to a comparison score in [0,1].
// The zero value is not usable; construct with NewTable.
type Table struct {
	flash    float64
	redpoint float64
}

// NewTable returns the standard score table
// (Onsight 1.0, Flash 0.8, Redpoint 0.6, Fell/Hung 0.0).
func NewTable(opts ...Option) Table {
	t := Table{flash: standardFlash, redpoint: standardRedpoint}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// Score returns the comparison score for a lead-style label. The
// second return is false for any label outside the recognized set,
// including the empty string; such ticks contribute no comparison.
func (t Table) Score(style string) (float64, bool) {
	switch style {
	case Onsight:
		return 1.0, true
	case Flash:
		return t.flash, true
	case Redpoint:
		return t.redpoint, true
	case FellHung:
		return 0.0, true
	}
	return 0, false
}

// Flash returns the configured Flash score.
func (t Table) Flash() float64 { return t.flash }

// Redpoint returns the configured Redpoint score.
func (t Table) Redpoint() float64 { return t.redpoint }
