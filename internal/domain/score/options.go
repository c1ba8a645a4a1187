package score

// Option applies a configuration option to a Table.
type Option func(*Table)

// WithStrictVariant tightens the mid-tier values to Flash 0.9 and
// Redpoint 0.7. Results are not comparable across variants.
func WithStrictVariant() Option {
	return func(t *Table) {
		t.flash = strictFlash
		t.redpoint = strictRedpoint
	}
}

// WithFlashScore overrides the Flash score.
func WithFlashScore(v float64) Option {
	return func(t *Table) {
		if v >= 0 && v <= 1 {
			t.flash = v
		}
	}
}

// WithRedpointScore overrides the Redpoint score.
func WithRedpointScore(v float64) Option {
	return func(t *Table) {
		if v >= 0 && v <= 1 {
			t.redpoint = v
		}
	}
}
