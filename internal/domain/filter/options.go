package filter

// rules carries the active eligibility settings.
type rules struct {
	leadOnly    bool
	fallersOnly bool
}

// Option applies an eligibility rule.
type Option func(*rules)

// WithLeadOnly requires the ascent mode to be exactly "Lead".
func WithLeadOnly() Option {
	return func(r *rules) { r.leadOnly = true }
}

// WithFallersOnly retains only climbers who logged at least one
// Fell/Hung tick anywhere in the full log. The predicate is evaluated
// against the completed index, never per batch.
func WithFallersOnly() Option {
	return func(r *rules) { r.fallersOnly = true }
}
