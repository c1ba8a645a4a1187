package ingest

// Default cap on the dedupe seen-set; beyond this, later rows pass
// through unchecked rather than growing memory without bound.
const defaultDedupeLimit = 1 << 20

// tickSettings carries ReadTicks options.
type tickSettings struct {
	dedupe      bool
	dedupeLimit int
}

// TickOption applies a configuration option to ReadTicks.
type TickOption func(*tickSettings)

// WithDedupe suppresses exact duplicate tick rows.
func WithDedupe() TickOption {
	return func(s *tickSettings) {
		s.dedupe = true
		if s.dedupeLimit == 0 {
			s.dedupeLimit = defaultDedupeLimit
		}
	}
}

// WithDedupeLimit caps the number of distinct rows remembered.
func WithDedupeLimit(n int) TickOption {
	return func(s *tickSettings) {
		if n > 0 {
			s.dedupeLimit = n
		}
	}
}
