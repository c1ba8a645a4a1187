package rating

// Option applies a configuration option to the Engine.
type Option[K comparable] func(*Engine[K])

// WithTau sets the volatility change constraint. Smaller values keep
// volatility more stable; Glickman suggests values between 0.3 and 1.2.
func WithTau[K comparable](tau float64) Option[K] {
	return func(e *Engine[K]) {
		if tau > 0 {
			e.tau = tau
		}
	}
}
