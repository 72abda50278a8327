package dedupe

type options struct {
	capacity int
}

// Option configures a Set.
type Option func(*options)

// WithCapacity presizes the set for n names. Non-positive values are ignored.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}
