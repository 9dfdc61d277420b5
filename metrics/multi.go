package metrics

import "github.com/krisalay/object-cache/types"

// Multi forwards every event to each of its sinks in order.
type Multi []types.Metrics

var _ types.Metrics = Multi(nil)

func (m Multi) Hit() {
	for _, s := range m {
		s.Hit()
	}
}

func (m Multi) Miss() {
	for _, s := range m {
		s.Miss()
	}
}

func (m Multi) Eviction() {
	for _, s := range m {
		s.Eviction()
	}
}

func (m Multi) Expire() {
	for _, s := range m {
		s.Expire()
	}
}

func (m Multi) Size(n int) {
	for _, s := range m {
		s.Size(n)
	}
}
