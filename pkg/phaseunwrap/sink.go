package phaseunwrap

import "context"

// Sink receives the finished unwrapped phase map of a run, for rendering or
// export. Implementations must not modify the map.
type Sink interface {
	Consume(ctx context.Context, m *UnwrappedPhaseMap) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, m *UnwrappedPhaseMap) error

func (f SinkFunc) Consume(ctx context.Context, m *UnwrappedPhaseMap) error { return f(ctx, m) }
