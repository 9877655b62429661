package observability

import "context"

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnEvent(context.Context, Event) {}

// MultiObserver fans an event out to several observers in order.
type MultiObserver []Observer

func (m MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, o := range m {
		if o != nil {
			o.OnEvent(ctx, event)
		}
	}
}
