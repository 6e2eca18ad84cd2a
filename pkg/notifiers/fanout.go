package notifiers

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Fanout delivers each event to every sink concurrently.
type Fanout struct {
	sinks []Publisher
}

// NewFanout drops nil entries from pubs.
func NewFanout(pubs []Publisher) *Fanout {
	f := &Fanout{}
	for _, p := range pubs {
		if p != nil {
			f.sinks = append(f.sinks, p)
		}
	}
	return f
}

// Publish waits for every sink and returns how many accepted the event. Sink
// errors are joined in registration order.
func (f *Fanout) Publish(ctx context.Context, evt Event) (int, error) {
	n := f.Size()
	if n == 0 {
		return 0, nil
	}
	if n == 1 {
		if err := f.sinks[0].Publish(ctx, evt); err != nil {
			return 0, sinkError(f.sinks[0], err)
		}
		return 1, nil
	}

	errs := make([]error, n)
	var wg sync.WaitGroup
	wg.Add(n)
	for i, p := range f.sinks {
		go func(i int, p Publisher) {
			defer wg.Done()
			if err := p.Publish(ctx, evt); err != nil {
				errs[i] = sinkError(p, err)
			}
		}(i, p)
	}
	wg.Wait()

	delivered := 0
	for _, err := range errs {
		if err == nil {
			delivered++
		}
	}
	return delivered, errors.Join(errs...)
}

func sinkError(p Publisher, err error) error {
	return fmt.Errorf("%s sink[%s]: %w", p.Type(), p.ID(), err)
}

// Size returns the number of sinks.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.sinks)
}
