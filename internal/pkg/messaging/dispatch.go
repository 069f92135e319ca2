package messaging

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// responder guards a received message against double ack/nack.
type responder struct {
	done atomic.Bool
}

func (r *responder) hasResponded() bool { return r.done.Load() }

// respond reports whether this call is the first response.
func (r *responder) respond() bool { return !r.done.Swap(true) }

type settleable interface {
	Message
	Nackable
	hasResponded() bool
}

// dispatch runs handler with panic recovery and, with autoAck, settles the
// message unless the handler already did.
func dispatch(ctx context.Context, kind string, handler Handler, msg settleable, autoAck bool) error {
	herr := callHandlerWithRecover(ctx, kind, func() error {
		return handler(ctx, msg)
	})

	if !autoAck || msg.hasResponded() {
		return nil
	}
	if herr == nil {
		return msg.Ack(ctx)
	}
	return msg.Nack(ctx)
}

// startWorkers drains in with n goroutines. A worker stops at the first fn
// error after passing it to onErr.
func startWorkers[T any](n int, in <-chan T, fn func(T) error, onErr func(error)) *sync.WaitGroup {
	var wg sync.WaitGroup
	for range n {
		wg.Go(func() {
			for item := range in {
				if err := fn(item); err != nil {
					if onErr != nil {
						onErr(err)
					}
					return
				}
			}
		})
	}
	return &wg
}

func trySendErr(ch chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case ch <- err:
	default:
	}
}
