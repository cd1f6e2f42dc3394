// Package concurrent runs an action across the elements of a sequence
// iterator on multiple goroutines.
package concurrent

import (
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/sphw/bond/pkg/sequence"
)

// Concurrent runs the action for each element of the iterator in a separate
// goroutine and waits for all of them. It returns the first error an action
// produced, if any.
func Concurrent[T any](i *sequence.Iterator[T], action func(T) error) error {
	g := errgroup.Group{}
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		g.Go(func() error {
			return action(value)
		})
	}
	return g.Wait()
}

// Throttle runs the action for each element with at most limit goroutines
// in flight.
func Throttle[T any](i *sequence.Iterator[T], limit int, action func(T)) {
	var wg sync.WaitGroup
	sem := make(chan struct{}, limit)
	next, stop := i.Pull()
	defer stop()

	for {
		value, valid := next()
		if !valid {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(v T) {
			defer wg.Done()
			action(v)
			<-sem
		}(value)
	}
	wg.Wait()
}
