// Package dispatch holds a single piece of state that changes only by
// folding events through a pure reducer.
package dispatch

import "sync"

// Reducer computes the next state. It must not perform I/O.
type Reducer[S, E any] func(S, E) S

// Listener is notified after every dispatched event with the resulting state.
type Listener[S, E any] func(state S, event E)

// Dispatcher owns the live state, an append-only event log and its listeners.
type Dispatcher[S, E any] struct {
	reduce Reducer[S, E]

	lock      sync.Mutex
	state     S
	events    []E
	listeners []Listener[S, E]
}

func New[S, E any](initial S, reduce Reducer[S, E]) *Dispatcher[S, E] {
	return &Dispatcher[S, E]{
		reduce: reduce,
		state:  initial,
	}
}

// Dispatch applies event and returns the new state. Listeners run after the
// state is committed, outside the lock, in subscription order.
func (d *Dispatcher[S, E]) Dispatch(event E) S {
	d.lock.Lock()
	d.state = d.reduce(d.state, event)
	d.events = append(d.events, event)
	state := d.state
	listeners := append([]Listener[S, E](nil), d.listeners...)
	d.lock.Unlock()

	for _, l := range listeners {
		l(state, event)
	}
	return state
}

func (d *Dispatcher[S, E]) State() S {
	d.lock.Lock()
	defer d.lock.Unlock()
	return d.state
}

// Events returns a copy of every event dispatched so far.
func (d *Dispatcher[S, E]) Events() []E {
	d.lock.Lock()
	defer d.lock.Unlock()
	return append([]E(nil), d.events...)
}

func (d *Dispatcher[S, E]) Subscribe(l Listener[S, E]) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.listeners = append(d.listeners, l)
}
