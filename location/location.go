// Package location supplies the device coordinates attached to an
// internship registration.
package location

import (
	"context"
	"sync"
	"time"

	"github.com/jrsteele09/go-internship-client/apierr"
)

const unavailableMessage = "Unable to retrieve your current location. Please ensure GPS is enabled."

// Coordinates is a position fix.
type Coordinates struct {
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	At        time.Time `json:"-"`
}

// Provider returns the current coordinates.
type Provider interface {
	Coordinates(ctx context.Context) (Coordinates, error)
}

// LastKnownProvider can report a cached fix without a new reading.
// ok is false when there is none.
type LastKnownProvider interface {
	LastKnown(ctx context.Context) (c Coordinates, ok bool)
}

// ProviderFunc adapts a function to Provider.
type ProviderFunc func(ctx context.Context) (Coordinates, error)

func (f ProviderFunc) Coordinates(ctx context.Context) (Coordinates, error) {
	return f(ctx)
}

// Unavailable is the error returned when no fix can be obtained.
func Unavailable(cause error) error {
	return apierr.Wrap(cause, apierr.CodeLocationUnavailable, unavailableMessage, 0)
}

// Static always reports the same position, e.g. coordinates given on the
// command line.
type Static struct {
	Latitude, Longitude float64
}

func (s Static) Coordinates(context.Context) (Coordinates, error) {
	return Coordinates{Latitude: s.Latitude, Longitude: s.Longitude, At: time.Now()}, nil
}

// Fallback prefers a recent last-known fix and falls back to a fresh reading.
type Fallback struct {
	LastKnown LastKnownProvider
	Current   Provider
	MaxAge    time.Duration
	NowTime   func() time.Time
}

func (f Fallback) Coordinates(ctx context.Context) (Coordinates, error) {
	now := time.Now
	if f.NowTime != nil {
		now = f.NowTime
	}
	if f.LastKnown != nil {
		if c, ok := f.LastKnown.LastKnown(ctx); ok && now().Sub(c.At) <= f.MaxAge {
			return c, nil
		}
	}
	if f.Current == nil {
		return Coordinates{}, Unavailable(nil)
	}
	c, err := f.Current.Coordinates(ctx)
	if err != nil {
		if apierr.IsCode(err, apierr.CodeLocationUnavailable) {
			return Coordinates{}, err
		}
		return Coordinates{}, Unavailable(err)
	}
	return c, nil
}

// Recorder remembers the last fix returned by a Provider so it can serve
// as a LastKnownProvider.
type Recorder struct {
	Provider Provider

	lock sync.RWMutex
	last *Coordinates
}

func (r *Recorder) Coordinates(ctx context.Context) (Coordinates, error) {
	c, err := r.Provider.Coordinates(ctx)
	if err != nil {
		return Coordinates{}, err
	}
	if c.At.IsZero() {
		c.At = time.Now()
	}
	r.lock.Lock()
	r.last = &c
	r.lock.Unlock()
	return c, nil
}

func (r *Recorder) LastKnown(context.Context) (Coordinates, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()
	if r.last == nil {
		return Coordinates{}, false
	}
	return *r.last, true
}
