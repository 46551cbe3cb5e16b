package cli

import "sync"

// Router tracks the current screen. It implements profile.Navigator.
type Router struct {
	mu       sync.Mutex
	location string
	waiters  []chan string
}

func NewRouter(start string) *Router {
	return &Router{location: start}
}

// RedirectTo moves to destination and wakes every Next waiter.
func (r *Router) RedirectTo(destination string) {
	r.mu.Lock()
	r.location = destination
	waiters := r.waiters
	r.waiters = nil
	r.mu.Unlock()

	for _, w := range waiters {
		w <- destination
		close(w)
	}
}

func (r *Router) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.location
}

// Next returns a channel that receives the destination of the next redirect.
func (r *Router) Next() <-chan string {
	ch := make(chan string, 1)
	r.mu.Lock()
	r.waiters = append(r.waiters, ch)
	r.mu.Unlock()
	return ch
}
