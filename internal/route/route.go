// Package route names the client's screens and the navigation contract
// between the state controllers and whatever renders them.
package route

import "sync"

// Route identifies a screen by its path.
type Route string

const (
	Register Route = "/"
	List     Route = "/student-list"
	Login    Route = "/login"
)

// Default is the screen a session starts on.
const Default = Register

// Navigator switches the active screen.
type Navigator interface {
	Navigate(to Route)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(to Route)

func (f NavigatorFunc) Navigate(to Route) { f(to) }

// Recorder is a Navigator that remembers every requested route.
type Recorder struct {
	mu     sync.Mutex
	routes []Route
}

func (r *Recorder) Navigate(to Route) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes = append(r.routes, to)
}

// Last returns the most recent route and whether any navigation happened.
func (r *Recorder) Last() (Route, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.routes) == 0 {
		return "", false
	}
	return r.routes[len(r.routes)-1], true
}

// Count returns how many navigations were requested.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.routes)
}
