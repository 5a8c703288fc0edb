package friends

import "sync"

// Viewers hands out one Controller per viewer id.
type Viewers struct {
	users    UserDirectory
	onChange TransitionFunc

	mu          sync.Mutex
	controllers map[string]*Controller
}

// NewViewers creates an empty set of controllers sharing users and onChange.
func NewViewers(users UserDirectory, onChange TransitionFunc) *Viewers {
	return &Viewers{
		users:       users,
		onChange:    onChange,
		controllers: make(map[string]*Controller),
	}
}

// Get returns the viewer's controller, creating it on first use.
func (v *Viewers) Get(viewer string) *Controller {
	v.mu.Lock()
	defer v.mu.Unlock()
	ctrl, ok := v.controllers[viewer]
	if !ok {
		ctrl = NewController(viewer, v.users, v.onChange)
		v.controllers[viewer] = ctrl
	}
	return ctrl
}

// Forget drops the viewer's controller, e.g. on logout.
func (v *Viewers) Forget(viewer string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.controllers, viewer)
}

// Len reports how many viewers hold a controller.
func (v *Viewers) Len() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.controllers)
}
