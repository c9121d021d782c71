package dnd

import "sync"

// containerRegistry owns the keyed map of container registrations. It is the
// only engine structure a backend may touch from registration callbacks, so
// it carries its own lock; everything else in the engine is single-threaded
// and frame-driven.
type containerRegistry struct {
	mu         sync.RWMutex
	containers map[ContainerID]*Container
	order      []ContainerID // registration order; keyboard adjacency
	nextOrder  int
}

func newContainerRegistry() *containerRegistry {
	return &containerRegistry{
		containers: make(map[ContainerID]*Container),
	}
}

// register adds a container. A container can be registered at most once per
// id: re-registering replaces the previous entry (most recent wins) and is
// logged as a developer-facing warning rather than treated as fatal.
func (r *containerRegistry) register(c *Container) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if prev, ok := r.containers[c.id]; ok {
		dndLogger.Warn("container registered twice; keeping most recent", "id", c.id)
		c.order = prev.order
		r.containers[c.id] = c
		return
	}
	c.order = r.nextOrder
	r.nextOrder++
	r.containers[c.id] = c
	r.order = append(r.order, c.id)
}

// unregister removes a container. Unknown ids are ignored with a warning.
func (r *containerRegistry) unregister(id ContainerID) *Container {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.containers[id]
	if !ok {
		dndLogger.Warn("unregister of unknown container ignored", "id", id)
		return nil
	}
	delete(r.containers, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return c
}

// get returns the container for an id, or nil.
func (r *containerRegistry) get(id ContainerID) *Container {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.containers[id]
}

// each calls fn for every registered container in registration order.
func (r *containerRegistry) each(fn func(*Container)) {
	r.mu.RLock()
	ids := append([]ContainerID(nil), r.order...)
	r.mu.RUnlock()

	for _, id := range ids {
		if c := r.get(id); c != nil {
			fn(c)
		}
	}
}

// neighbor returns the nearest container before (dir < 0) or after (dir > 0)
// the given one in registration order whose group matches. Returns nil at
// the ends of the sequence.
func (r *containerRegistry) neighbor(id ContainerID, dir int, group string) *Container {
	r.mu.RLock()
	defer r.mu.RUnlock()

	at := -1
	for i, oid := range r.order {
		if oid == id {
			at = i
			break
		}
	}
	if at < 0 {
		return nil
	}
	for i := at + dir; i >= 0 && i < len(r.order); i += dir {
		c := r.containers[r.order[i]]
		if c != nil && c.groupMatches(group) {
			return c
		}
	}
	return nil
}
