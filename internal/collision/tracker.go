package collision

import (
	"slices"

	"github.com/arloliu/savkit/errs"
)

// Tracker maps field hashes back to the names registered for them and detects names whose
// hashes collide. The first name registered for a hash is the one reported by Name.
type Tracker struct {
	names        map[uint32]string // Hash → first registered name
	namesList    []string          // Registration order
	collisions   map[uint32][]string
	hasCollision bool
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{
		names:      make(map[uint32]string),
		namesList:  make([]string, 0),
		collisions: make(map[uint32][]string),
	}
}

// Track registers a field name under its hash.
//
// Registering the same name twice is a no-op. A different name with an already registered
// hash sets the collision flag; it is kept in the registration list but Name keeps
// returning the first name.
//
// Returns errs.ErrInvalidKey if name is empty.
func (t *Tracker) Track(name string, hash uint32) error {
	if name == "" {
		return errs.ErrInvalidKey
	}

	if existing, exists := t.names[hash]; exists {
		if existing == name {
			return nil
		}
		for _, other := range t.collisions[hash] {
			if other == name {
				return nil
			}
		}
		if len(t.collisions[hash]) == 0 {
			t.collisions[hash] = append(t.collisions[hash], existing)
		}
		t.collisions[hash] = append(t.collisions[hash], name)
		t.hasCollision = true
		t.namesList = append(t.namesList, name)

		return nil
	}

	t.names[hash] = name
	t.namesList = append(t.namesList, name)

	return nil
}

// Name returns the first name registered for hash.
func (t *Tracker) Name(hash uint32) (string, bool) {
	name, ok := t.names[hash]
	return name, ok
}

// Colliding returns every name registered for hash when more than one was, or nil.
func (t *Tracker) Colliding(hash uint32) []string {
	return t.collisions[hash]
}

// Collisions returns every colliding hash with the names registered for it.
func (t *Tracker) Collisions() map[uint32][]string {
	out := make(map[uint32][]string, len(t.collisions))
	for h, names := range t.collisions {
		out[h] = slices.Clone(names)
	}

	return out
}

// HasCollision returns true if a collision has been detected.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the registered names in registration order.
func (t *Tracker) Names() []string {
	return t.namesList
}
