package pool

import "sync"

// SlicePool pools slices of T. Slices come back empty with whatever capacity they last grew to.
type SlicePool[T any] struct {
	pool   sync.Pool
	maxCap int
}

// NewSlicePool creates a pool whose new slices start with capacity size. Slices that grew
// past maxCap are dropped on Put; zero keeps every slice.
func NewSlicePool[T any](size, maxCap int) *SlicePool[T] {
	return &SlicePool[T]{
		pool: sync.Pool{
			New: func() any {
				s := make([]T, 0, size)
				return &s
			},
		},
		maxCap: maxCap,
	}
}

// Get retrieves an empty slice from the pool.
//
// The caller must call the returned release function with the final slice, which may have
// grown through append, to hand it back.
//
// Example:
//
//	writes, release := pool.Get()
//	writes = append(writes, w)
//	defer release(writes)
func (p *SlicePool[T]) Get() ([]T, func([]T)) {
	ptr, _ := p.pool.Get().(*[]T)

	return (*ptr)[:0], func(s []T) {
		if p.maxCap > 0 && cap(s) > p.maxCap {
			return
		}
		clear(s)
		*ptr = s[:0]
		p.pool.Put(ptr)
	}
}
