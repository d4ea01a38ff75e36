package geometry

import (
	"errors"
	"fmt"
)

// DefaultMaxIntersections is the capacity used when none is configured. It
// bounds the number of surface crossings along a single ray.
const DefaultMaxIntersections = 64

// ErrTooManyIntersections is returned when a ray produces more hits than the
// collection can hold. Hits are never dropped silently.
var ErrTooManyIntersections = errors.New("too many intersections")

// Intersection is a ray parameter t paired with the shape hit there. The
// shape is borrowed from the world and must not outlive it.
type Intersection struct {
	T     float64
	Shape *Shape
}

// NewIntersection creates a new intersection record
func NewIntersection(t float64, shape *Shape) Intersection {
	return Intersection{T: t, Shape: shape}
}

// Intersections is a fixed-capacity collection kept in ascending t order
type Intersections struct {
	items    []Intersection
	capacity int
}

// NewIntersections creates an empty collection holding at most capacity
// records. A non-positive capacity selects DefaultMaxIntersections.
func NewIntersections(capacity int) *Intersections {
	if capacity <= 0 {
		capacity = DefaultMaxIntersections
	}
	return &Intersections{
		items:    make([]Intersection, 0, capacity),
		capacity: capacity,
	}
}

// Insert adds a record, shifting larger entries right to keep the order.
// Records with equal t keep their insertion order.
func (xs *Intersections) Insert(t float64, shape *Shape) error {
	if len(xs.items) >= xs.capacity {
		return fmt.Errorf("%w: capacity %d exceeded", ErrTooManyIntersections, xs.capacity)
	}

	xs.items = append(xs.items, Intersection{})
	i := len(xs.items) - 1
	for i > 0 && xs.items[i-1].T > t {
		xs.items[i] = xs.items[i-1]
		i--
	}
	xs.items[i] = Intersection{T: t, Shape: shape}
	return nil
}

// Len returns the number of records
func (xs *Intersections) Len() int {
	return len(xs.items)
}

// Cap returns the maximum number of records
func (xs *Intersections) Cap() int {
	return xs.capacity
}

// At returns the i-th record in ascending t order
func (xs *Intersections) At(i int) Intersection {
	return xs.items[i]
}

// All returns the records in ascending t order. The slice is shared with the
// collection and must not be modified.
func (xs *Intersections) All() []Intersection {
	return xs.items
}

// Reset empties the collection, keeping its storage
func (xs *Intersections) Reset() {
	xs.items = xs.items[:0]
}

// Hit returns the visible intersection: the smallest non-negative t
func (xs *Intersections) Hit() (Intersection, bool) {
	for _, x := range xs.items {
		if x.T >= 0 {
			return x, true
		}
	}
	return Intersection{}, false
}

// ShadowHit is Hit restricted to shapes that cast shadows
func (xs *Intersections) ShadowHit() (Intersection, bool) {
	for _, x := range xs.items {
		if x.T >= 0 && x.Shape.CastsShadow {
			return x, true
		}
	}
	return Intersection{}, false
}
