package trail

import "log"

// Target is anything shapes can be drawn onto.
type Target interface {
	DrawShape(s Shape)
}

// Buffer is a fixed-capacity trail of after-images kept newest-first. It is
// backed by a ring so inserting and evicting are O(1).
type Buffer struct {
	policy Policy
	shapes []Shape
	head   int // index of the newest entry
	length int
}

// NewBuffer creates an empty Buffer. Capacities below one are raised to one.
func NewBuffer(capacity int, policy Policy) *Buffer {
	if capacity < 1 {
		capacity = 1
	}
	b := new(Buffer)
	b.policy = policy
	b.shapes = make([]Shape, capacity)
	b.head = 0
	b.length = 0
	return b
}

// Len returns the number of live after-images.
func (b *Buffer) Len() int {
	return b.length
}

// Cap returns the capacity the buffer was created with.
func (b *Buffer) Cap() int {
	return len(b.shapes)
}

// Policy returns the aging policy applied by AgeAll.
func (b *Buffer) Policy() Policy {
	return b.policy
}

func (b *Buffer) index(i int) int {
	return (b.head + i) % len(b.shapes)
}

// At returns the entry at age rank i, 0 being the newest.
func (b *Buffer) At(i int) (Shape, bool) {
	if i < 0 || i >= b.length {
		return Shape{}, false
	}
	return b.shapes[b.index(i)], true
}

// Push prepends s as the newest entry, dropping the oldest one when the
// buffer is full.
func (b *Buffer) Push(s Shape) {
	b.head = (b.head - 1 + len(b.shapes)) % len(b.shapes)
	// When full the new head lands on the oldest slot, overwriting it.
	b.shapes[b.head] = s
	if b.length < len(b.shapes) {
		b.length++
	}
}

// Insert pushes s and then ages every entry, the new one included.
func (b *Buffer) Insert(s Shape) {
	b.Push(s)
	b.AgeAll()
}

// AgeAll applies the aging policy once to every live entry. Entries of an
// unknown kind are logged and left as they are.
func (b *Buffer) AgeAll() {
	for i := 0; i < b.length; i++ {
		s := &b.shapes[b.index(i)]
		if !b.policy.Age(s) {
			log.Printf("trail: skipping unknown shape kind %d at rank %d", s.Kind, i)
		}
	}
}

// Each calls fn for every entry from newest to oldest.
func (b *Buffer) Each(fn func(rank int, s Shape)) {
	for i := 0; i < b.length; i++ {
		fn(i, b.shapes[b.index(i)])
	}
}

// Draw renders every entry in rank order, the oldest last. Old entries are
// mostly transparent by then, so the newest stays visible through them.
func (b *Buffer) Draw(target Target) {
	for i := 0; i < b.length; i++ {
		target.DrawShape(b.shapes[b.index(i)])
	}
}
