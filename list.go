package embroidery

// List is an ordered, append only sequence owned by a single Pattern. It
// backs the stitch list, the thread list and every shape object list.
type List[T any] struct {
	items []T
}

// Append adds v at the tail.
func (l *List[T]) Append(v ...T) {
	l.items = append(l.items, v...)
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Empty reports whether the list holds no elements.
func (l *List[T]) Empty() bool {
	return len(l.items) == 0
}

// At returns the element at index i. It panics if i is out of range, like
// a slice index.
func (l *List[T]) At(i int) T {
	return l.items[i]
}

// Last returns the tail element.
func (l *List[T]) Last() (T, bool) {
	if len(l.items) == 0 {
		var zero T
		return zero, false
	}
	return l.items[len(l.items)-1], true
}

// All returns the elements in append order. The slice aliases the list;
// elements may be modified in place but the slice must not be retained
// across appends.
func (l *List[T]) All() []T {
	return l.items
}

// Clear releases every element.
func (l *List[T]) Clear() {
	l.items = nil
}

// replace swaps in a new backing slice. Used by algorithms that rebuild a
// sequence aside and commit it in one step.
func (l *List[T]) replace(items []T) {
	l.items = items
}
