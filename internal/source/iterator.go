// Package source provides the generic read cursor shared by the lexer
// (over bytes) and the parser (over tokens).
package source

// Iterator holds a slice of items and a read position. Lookahead never
// consumes; it is the caller's responsibility not to advance past
// end-of-input.
type Iterator[T any] struct {
	data   []T
	cursor int
}

// NewIterator creates an iterator positioned at the start of data.
func NewIterator[T any](data []T) *Iterator[T] {
	return &Iterator[T]{data: data}
}

// EOF reports whether every item has been consumed.
func (it *Iterator[T]) EOF() bool {
	return it.cursor >= len(it.data)
}

// Peek returns the item at the read position without consuming it.
func (it *Iterator[T]) Peek() (T, bool) {
	return it.PeekAhead(0)
}

// PeekAhead returns the item n positions beyond the read position.
// Out-of-range lookahead returns ok=false, never panics.
func (it *Iterator[T]) PeekAhead(n int) (T, bool) {
	if it.cursor+n >= len(it.data) {
		var zero T
		return zero, false
	}
	return it.data[it.cursor+n], true
}

// PeekBehind returns the item n positions before the read position.
func (it *Iterator[T]) PeekBehind(n int) (T, bool) {
	if it.cursor-n < 0 || it.cursor-n >= len(it.data) {
		var zero T
		return zero, false
	}
	return it.data[it.cursor-n], true
}

// Previous returns the most recently consumed item.
func (it *Iterator[T]) Previous() (T, bool) {
	return it.PeekBehind(1)
}

// Next consumes and returns the item at the read position.
func (it *Iterator[T]) Next() (T, bool) {
	if it.EOF() {
		var zero T
		return zero, false
	}
	item := it.data[it.cursor]
	it.cursor++
	return item, true
}

// Advance moves the read position forward by n items.
func (it *Iterator[T]) Advance(n int) {
	it.cursor += n
}

// Cursor returns the current read position.
func (it *Iterator[T]) Cursor() int {
	return it.cursor
}
