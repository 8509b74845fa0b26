package store

// Kind classifies the outcome of a real-store read.
type Kind int

const (
	KindOK Kind = iota
	KindEmpty
	KindFailed
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindEmpty:
		return "empty"
	case KindFailed:
		return "failed"
	}
	return "unknown"
}

// Result is what the real-store path hands back to services: rows, nothing,
// or a failure with its reason. Services decide on fallback by switching on
// Kind instead of guessing from an empty slice.
type Result[T any] struct {
	kind  Kind
	items []T
	err   error
}

// Ok wraps items. An empty slice collapses to Empty.
func Ok[T any](items []T) Result[T] {
	if len(items) == 0 {
		return Empty[T]()
	}
	return Result[T]{kind: KindOK, items: items}
}

func Empty[T any]() Result[T] {
	return Result[T]{kind: KindEmpty}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{kind: KindFailed, err: err}
}

func (r Result[T]) Kind() Kind { return r.kind }

// Items returns the rows; nil unless Kind is KindOK.
func (r Result[T]) Items() []T { return r.items }

// Err returns the failure reason; nil unless Kind is KindFailed.
func (r Result[T]) Err() error { return r.err }

// First returns the first row, if any.
func (r Result[T]) First() (T, bool) {
	var zero T
	if len(r.items) == 0 {
		return zero, false
	}
	return r.items[0], true
}

// Map converts every row with fn. The first conversion error fails the whole
// batch; Empty and Failed pass through unchanged.
func Map[T, U any](r Result[T], fn func(T) (U, error)) Result[U] {
	switch r.kind {
	case KindEmpty:
		return Empty[U]()
	case KindFailed:
		return Failed[U](r.err)
	}
	out := make([]U, 0, len(r.items))
	for _, item := range r.items {
		u, err := fn(item)
		if err != nil {
			return Failed[U](err)
		}
		out = append(out, u)
	}
	return Ok(out)
}

// Filter keeps the rows for which keep returns true.
func Filter[T any](r Result[T], keep func(T) bool) Result[T] {
	if r.kind != KindOK {
		return r
	}
	out := make([]T, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return Ok(out)
}
