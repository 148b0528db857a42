package urx

// PartialObserver lets callers supply only the callbacks they care about.
// A nil OnNext or OnComplete does nothing; a nil OnError reports the error
// to the diagnostics sink of the subscriber that receives it.
type PartialObserver[T any] struct {
	OnNext     func(T)
	OnError    func(error)
	OnComplete func()
}

func (p PartialObserver[T]) Next(v T) {
	if p.OnNext != nil {
		p.OnNext(v)
	}
}

func (p PartialObserver[T]) Error(err error) {
	if p.OnError != nil {
		p.OnError(err)
	}
}

func (p PartialObserver[T]) Complete() {
	if p.OnComplete != nil {
		p.OnComplete()
	}
}

// normalize returns an observer whose three callbacks are always set.
// unhandled is used when no error callback was supplied.
func normalize[T any](dst Observer[T], unhandled func(error)) Observer[T] {
	var p PartialObserver[T]
	switch o := dst.(type) {
	case nil:
	case PartialObserver[T]:
		p = o
	case *PartialObserver[T]:
		if o != nil {
			p = *o
		}
	default:
		return dst
	}
	if p.OnNext == nil {
		p.OnNext = func(T) {}
	}
	if p.OnError == nil {
		p.OnError = unhandled
	}
	if p.OnComplete == nil {
		p.OnComplete = func() {}
	}
	return p
}
