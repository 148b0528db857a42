package urx

type NotificationKind string

const (
	OnNext     NotificationKind = "next"
	OnError    NotificationKind = "error"
	OnComplete NotificationKind = "complete"
)

// Notification is one event of a stream, reified as a value.
type Notification[T any] struct {
	kind  NotificationKind
	value T
	err   error
}

func NextNotification[T any](v T) Notification[T] {
	return Notification[T]{kind: OnNext, value: v}
}

func ErrorNotification[T any](err error) Notification[T] {
	return Notification[T]{kind: OnError, err: err}
}

func CompleteNotification[T any]() Notification[T] {
	return Notification[T]{kind: OnComplete}
}

func (n Notification[T]) Kind() NotificationKind {
	return n.kind
}

func (n Notification[T]) Value() T {
	return n.value
}

func (n Notification[T]) Err() error {
	return n.err
}

// Accept delivers the notification to o.
func (n Notification[T]) Accept(o Observer[T]) {
	switch n.kind {
	case OnNext:
		o.Next(n.value)
	case OnError:
		o.Error(n.err)
	case OnComplete:
		o.Complete()
	}
}
