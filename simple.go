package urx

// simpleObservable is simply a function which takes a subscriber and
// provides it with data.
type simpleObservable[T any] Producer[T]

// Create makes a cold observable: producer runs once per Subscribe, on the
// caller's goroutine. A producer panic is delivered as an error.
func Create[T any](producer Producer[T]) Observable[T] {
	return wrapObservable[T](simpleObservable[T](producer))
}

func (p simpleObservable[T]) subscribe(sub *Subscriber[T]) *Subscription {
	teardown, err := p.run(sub)
	if err != nil {
		sub.Error(err)
		return sub.Subscription()
	}
	sub.Add(teardown)
	return sub.Subscription()
}

func (p simpleObservable[T]) run(sub *Subscriber[T]) (teardown Unsubscribable, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = recovered(r)
		}
	}()
	return p(sub), nil
}
