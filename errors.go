package urx

import (
	"errors"
	"fmt"
	"strings"
)

// ErrObjectUnsubscribed is the panic value raised when a closed Subject is
// used, and the error returned by BehaviorSubject.Value after closure.
var ErrObjectUnsubscribed = errors.New("urx: object unsubscribed")

// UnsubscriptionError bundles every failure raised while a Subscription and
// its descendants were torn down.
type UnsubscriptionError struct {
	Errors []error
}

func (e *UnsubscriptionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "urx: %d error(s) occurred during unsubscription:", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "\n%d) %v", i+1, err)
	}
	return b.String()
}

func (e *UnsubscriptionError) Unwrap() []error {
	return e.Errors
}

// PanicError wraps a recovered panic value that was not itself an error.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("urx: recovered panic: %v", e.Value)
}

func recovered(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return &PanicError{Value: r}
}
