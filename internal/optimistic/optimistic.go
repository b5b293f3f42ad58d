// Package optimistic is the shared optimistic-mutation primitive: snapshot
// the current value, show a predicted value, attempt the remote call, then
// either replace the prediction with the refetched authoritative value or
// restore the snapshot.
package optimistic

import (
	"context"
	"fmt"
)

// ReconcileError reports that the remote call succeeded but the follow-up
// authoritative refetch did not. The predicted value stays on display.
type ReconcileError struct {
	Err error
}

func (e *ReconcileError) Error() string {
	return fmt.Sprintf("reconcile after successful mutation: %v", e.Err)
}

func (e *ReconcileError) Unwrap() error { return e.Err }

// Mutation describes one optimistic update of a state of type T.
//
// Predict must return a fresh value and leave its argument untouched; the
// argument doubles as the rollback snapshot.
type Mutation[T any] struct {
	Predict   func(snapshot T) T
	Attempt   func(ctx context.Context) error
	Reconcile func(ctx context.Context) (T, error)
}

// Apply runs the mutation against state in place.
//
// When Attempt fails, the snapshot is restored and the attempt error
// returned; the caller decides how to surface it. When Attempt succeeds but
// Reconcile fails, the predicted value is kept (the remote mutation did
// happen) and a *ReconcileError returned.
func Apply[T any](ctx context.Context, state *T, m Mutation[T]) error {
	snapshot := *state
	*state = m.Predict(snapshot)

	if err := m.Attempt(ctx); err != nil {
		*state = snapshot
		return err
	}

	if m.Reconcile == nil {
		return nil
	}
	authoritative, err := m.Reconcile(ctx)
	if err != nil {
		return &ReconcileError{Err: err}
	}
	*state = authoritative
	return nil
}
