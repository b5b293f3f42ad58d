// Package ledger tracks daily task completions for one active (child, date)
// pair: per-task counts, optimistic increment/undo against the backend, and
// daily-cap enforcement.
//
// A Ledger is confined to the UI's event goroutine, mirroring the app's
// single-threaded model. The in-flight set implements the at-most-one
// mutation per task rule: a re-entered increment or undo for a task whose
// request is still outstanding is dropped, not queued.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ceria/internal/api"
	"ceria/internal/notify"
	"ceria/internal/optimistic"
)

// placeholderPrefix tags optimistic log entries that have no server id yet.
const placeholderPrefix = "temp-"

// LogAPI is the slice of the backend client the ledger needs.
type LogAPI interface {
	Logs(ctx context.Context, childID, date string) ([]api.TaskLog, error)
	Balance(ctx context.Context, childID string) (int, error)
	KioskComplete(ctx context.Context, childID, taskID, date string) error
	UndoLog(ctx context.Context, logID string) error
}

// TaskCount is the derived completion state for one task on the active day.
// LogIDs preserves the server's insertion order; an undo always removes the
// last entry.
type TaskCount struct {
	Count  int
	LogIDs []string
}

// view is the optimistic state pair the mutations snapshot and roll back
// together.
type view struct {
	logs    []api.TaskLog
	balance int
}

// Ledger is the daily completion counter for the active child and date.
type Ledger struct {
	api      LogAPI
	notifier notify.Notifier
	logger   *slog.Logger

	childID  string
	date     string
	state    view
	inFlight map[string]struct{}
}

// New creates an inactive ledger; call Activate before mutating.
func New(logAPI LogAPI, notifier notify.Notifier, logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		api:      logAPI,
		notifier: notifier,
		logger:   logger,
		inFlight: make(map[string]struct{}),
	}
}

// Today is the family-local calendar date.
func Today() string {
	return time.Now().Format(api.DateLayout)
}

// AddDays shifts a calendar date, for the day-navigation arrows.
func AddDays(date string, days int) (string, error) {
	day, err := time.Parse(api.DateLayout, date)
	if err != nil {
		return "", fmt.Errorf("shift date: %w", err)
	}
	return day.AddDate(0, 0, days).Format(api.DateLayout), nil
}

// Activate points the ledger at a (child, date) pair and loads its logs and
// balance. Stale state from a previous key is discarded even when the load
// fails.
func (l *Ledger) Activate(ctx context.Context, childID, date string) error {
	l.childID = childID
	l.date = date
	l.state = view{}

	fresh, err := l.fetchView(ctx)
	if err != nil {
		return err
	}
	l.state = fresh
	return nil
}

// SetDate switches the active calendar day and refetches its logs. Counts
// are never reused across dates.
func (l *Ledger) SetDate(ctx context.Context, date string) error {
	l.date = date
	l.state.logs = nil

	logs, err := l.api.Logs(ctx, l.childID, l.date)
	if err != nil {
		return err
	}
	l.state.logs = logs
	return nil
}

// SetChild switches the active child, reloading both logs and balance.
func (l *Ledger) SetChild(ctx context.Context, childID string) error {
	return l.Activate(ctx, childID, l.date)
}

// Refresh re-reads logs and balance from the backend, e.g. after a
// redemption changed the balance.
func (l *Ledger) Refresh(ctx context.Context) error {
	fresh, err := l.fetchView(ctx)
	if err != nil {
		return err
	}
	l.state = fresh
	return nil
}

// Counts groups the fetched logs by task id, preserving fetch order.
func (l *Ledger) Counts() map[string]TaskCount {
	counts := make(map[string]TaskCount)
	for _, entry := range l.state.logs {
		c := counts[entry.TaskID]
		c.Count++
		c.LogIDs = append(c.LogIDs, entry.ID)
		counts[entry.TaskID] = c
	}
	return counts
}

// Count returns today's completion count for one task.
func (l *Ledger) Count(taskID string) int {
	count := 0
	for _, entry := range l.state.logs {
		if entry.TaskID == taskID {
			count++
		}
	}
	return count
}

// Balance is the displayed point balance: authoritative after a fetch,
// optimistic while a mutation is in flight.
func (l *Ledger) Balance() int {
	return l.state.balance
}

// Logs returns the current log list.
func (l *Ledger) Logs() []api.TaskLog {
	return l.state.logs
}

// Busy reports whether a mutation for the task is still outstanding.
func (l *Ledger) Busy(taskID string) bool {
	_, busy := l.inFlight[taskID]
	return busy
}

// AtCap reports whether the task reached its daily cap for the active day.
// A zero cap never disables the task.
func (l *Ledger) AtCap(task api.Task) bool {
	return task.MaxPerDay > 0 && l.Count(task.ID) >= task.MaxPerDay
}

// CanDecrement reports whether an undo is currently possible: the count is
// above zero and the most recent log is server-confirmed.
func (l *Ledger) CanDecrement(taskID string) bool {
	last, ok := l.lastLogID(taskID)
	return ok && !strings.HasPrefix(last, placeholderPrefix)
}

// Increment records one completion for the task. It is dropped without a
// network call when the ledger is inactive, the task's previous mutation is
// still in flight, or the task is at its daily cap. A 409 from the backend
// means the cap was reached concurrently; the optimistic state is rolled
// back and corrected by refetch rather than treated as a failure.
func (l *Ledger) Increment(ctx context.Context, task api.Task) {
	if l.childID == "" || l.Busy(task.ID) || l.AtCap(task) {
		return
	}
	l.inFlight[task.ID] = struct{}{}
	defer delete(l.inFlight, task.ID)

	err := optimistic.Apply(ctx, &l.state, optimistic.Mutation[view]{
		Predict: func(s view) view {
			logs := make([]api.TaskLog, len(s.logs), len(s.logs)+1)
			copy(logs, s.logs)
			logs = append(logs, api.TaskLog{
				ID:       placeholderPrefix + uuid.NewString(),
				ChildID:  l.childID,
				TaskID:   task.ID,
				Date:     l.date,
				Quantity: 1,
				Status:   "verified",
			})
			return view{logs: logs, balance: s.balance + task.PointReward}
		},
		Attempt: func(ctx context.Context) error {
			return l.api.KioskComplete(ctx, l.childID, task.ID, l.date)
		},
		Reconcile: l.fetchView,
	})

	var reconcileErr *optimistic.ReconcileError
	switch {
	case err == nil:
		l.notifier.Success(fmt.Sprintf("+%d poin! 🌟", task.PointReward))
	case errors.As(err, &reconcileErr):
		// The completion was recorded; only the refetch failed.
		l.logger.Warn("refetch after completion failed", "task", task.ID, "err", err)
		l.notifier.Success(fmt.Sprintf("+%d poin! 🌟", task.PointReward))
	case api.IsConflict(err):
		l.notifier.Info("Sudah dicatat hari ini! ✅")
		l.reconcileAfterConflict(ctx)
	default:
		l.logger.Warn("task completion failed", "task", task.ID, "err", err)
		l.notifier.Error("Gagal, coba lagi")
	}
}

// Decrement undoes the most recent completion for the task. It is dropped
// when the count is zero, a mutation is in flight, or the latest log is an
// unconfirmed placeholder with nothing to undo server-side.
func (l *Ledger) Decrement(ctx context.Context, task api.Task) {
	if l.Busy(task.ID) {
		return
	}
	logID, ok := l.lastLogID(task.ID)
	if !ok || strings.HasPrefix(logID, placeholderPrefix) {
		return
	}
	l.inFlight[task.ID] = struct{}{}
	defer delete(l.inFlight, task.ID)

	err := optimistic.Apply(ctx, &l.state, optimistic.Mutation[view]{
		Predict: func(s view) view {
			logs := make([]api.TaskLog, 0, len(s.logs))
			for _, entry := range s.logs {
				if entry.ID != logID {
					logs = append(logs, entry)
				}
			}
			return view{logs: logs, balance: s.balance - task.PointReward}
		},
		Attempt: func(ctx context.Context) error {
			return l.api.UndoLog(ctx, logID)
		},
		Reconcile: l.fetchView,
	})

	var reconcileErr *optimistic.ReconcileError
	if err != nil && !errors.As(err, &reconcileErr) {
		l.logger.Warn("task undo failed", "task", task.ID, "err", err)
		l.notifier.Error("Gagal membatalkan")
		return
	}
	if err != nil {
		l.logger.Warn("refetch after undo failed", "task", task.ID, "err", err)
	}
	l.notifier.Success(fmt.Sprintf("Dibatalkan -%d poin", task.PointReward))
}

// lastLogID finds the most recently created log id for the task today.
func (l *Ledger) lastLogID(taskID string) (string, bool) {
	for i := len(l.state.logs) - 1; i >= 0; i-- {
		if l.state.logs[i].TaskID == taskID {
			return l.state.logs[i].ID, true
		}
	}
	return "", false
}

func (l *Ledger) fetchView(ctx context.Context) (view, error) {
	logs, err := l.api.Logs(ctx, l.childID, l.date)
	if err != nil {
		return view{}, err
	}
	balance, err := l.api.Balance(ctx, l.childID)
	if err != nil {
		return view{}, err
	}
	return view{logs: logs, balance: balance}, nil
}

// reconcileAfterConflict corrects counts and balance after the backend
// reported the cap already reached. The restored snapshot stays on display
// if the refetch itself fails.
func (l *Ledger) reconcileAfterConflict(ctx context.Context) {
	fresh, err := l.fetchView(ctx)
	if err != nil {
		l.logger.Warn("refetch after conflict failed", "err", err)
		return
	}
	l.state = fresh
}
