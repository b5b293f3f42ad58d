// Package notify carries user-facing notices out of the core contracts.
// Rendering (toasts, alerts) is outside this repository; the contracts only
// guarantee which notice fires on which path.
package notify

import "log/slog"

// Notifier receives user-facing notices. Info is for business-rule outcomes
// that are not failures, such as a completion that was already recorded.
type Notifier interface {
	Success(message string)
	Info(message string)
	Error(message string)
}

// Log is a Notifier backed by structured logging, used by the CLI and as
// the default when no UI sink is wired.
type Log struct {
	Logger *slog.Logger
}

func (l Log) logger() *slog.Logger {
	if l.Logger != nil {
		return l.Logger
	}
	return slog.Default()
}

func (l Log) Success(message string) { l.logger().Info(message, "notice", "success") }
func (l Log) Info(message string)    { l.logger().Info(message, "notice", "info") }
func (l Log) Error(message string)   { l.logger().Warn(message, "notice", "error") }

// Recorder captures notices for assertions in tests.
type Recorder struct {
	Successes []string
	Infos     []string
	Errors    []string
}

func (r *Recorder) Success(message string) { r.Successes = append(r.Successes, message) }
func (r *Recorder) Info(message string)    { r.Infos = append(r.Infos, message) }
func (r *Recorder) Error(message string)   { r.Errors = append(r.Errors, message) }
