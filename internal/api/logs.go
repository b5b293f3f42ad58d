package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// DateLayout is the calendar-day format used by the logs endpoints.
const DateLayout = "2006-01-02"

// ValidateDate checks a YYYY-MM-DD calendar date.
func ValidateDate(date string) error {
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ValidationError{Field: "date", Message: "date must be YYYY-MM-DD"}
	}
	return nil
}

// LogEntry is one task's desired quantity in a bulk day-save.
type LogEntry struct {
	TaskID   string `json:"taskId"`
	Quantity int    `json:"quantity"`
}

type saveLogsRequest struct {
	ChildID string     `json:"childId" validate:"required"`
	Date    string     `json:"date" validate:"required"`
	Logs    []LogEntry `json:"logs" validate:"required,min=1"`
}

type kioskCompleteRequest struct {
	ChildID string `json:"child_id" validate:"required"`
	TaskID  string `json:"task_id" validate:"required"`
	Date    string `json:"date" validate:"required"`
}

// Balance fetches a child's authoritative point balance.
func (c *Client) Balance(ctx context.Context, childID string) (int, error) {
	var result struct {
		Balance *int `json:"balance"`
	}
	path := "/points/" + url.PathEscape(childID)
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return 0, err
	}
	if result.Balance == nil {
		return 0, &DecodeError{Endpoint: path, Reason: "missing balance field"}
	}
	return *result.Balance, nil
}

// Logs fetches the completion records for a (child, date) pair. The backend
// returns them in stable insertion order.
func (c *Client) Logs(ctx context.Context, childID, date string) ([]TaskLog, error) {
	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	query := url.Values{"childId": {childID}, "date": {date}}
	path := "/logs?" + query.Encode()
	var logs []TaskLog
	if err := c.do(ctx, http.MethodGet, path, nil, &logs); err != nil {
		return nil, err
	}
	for _, entry := range logs {
		if entry.ID == "" || entry.TaskID == "" {
			return nil, &DecodeError{Endpoint: "/logs", Reason: "log record missing id"}
		}
	}
	return logs, nil
}

// SaveLogs upserts per-task quantities for a (child, date), the child
// panel's day-save path.
func (c *Client) SaveLogs(ctx context.Context, childID, date string, entries []LogEntry) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	req := saveLogsRequest{ChildID: childID, Date: date, Logs: entries}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/logs", req, nil)
}

// KioskComplete records one completion unit for a task. The backend answers
// 409 when the task's daily cap for that child and date is already reached.
func (c *Client) KioskComplete(ctx context.Context, childID, taskID, date string) error {
	if err := ValidateDate(date); err != nil {
		return err
	}
	req := kioskCompleteRequest{ChildID: childID, TaskID: taskID, Date: date}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/parent/kiosk/complete", req, nil)
}

// UndoLog removes a single completion record by id.
func (c *Client) UndoLog(ctx context.Context, logID string) error {
	return c.do(ctx, http.MethodPost, "/parent/logs/"+url.PathEscape(logID)+"/undo", nil, nil)
}
