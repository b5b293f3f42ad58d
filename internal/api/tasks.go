package api

import (
	"context"
	"net/http"
	"net/url"
)

// AddTaskRequest creates a task. MaxPerDay zero means no daily cap.
type AddTaskRequest struct {
	Name      string `json:"name" validate:"required,min=2"`
	Icon      string `json:"icon"`
	Points    int    `json:"points" validate:"gt=0"`
	MaxPerDay int    `json:"max_per_day" validate:"gte=0"`
}

type magicTaskRequest struct {
	TemplateType string `json:"template_type" validate:"required,oneof=TK SD"`
}

// Tasks lists the family's tasks.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, &tasks); err != nil {
		return nil, err
	}
	for _, task := range tasks {
		if task.ID == "" {
			return nil, &DecodeError{Endpoint: "/tasks", Reason: "task record missing id"}
		}
	}
	return tasks, nil
}

// AddTask creates a task in the family.
func (c *Client) AddTask(ctx context.Context, req AddTaskRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/tasks", req, nil)
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil)
}

// MagicTasks bulk-creates the preset task list for an age group, "TK"
// (preschool) or "SD" (primary school). The backend skips presets whose
// names already exist in the family.
func (c *Client) MagicTasks(ctx context.Context, templateType string) error {
	req := magicTaskRequest{TemplateType: templateType}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/parent/tasks/magic", req, nil)
}
