package api

import (
	"context"
	"net/http"
	"net/url"
)

// AddChildRequest creates a child profile. The PIN is write-only; it is
// never returned by any read endpoint.
type AddChildRequest struct {
	Name   string `json:"name" validate:"required,min=2"`
	Avatar string `json:"avatar"`
	PIN    string `json:"pin"`
}

// Children lists the authenticated parent's child profiles.
func (c *Client) Children(ctx context.Context) ([]Child, error) {
	var children []Child
	if err := c.do(ctx, http.MethodGet, "/children", nil, &children); err != nil {
		return nil, err
	}
	for _, child := range children {
		if child.ID == "" {
			return nil, &DecodeError{Endpoint: "/children", Reason: "child record missing id"}
		}
	}
	return children, nil
}

// AddChild creates a child profile in the parent's family.
func (c *Client) AddChild(ctx context.Context, req AddChildRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	if err := ValidatePIN(req.PIN); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/children", req, nil)
}

// DeleteChild removes a child profile. The backend cascades the child's
// logs and redemptions.
func (c *Client) DeleteChild(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/children/"+url.PathEscape(id), nil, nil)
}
