package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// LoginResult is the credential the backend mints on a successful login.
type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest creates a new family with its first parent account. Slug
// is optional; the backend derives one from the family name when empty.
type RegisterRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required,min=2"`
	FamilyName string `json:"familyName" validate:"required,min=2"`
	Slug       string `json:"slug,omitempty"`
}

// Login exchanges parent credentials for a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	req := loginRequest{Email: email, Password: password}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &result); err != nil {
		return nil, err
	}
	if result.Token == "" || result.Role == "" {
		return nil, &DecodeError{Endpoint: "/auth/login", Reason: "missing token or role"}
	}
	return &result, nil
}

// Register creates a family and its owning parent account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	if req.Slug != "" {
		if err := ValidateSlug(req.Slug); err != nil {
			return err
		}
	}
	return c.do(ctx, http.MethodPost, "/auth/register", req, nil)
}

// FamilyChildren lists a family's child profiles by public slug. This is the
// unauthenticated lookup used by the standalone child login screen.
func (c *Client) FamilyChildren(ctx context.Context, slug string) (*FamilyChildren, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}

	var result FamilyChildren
	path := "/auth/family/" + url.PathEscape(slug) + "/children"
	if err := c.do(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	for i, child := range result.Children {
		if child.ID == "" {
			return nil, &DecodeError{Endpoint: path, Reason: fmt.Sprintf("child %d missing id", i)}
		}
	}
	return &result, nil
}

type childLoginRequest struct {
	ChildID string `json:"childId" validate:"required"`
	PIN     string `json:"pin"`
}

// LoginChild exchanges a verified child PIN for a real bearer credential,
// switching the session to the child role.
func (c *Client) LoginChild(ctx context.Context, childID, pin string) (*LoginResult, error) {
	if err := ValidatePIN(pin); err != nil {
		return nil, err
	}
	req := childLoginRequest{ChildID: childID, PIN: pin}
	if err := checkRequest(req); err != nil {
		return nil, err
	}

	var result LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login-child", req, &result); err != nil {
		return nil, err
	}
	if result.Token == "" {
		return nil, &DecodeError{Endpoint: "/auth/login-child", Reason: "missing token"}
	}
	return &result, nil
}

// VerifyPIN checks a child's PIN under the parent session without minting a
// credential. Used by the in-dashboard kiosk's soft gate.
func (c *Client) VerifyPIN(ctx context.Context, childID, pin string) error {
	if err := ValidatePIN(pin); err != nil {
		return err
	}
	req := childLoginRequest{ChildID: childID, PIN: pin}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/parent/verify-pin", req, nil)
}
