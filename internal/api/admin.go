package api

import (
	"context"
	"net/http"
	"net/url"
)

// AdminCreateFamilyRequest provisions a new tenant with its first parent.
type AdminCreateFamilyRequest struct {
	FamilyName string `json:"familyName" validate:"required,min=2"`
	ParentName string `json:"parentName" validate:"required,min=2"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Plan       string `json:"plan" validate:"required,oneof=FREE PREMIUM"`
}

// AnnouncementRequest creates a platform-wide announcement.
type AnnouncementRequest struct {
	Title   string           `json:"title" validate:"required"`
	Message string           `json:"message" validate:"required"`
	Type    AnnouncementType `json:"type" validate:"required,oneof=info warning promo"`
}

type setPlanRequest struct {
	Plan string `json:"plan" validate:"required,oneof=FREE PREMIUM"`
}

// AdminFamilies lists every tenant with its users, tasks and rewards.
func (c *Client) AdminFamilies(ctx context.Context) ([]AdminFamily, error) {
	var families []AdminFamily
	if err := c.do(ctx, http.MethodGet, "/admin/families", nil, &families); err != nil {
		return nil, err
	}
	for _, family := range families {
		if family.ID == "" {
			return nil, &DecodeError{Endpoint: "/admin/families", Reason: "family record missing id"}
		}
	}
	return families, nil
}

// AdminStats fetches the platform-wide totals.
func (c *Client) AdminStats(ctx context.Context) (*AdminStats, error) {
	var stats AdminStats
	if err := c.do(ctx, http.MethodGet, "/admin/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// SetFamilyPlan switches a tenant between FREE and PREMIUM.
func (c *Client) SetFamilyPlan(ctx context.Context, familyID, plan string) error {
	req := setPlanRequest{Plan: plan}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/admin/family/"+url.PathEscape(familyID)+"/plan", req, nil)
}

// AdminCreateFamily provisions a tenant on behalf of a parent.
func (c *Client) AdminCreateFamily(ctx context.Context, req AdminCreateFamilyRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/admin/families", req, nil)
}

// AdminDeleteFamily removes a tenant and everything it owns.
func (c *Client) AdminDeleteFamily(ctx context.Context, familyID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/family/"+url.PathEscape(familyID), nil, nil)
}

// Announcements lists all platform announcements.
func (c *Client) Announcements(ctx context.Context) ([]Announcement, error) {
	var announcements []Announcement
	if err := c.do(ctx, http.MethodGet, "/admin/announcements", nil, &announcements); err != nil {
		return nil, err
	}
	return announcements, nil
}

// CreateAnnouncement publishes an announcement to all families.
func (c *Client) CreateAnnouncement(ctx context.Context, req AnnouncementRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/admin/announcements", req, nil)
}

// DeleteAnnouncement retracts an announcement.
func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/announcements/"+url.PathEscape(id), nil, nil)
}
