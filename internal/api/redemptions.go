package api

import (
	"context"
	"net/http"
	"net/url"
)

type createRedemptionRequest struct {
	ChildID  string `json:"childId" validate:"required"`
	RewardID string `json:"rewardId" validate:"required"`
}

type resolveRedemptionRequest struct {
	Status RedemptionStatus `json:"status" validate:"required,oneof=approved rejected"`
}

// CreateRedemption files a pending reward request for a child. The backend
// enforces the balance rule; callers should pre-check locally first.
func (c *Client) CreateRedemption(ctx context.Context, childID, rewardID string) error {
	req := createRedemptionRequest{ChildID: childID, RewardID: rewardID}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/redemptions", req, nil)
}

// Redemptions lists the family's redemptions, newest first per the backend.
func (c *Client) Redemptions(ctx context.Context) ([]Redemption, error) {
	var redemptions []Redemption
	if err := c.do(ctx, http.MethodGet, "/redemptions", nil, &redemptions); err != nil {
		return nil, err
	}
	for _, r := range redemptions {
		if r.ID == "" || r.Status == "" {
			return nil, &DecodeError{Endpoint: "/redemptions", Reason: "redemption record missing id or status"}
		}
	}
	return redemptions, nil
}

// ResolveRedemption transitions a pending redemption to approved or
// rejected. Both states are terminal.
func (c *Client) ResolveRedemption(ctx context.Context, id string, status RedemptionStatus) error {
	req := resolveRedemptionRequest{Status: status}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/redemptions/"+url.PathEscape(id)+"/status", req, nil)
}
