package api

import (
	"context"
	"net/http"
	"net/url"
)

// AddRewardRequest creates a reward catalog entry.
type AddRewardRequest struct {
	Name           string `json:"name" validate:"required,min=2"`
	Icon           string `json:"icon"`
	PointsRequired int    `json:"pointsRequired" validate:"gt=0"`
}

// Rewards lists the family's reward catalog.
func (c *Client) Rewards(ctx context.Context) ([]Reward, error) {
	var rewards []Reward
	if err := c.do(ctx, http.MethodGet, "/rewards", nil, &rewards); err != nil {
		return nil, err
	}
	for _, reward := range rewards {
		if reward.ID == "" {
			return nil, &DecodeError{Endpoint: "/rewards", Reason: "reward record missing id"}
		}
	}
	return rewards, nil
}

// AddReward creates a reward in the family catalog.
func (c *Client) AddReward(ctx context.Context, req AddRewardRequest) error {
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, "/rewards", req, nil)
}

// DeleteReward removes a reward from the catalog.
func (c *Client) DeleteReward(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/rewards/"+url.PathEscape(id), nil, nil)
}

// MagicRewards bulk-creates the preset reward catalog.
func (c *Client) MagicRewards(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/parent/rewards/magic", nil, nil)
}
