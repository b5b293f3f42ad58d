package api

import (
	"context"
	"net/http"
)

// Unlimited marks a plan limit that does not apply.
const Unlimited = -1

// PlanLimits are the client-side caps derived from the family's plan. They
// gate forms before the network; the backend remains the enforcing
// authority.
type PlanLimits struct {
	Plan        string
	MaxChildren int
	MaxTasks    int
	MaxRewards  int
	Leaderboard bool
}

// LimitsFor maps a subscription plan to its limits. Any plan other than
// FREE is treated as premium.
func LimitsFor(plan string) PlanLimits {
	if plan == "FREE" {
		return PlanLimits{Plan: plan, MaxChildren: 2, MaxTasks: 10, MaxRewards: 5}
	}
	return PlanLimits{
		Plan:        plan,
		MaxChildren: Unlimited,
		MaxTasks:    Unlimited,
		MaxRewards:  Unlimited,
		Leaderboard: true,
	}
}

// Allows reports whether a collection currently at count may grow under the
// given limit.
func Allows(limit, count int) bool {
	return limit == Unlimited || count < limit
}

type updateSettingsRequest struct {
	Title string `json:"title" validate:"required,min=2"`
}

// Settings fetches the family's settings record.
func (c *Client) Settings(ctx context.Context) (*FamilySettings, error) {
	var settings FamilySettings
	if err := c.do(ctx, http.MethodGet, "/family/settings", nil, &settings); err != nil {
		return nil, err
	}
	if settings.Plan == "" {
		return nil, &DecodeError{Endpoint: "/family/settings", Reason: "missing plan"}
	}
	return &settings, nil
}

// UpdateSettings renames the family.
func (c *Client) UpdateSettings(ctx context.Context, title string) error {
	req := updateSettingsRequest{Title: title}
	if err := checkRequest(req); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, "/family/settings", req, nil)
}

// PlanLimits fetches the family settings and derives the active limits.
func (c *Client) PlanLimits(ctx context.Context) (PlanLimits, error) {
	settings, err := c.Settings(ctx)
	if err != nil {
		return PlanLimits{}, err
	}
	return LimitsFor(settings.Plan), nil
}

// Leaderboard fetches the family leaderboard.
func (c *Client) Leaderboard(ctx context.Context) ([]LeaderboardRow, error) {
	var rows []LeaderboardRow
	if err := c.do(ctx, http.MethodGet, "/leaderboard", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
