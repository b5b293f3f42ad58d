package api

import "time"

// Record types mirror the backend's wire shapes. The backend serializes its
// models with Go field names, so most records are PascalCase on the wire;
// the kiosk child-listing endpoint is the lowercase exception.

// Child is a child profile as returned by the parent-scoped /children
// endpoints. The PIN is write-only and never appears in responses.
type Child struct {
	ID     string `json:"ID"`
	Name   string `json:"Name"`
	Avatar string `json:"Avatar"`
}

// ChildProfile is the public shape returned by the family-by-slug listing.
type ChildProfile struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// FamilyChildren is the response of GET /auth/family/{slug}/children.
type FamilyChildren struct {
	FamilyTitle string         `json:"familyTitle"`
	Children    []ChildProfile `json:"children"`
}

// Task is a family task. MaxPerDay zero means unlimited completions per day.
type Task struct {
	ID          string `json:"ID"`
	Name        string `json:"Name"`
	Icon        string `json:"Icon"`
	PointReward int    `json:"PointReward"`
	MaxPerDay   int    `json:"MaxPerDay"`
}

// Reward is a catalog entry children can redeem points for.
type Reward struct {
	ID             string `json:"ID"`
	Name           string `json:"Name"`
	Icon           string `json:"Icon"`
	PointsRequired int    `json:"PointsRequired"`
}

// TaskLog is one completion record for a (task, child, date).
type TaskLog struct {
	ID       string `json:"ID"`
	ChildID  string `json:"ChildID"`
	TaskID   string `json:"TaskID"`
	Date     string `json:"Date"`
	Quantity int    `json:"Quantity"`
	Status   string `json:"Status"`
}

// RedemptionStatus is the redemption state machine. Approved and rejected
// are terminal.
type RedemptionStatus string

const (
	RedemptionPending  RedemptionStatus = "pending"
	RedemptionApproved RedemptionStatus = "approved"
	RedemptionRejected RedemptionStatus = "rejected"
)

// Redemption is a child's pending or resolved reward request. PointsSpent
// snapshots the reward's price at creation time and stays authoritative even
// if the catalog price changes later.
type Redemption struct {
	ID          string           `json:"ID"`
	ChildID     string           `json:"ChildID"`
	RewardID    string           `json:"RewardID"`
	PointsSpent int              `json:"PointsSpent"`
	Status      RedemptionStatus `json:"Status"`
	RedeemedAt  time.Time        `json:"RedeemedAt"`
	Reward      Reward           `json:"Reward"`
	Child       Child            `json:"Child"`
}

// FamilySettings is the family's own settings record.
type FamilySettings struct {
	Title string `json:"Title"`
	Slug  string `json:"Slug"`
	Plan  string `json:"Plan"`
}

// LeaderboardRow is one entry of the family leaderboard.
type LeaderboardRow struct {
	Name   string `json:"Name"`
	Points int    `json:"Points"`
	Avatar string `json:"Avatar"`
}

// AdminFamily is a tenant as listed on the super-admin console.
type AdminFamily struct {
	ID        string    `json:"ID"`
	Title     string    `json:"Title"`
	Slug      string    `json:"Slug"`
	Plan      string    `json:"Plan"`
	Users     []Child   `json:"Users"`
	Tasks     []Task    `json:"Tasks"`
	Rewards   []Reward  `json:"Rewards"`
	CreatedAt time.Time `json:"CreatedAt"`
}

// AdminStats are the platform-wide totals on the super-admin console.
type AdminStats struct {
	TotalFamilies    int `json:"totalFamilies"`
	TotalChildren    int `json:"totalChildren"`
	TotalTasks       int `json:"totalTasks"`
	TotalRedemptions int `json:"totalRedemptions"`
}

// AnnouncementType classifies a platform announcement.
type AnnouncementType string

const (
	AnnouncementInfo    AnnouncementType = "info"
	AnnouncementWarning AnnouncementType = "warning"
	AnnouncementPromo   AnnouncementType = "promo"
)

// Announcement is a super-admin broadcast to all families.
type Announcement struct {
	ID        string           `json:"ID"`
	Title     string           `json:"Title"`
	Message   string           `json:"Message"`
	Type      AnnouncementType `json:"Type"`
	CreatedAt time.Time        `json:"CreatedAt"`
}
