package domain

import "time"

// ActivityType groups feed entries for display.
type ActivityType string

const (
	ActivitySale    ActivityType = "sale"
	ActivityLead    ActivityType = "lead"
	ActivitySupport ActivityType = "support"
	ActivitySystem  ActivityType = "system"
)

// Activity is one entry of the recent activity feed.
type Activity struct {
	ID        string       `json:"id"`
	User      string       `json:"user"`
	Action    string       `json:"action"`
	Type      ActivityType `json:"type"`
	Timestamp time.Time    `json:"timestamp"`
}
