package domain

import "time"

// LeadStatus enumerates qualification stages.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "New"
	LeadStatusContacted LeadStatus = "Contacted"
	LeadStatusQualified LeadStatus = "Qualified"
	LeadStatusLost      LeadStatus = "Lost"
)

// Lead is a prospective customer.
type Lead struct {
	ID             string
	Name           string
	Company        string
	Email          string
	Status         LeadStatus
	Score          int
	LastContact    *time.Time
	EstimatedValue float64
	CreatedAt      time.Time
}
