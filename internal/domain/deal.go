package domain

import "time"

// DealStage enumerates pipeline columns.
type DealStage string

const (
	DealStageProspect    DealStage = "Prospect"
	DealStageProposal    DealStage = "Proposal"
	DealStageNegotiation DealStage = "Negotiation"
	DealStageClosedWon   DealStage = "Closed Won"
	DealStageClosedLost  DealStage = "Closed Lost"
)

// Deal is an opportunity moving through the sales pipeline.
type Deal struct {
	ID          string
	Title       string
	Company     string
	Value       float64
	Stage       DealStage
	Probability int
	CreatedAt   time.Time
}
