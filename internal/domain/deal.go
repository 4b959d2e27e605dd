package domain

import "time"

type DealStage string

const (
	DealStageLead       DealStage = "lead"
	DealStageBooked     DealStage = "booked"
	DealStageTaken      DealStage = "taken"
	DealStageProposal   DealStage = "proposal"
	DealStageClosedWon  DealStage = "closed_won"
	DealStageClosedLost DealStage = "closed_lost"
)

// DealStages segue a ordem das colunas do board
var DealStages = []DealStage{
	DealStageLead,
	DealStageBooked,
	DealStageTaken,
	DealStageProposal,
	DealStageClosedWon,
	DealStageClosedLost,
}

func (s DealStage) IsValid() bool {
	for _, stage := range DealStages {
		if s == stage {
			return true
		}
	}
	return false
}

func (s DealStage) IsOpen() bool {
	return s != DealStageClosedWon && s != DealStageClosedLost
}

type Deal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Value       float64   `json:"value"`
	Stage       DealStage `json:"stage"`
	ClientName  *string   `json:"client_name"`
	ClientEmail *string   `json:"client_email"`
	Source      *string   `json:"source"`
	AssignedTo  *string   `json:"assigned_to"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type DealFilters struct {
	Stage      []DealStage
	AssignedTo string
}

type CreateDealRequest struct {
	Title       string    `json:"title"`
	Value       float64   `json:"value"`
	Stage       DealStage `json:"stage"`
	ClientName  *string   `json:"client_name"`
	ClientEmail *string   `json:"client_email"`
	Source      *string   `json:"source"`
	AssignedTo  *string   `json:"assigned_to"`
	Notes       *string   `json:"notes"`
}

type UpdateDealRequest struct {
	ID          string     `json:"-"`
	Title       *string    `json:"title"`
	Value       *float64   `json:"value"`
	Stage       *DealStage `json:"stage"`
	ClientName  *string    `json:"client_name"`
	ClientEmail *string    `json:"client_email"`
	Source      *string    `json:"source"`
	AssignedTo  *string    `json:"assigned_to"`
	Notes       *string    `json:"notes"`
}

type PipelineColumn struct {
	Stage DealStage `json:"stage"`
	Deals []*Deal   `json:"deals"`
	Count int       `json:"count"`
	Total float64   `json:"total"`
}

type PipelineBoard struct {
	Columns   []PipelineColumn `json:"columns"`
	OpenValue float64          `json:"open_value"`
	WonValue  float64          `json:"won_value"`
}
