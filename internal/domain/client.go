package domain

import "time"

type ClientStatus string

const (
	ClientStatusActive     ClientStatus = "active"
	ClientStatusOnboarding ClientStatus = "onboarding"
	ClientStatusAtRisk     ClientStatus = "at_risk"
	ClientStatusChurned    ClientStatus = "churned"
)

var ClientStatuses = []ClientStatus{ClientStatusActive, ClientStatusOnboarding, ClientStatusAtRisk, ClientStatusChurned}

func (s ClientStatus) IsValid() bool {
	for _, status := range ClientStatuses {
		if s == status {
			return true
		}
	}
	return false
}

const (
	MinHealthScore = 0
	MaxHealthScore = 100
)

type Client struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       *string      `json:"email"`
	Status      ClientStatus `json:"status"`
	HealthScore int          `json:"health_score"`
	LTV         float64      `json:"ltv"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type CreateClientRequest struct {
	Name        string       `json:"name"`
	Email       *string      `json:"email"`
	Status      ClientStatus `json:"status"`
	HealthScore *int         `json:"health_score"`
	LTV         float64      `json:"ltv"`
}

type UpdateClientRequest struct {
	ID          string        `json:"-"`
	Name        *string       `json:"name"`
	Email       *string       `json:"email"`
	Status      *ClientStatus `json:"status"`
	HealthScore *int          `json:"health_score"`
	LTV         *float64      `json:"ltv"`
}
