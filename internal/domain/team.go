package domain

import "time"

type TeamRole string

const (
	TeamRoleMember TeamRole = "member"
	TeamRoleSales  TeamRole = "sales"
	TeamRoleCloser TeamRole = "closer"
	TeamRoleAdmin  TeamRole = "admin"
)

var TeamRoles = []TeamRole{TeamRoleMember, TeamRoleSales, TeamRoleCloser, TeamRoleAdmin}

func (r TeamRole) IsValid() bool {
	for _, role := range TeamRoles {
		if r == role {
			return true
		}
	}
	return false
}

type TeamMember struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Nickname  *string   `json:"nickname"`
	Email     *string   `json:"email"`
	Role      TeamRole  `json:"role"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateTeamMemberRequest struct {
	Name      string   `json:"name"`
	Nickname  *string  `json:"nickname"`
	Email     *string  `json:"email"`
	Role      TeamRole `json:"role"`
	AvatarURL *string  `json:"avatar_url"`
}

type UpdateTeamMemberRequest struct {
	ID        string    `json:"-"`
	Name      *string   `json:"name"`
	Nickname  *string   `json:"nickname"`
	Email     *string   `json:"email"`
	Role      *TeamRole `json:"role"`
	AvatarURL *string   `json:"avatar_url"`
}
