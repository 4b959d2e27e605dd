package domain

import "time"

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Color       *string   `json:"color"`
	Icon        *string   `json:"icon"`
	Description *string   `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProjectSection struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Color     *string   `json:"color"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ProjectTree é o projeto com suas seções, como exibido na página de projetos
type ProjectTree struct {
	Project
	Sections []*ProjectSection `json:"sections"`
}

type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

type UpdateProjectRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Color       *string `json:"color"`
	Icon        *string `json:"icon"`
	Description *string `json:"description"`
}

type CreateSectionRequest struct {
	ProjectID string  `json:"-"`
	Name      string  `json:"name"`
	Color     *string `json:"color"`
	Position  *int    `json:"position"`
}

type UpdateSectionRequest struct {
	ID       string  `json:"-"`
	Name     *string `json:"name"`
	Color    *string `json:"color"`
	Position *int    `json:"position"`
}
