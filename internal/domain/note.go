package domain

import "time"

type Note struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	Pinned       bool      `json:"pinned"`
	Category     *string   `json:"category"`
	Shared       bool      `json:"shared"`
	DepartmentID *string   `json:"department_id"`
	ProjectID    *string   `json:"project_id"`
	Author       *string   `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type NoteFilters struct {
	Category     string
	ProjectID    string
	DepartmentID string
	Shared       *bool
}

type CreateNoteRequest struct {
	Title        string  `json:"title"`
	Content      string  `json:"content"`
	Pinned       bool    `json:"pinned"`
	Category     *string `json:"category"`
	Shared       bool    `json:"shared"`
	DepartmentID *string `json:"department_id"`
	ProjectID    *string `json:"project_id"`
	Author       *string `json:"author"`
}

type UpdateNoteRequest struct {
	ID           string  `json:"-"`
	Title        *string `json:"title"`
	Content      *string `json:"content"`
	Pinned       *bool   `json:"pinned"`
	Category     *string `json:"category"`
	Shared       *bool   `json:"shared"`
	DepartmentID *string `json:"department_id"`
	ProjectID    *string `json:"project_id"`
}
