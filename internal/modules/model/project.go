package model

import "time"

type Status string

const (
	StatusInProgress Status = "InProgress"
	StatusCompleted  Status = "Completed"
	StatusPaused     Status = "Paused"
)

func (s Status) Valid() bool {
	switch s {
	case StatusInProgress, StatusCompleted, StatusPaused:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Project is a student project in the catalogue. List-valued fields
// are genuine ordered slices in the domain; the store boundary encodes
// them as delimited cells.
type Project struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	Technologies []string   `json:"technologies"`
	Category     string     `json:"category"`
	Tags         []string   `json:"tags"`
	Promotion    string     `json:"promotion"`
	Students     []string   `json:"students"`
	Status       Status     `json:"status"`
	Difficulty   Difficulty `json:"difficulty"`
	Hidden       bool       `json:"hidden"`
	Likes        int        `json:"likes"`
	AuthorID     string     `json:"author_id"`
	RepoURL      string     `json:"repo_url,omitempty"`
	DemoURL      string     `json:"demo_url,omitempty"`
	Thumbnail    string     `json:"thumbnail,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
