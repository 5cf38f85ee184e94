package model

import "time"

// Like is a relation record: existence of the (ProjectID, UserID) pair
// means the user currently likes the project. At most one record per
// pair; toggling inserts or deletes, never duplicates.
type Like struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
