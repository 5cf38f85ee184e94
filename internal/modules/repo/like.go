package repo

import (
	"context"
	"time"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/infra/airtable"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
)

const (
	colLikeProjectID = "projectId"
	colLikeUserID    = "userId"
	colLikeCreatedAt = "createdAt"
)

type LikeRepo interface {
	// Find returns the like record for the pair, or nil when absent.
	// Absence is a normal state, not an error.
	Find(ctx context.Context, projectID, userID string) (*model.Like, error)
	Toggle(ctx context.Context, projectID, userID string) (liked bool, err error)
	CountByProject(ctx context.Context, projectID string) (int, error)
}

type likeRepo struct {
	client *airtable.Client
	table  string
}

func NewLikeRepo(client *airtable.Client, cfg *config.Config) LikeRepo {
	return &likeRepo{client: client, table: cfg.Airtable.LikesTable}
}

func (r *likeRepo) Find(ctx context.Context, projectID, userID string) (*model.Like, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		FilterByFormula: pairFormula(projectID, userID),
		MaxRecords:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	rec := &records[0]
	return &model.Like{
		ID:        rec.ID,
		ProjectID: rec.Str(colLikeProjectID),
		UserID:    rec.Str(colLikeUserID),
		CreatedAt: rec.Time(colLikeCreatedAt),
	}, nil
}

// Toggle deletes the pair record if it exists, creates it otherwise,
// and reports the resulting state. Concurrent toggles of the same pair
// are serialized one level up by the like service's mutex.
func (r *likeRepo) Toggle(ctx context.Context, projectID, userID string) (bool, error) {
	existing, err := r.Find(ctx, projectID, userID)
	if err != nil {
		return false, err
	}

	if existing != nil {
		if err := r.client.Delete(ctx, r.table, existing.ID); err != nil {
			return false, err
		}
		return false, nil
	}

	_, err = r.client.Create(ctx, r.table, map[string]any{
		colLikeProjectID: projectID,
		colLikeUserID:    userID,
		colLikeCreatedAt: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *likeRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		FilterByFormula: airtable.FieldEquals(colLikeProjectID, projectID),
	})
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func pairFormula(projectID, userID string) string {
	return airtable.And(
		airtable.FieldEquals(colLikeProjectID, projectID),
		airtable.FieldEquals(colLikeUserID, userID),
	)
}
