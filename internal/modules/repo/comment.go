package repo

import (
	"context"
	"time"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/infra/airtable"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

const (
	colCommentProjectID = "projectId"
	colCommentAuthor    = "author"
	colCommentContent   = "content"
	colCommentCreatedAt = "createdAt"
)

type CommentRepo interface {
	Create(ctx context.Context, c *model.Comment) error
	ListByProject(ctx context.Context, projectID string) ([]model.Comment, error)
}

type commentRepo struct {
	client *airtable.Client
	table  string
}

func NewCommentRepo(client *airtable.Client, cfg *config.Config) CommentRepo {
	return &commentRepo{client: client, table: cfg.Airtable.CommentsTable}
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	now := time.Now().UTC()
	rec, err := r.client.Create(ctx, r.table, map[string]any{
		colCommentProjectID: c.ProjectID,
		colCommentAuthor:    c.Author,
		colCommentContent:   c.Content,
		colCommentCreatedAt: now.Format(time.RFC3339),
	})
	if err != nil {
		return err
	}
	c.ID = rec.ID
	c.CreatedAt = now
	return nil
}

// ListByProject returns the project's comments newest first; the sort
// happens store-side.
func (r *commentRepo) ListByProject(ctx context.Context, projectID string) ([]model.Comment, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{
		FilterByFormula: airtable.FieldEquals(colCommentProjectID, projectID),
		SortField:       colCommentCreatedAt,
		SortDesc:        true,
	})
	if err != nil {
		return nil, err
	}

	out := make([]model.Comment, 0, len(records))
	for i := range records {
		c, err := parseComment(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, nil
}

func parseComment(rec *airtable.Record) (*model.Comment, error) {
	if !rec.Has(colCommentProjectID) || !rec.Has(colCommentContent) {
		return nil, apperr.New(apperr.KindValidationFailed, "comment record missing required columns")
	}
	created := rec.Time(colCommentCreatedAt)
	if created.IsZero() {
		created = rec.CreatedTime
	}
	return &model.Comment{
		ID:        rec.ID,
		ProjectID: rec.Str(colCommentProjectID),
		Author:    rec.Str(colCommentAuthor),
		Content:   rec.Str(colCommentContent),
		CreatedAt: created,
	}, nil
}
