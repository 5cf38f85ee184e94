package repo

import (
	"context"
	"time"

	"github.com/vitrine-app/vitrine-api/internal/config"
	"github.com/vitrine-app/vitrine-api/internal/infra/airtable"
	"github.com/vitrine-app/vitrine-api/internal/modules/model"
	"github.com/vitrine-app/vitrine-api/internal/pkg/apperr"
)

// Project table columns. The mapping is total and fixed: a missing
// entry here is a programming error, not a runtime condition.
const (
	colProjName         = "name"
	colProjDescription  = "description"
	colProjTechnologies = "technologies"
	colProjCategory     = "category"
	colProjTags         = "tags"
	colProjPromotion    = "promotion"
	colProjStudents     = "students"
	colProjStatus       = "status"
	colProjDifficulty   = "difficulty"
	colProjHidden       = "isHidden"
	colProjLikes        = "likes"
	colProjAuthorID     = "authorId"
	colProjRepoURL      = "githubUrl"
	colProjDemoURL      = "demoUrl"
	colProjThumbnail    = "thumbnail"
	colProjUpdatedAt    = "updatedAt"
)

type ProjectRepo interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context) ([]model.Project, error)
	Update(ctx context.Context, p *model.Project) error
	Delete(ctx context.Context, id string) error
	SetLikes(ctx context.Context, id string, likes int) error
}

type projectRepo struct {
	client *airtable.Client
	table  string
}

func NewProjectRepo(client *airtable.Client, cfg *config.Config) ProjectRepo {
	return &projectRepo{client: client, table: cfg.Airtable.ProjectsTable}
}

func (r *projectRepo) Create(ctx context.Context, p *model.Project) error {
	rec, err := r.client.Create(ctx, r.table, projectFields(p))
	if err != nil {
		return err
	}
	p.ID = rec.ID
	p.CreatedAt = rec.CreatedTime
	p.UpdatedAt = rec.Time(colProjUpdatedAt)
	return nil
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.Project, error) {
	rec, err := r.client.Get(ctx, r.table, id)
	if err != nil {
		return nil, err
	}
	return parseProject(rec)
}

func (r *projectRepo) List(ctx context.Context) ([]model.Project, error) {
	records, err := r.client.List(ctx, r.table, airtable.ListOptions{})
	if err != nil {
		return nil, err
	}

	out := make([]model.Project, 0, len(records))
	for i := range records {
		p, err := parseProject(&records[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *projectRepo) Update(ctx context.Context, p *model.Project) error {
	fields := projectFields(p)
	fields[colProjUpdatedAt] = time.Now().UTC().Format(time.RFC3339)

	rec, err := r.client.Update(ctx, r.table, p.ID, fields)
	if err != nil {
		return err
	}
	p.UpdatedAt = rec.Time(colProjUpdatedAt)
	return nil
}

func (r *projectRepo) Delete(ctx context.Context, id string) error {
	return r.client.Delete(ctx, r.table, id)
}

// SetLikes patches only the denormalized like counter.
func (r *projectRepo) SetLikes(ctx context.Context, id string, likes int) error {
	_, err := r.client.Update(ctx, r.table, id, map[string]any{colProjLikes: likes})
	return err
}

func projectFields(p *model.Project) map[string]any {
	return map[string]any{
		colProjName:         p.Name,
		colProjDescription:  p.Description,
		colProjTechnologies: joinList(p.Technologies),
		colProjCategory:     p.Category,
		colProjTags:         joinList(p.Tags),
		colProjPromotion:    p.Promotion,
		colProjStudents:     joinList(p.Students),
		colProjStatus:       string(p.Status),
		colProjDifficulty:   string(p.Difficulty),
		colProjHidden:       p.Hidden,
		colProjLikes:        p.Likes,
		colProjAuthorID:     p.AuthorID,
		colProjRepoURL:      p.RepoURL,
		colProjDemoURL:      p.DemoURL,
		colProjThumbnail:    p.Thumbnail,
	}
}

// parseProject validates the record shape on the way in. Records
// without a name are malformed; everything else degrades to zero
// values per the domain contract (absent lists are empty lists).
func parseProject(rec *airtable.Record) (*model.Project, error) {
	if !rec.Has(colProjName) {
		return nil, apperr.New(apperr.KindValidationFailed, "project record missing name column")
	}

	return &model.Project{
		ID:           rec.ID,
		Name:         rec.Str(colProjName),
		Description:  rec.Str(colProjDescription),
		Technologies: splitList(rec.Str(colProjTechnologies)),
		Category:     rec.Str(colProjCategory),
		Tags:         splitList(rec.Str(colProjTags)),
		Promotion:    rec.Str(colProjPromotion),
		Students:     splitList(rec.Str(colProjStudents)),
		Status:       model.Status(rec.Str(colProjStatus)),
		Difficulty:   model.Difficulty(rec.Str(colProjDifficulty)),
		Hidden:       rec.Bool(colProjHidden),
		Likes:        rec.Int(colProjLikes),
		AuthorID:     rec.Str(colProjAuthorID),
		RepoURL:      rec.Str(colProjRepoURL),
		DemoURL:      rec.Str(colProjDemoURL),
		Thumbnail:    rec.Str(colProjThumbnail),
		CreatedAt:    rec.CreatedTime,
		UpdatedAt:    rec.Time(colProjUpdatedAt),
	}, nil
}
