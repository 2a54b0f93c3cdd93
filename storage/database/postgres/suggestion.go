package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classflow/gradego/core/suggestion"
)

type suggestionRow struct {
	ID          string      `db:"id"`
	TenantID    string      `db:"tenant_id"`
	StudentID   null.String `db:"student_id"`
	Content     string      `db:"content"`
	IsAnonymous bool        `db:"is_anonymous"`
	IsAnswered  bool        `db:"is_answered"`
	CreatedAt   time.Time   `db:"created_at"`
}

func (r suggestionRow) toModel() suggestion.Suggestion {
	return suggestion.Suggestion{
		ID:          r.ID,
		TenantID:    r.TenantID,
		StudentID:   r.StudentID.String,
		Content:     r.Content,
		IsAnonymous: r.IsAnonymous,
		IsAnswered:  r.IsAnswered,
		CreatedAt:   r.CreatedAt,
	}
}

type suggestionRepository struct {
	db *sqlx.DB
}

var _ suggestion.Repository = (*suggestionRepository)(nil)

func NewSuggestionRepository(db *sqlx.DB) *suggestionRepository {
	return &suggestionRepository{db: db}
}

func (repo *suggestionRepository) CreateSuggestion(ctx context.Context, s suggestion.Suggestion) (suggestion.Suggestion, error) {
	s.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO suggestion (id, tenant_id, student_id, content, is_anonymous, is_answered, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		s.ID, s.TenantID, null.NewString(s.StudentID, s.StudentID != ""),
		s.Content, s.IsAnonymous, s.IsAnswered, s.CreatedAt)
	if err != nil {
		return suggestion.Suggestion{}, errors.Wrap(err, "inserting suggestion")
	}
	return s, nil
}

func (repo *suggestionRepository) GetSuggestionByID(ctx context.Context, id string) (suggestion.Suggestion, error) {
	var row suggestionRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM suggestion WHERE id = $1`, id)
	if err != nil {
		return suggestion.Suggestion{}, trapNoRows(err, suggestion.ErrNotFound, "getting suggestion by id")
	}
	return row.toModel(), nil
}

func (repo *suggestionRepository) QuerySuggestionsByTenant(ctx context.Context, tenantID string) ([]suggestion.Suggestion, error) {
	var rows []suggestionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM suggestion WHERE tenant_id = $1 ORDER BY created_at DESC`, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "querying suggestions by tenant")
	}
	return suggestionSlice(rows), nil
}

func (repo *suggestionRepository) QuerySuggestionsByStudent(ctx context.Context, studentID string) ([]suggestion.Suggestion, error) {
	var rows []suggestionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM suggestion WHERE student_id = $1 ORDER BY created_at DESC`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying suggestions by student")
	}
	return suggestionSlice(rows), nil
}

func (repo *suggestionRepository) MarkSuggestionAnswered(ctx context.Context, id string, answered bool) (suggestion.Suggestion, error) {
	_, err := repo.db.ExecContext(ctx, `UPDATE suggestion SET is_answered = $2 WHERE id = $1`, id, answered)
	if err != nil {
		return suggestion.Suggestion{}, errors.Wrap(err, "marking suggestion answered")
	}
	return repo.GetSuggestionByID(ctx, id)
}

func suggestionSlice(rows []suggestionRow) []suggestion.Suggestion {
	suggestions := make([]suggestion.Suggestion, 0, len(rows))
	for _, row := range rows {
		suggestions = append(suggestions, row.toModel())
	}
	return suggestions
}
