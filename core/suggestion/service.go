package suggestion

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("suggestion not found")

type (
	Repository interface {
		CreateSuggestion(ctx context.Context, s Suggestion) (Suggestion, error)
		GetSuggestionByID(ctx context.Context, id string) (Suggestion, error)
		QuerySuggestionsByTenant(ctx context.Context, tenantID string) ([]Suggestion, error)
		QuerySuggestionsByStudent(ctx context.Context, studentID string) ([]Suggestion, error)
		MarkSuggestionAnswered(ctx context.Context, id string, answered bool) (Suggestion, error)
	}

	Service interface {
		Submit(ctx context.Context, ns NewSuggestion, tenantID, studentID string) (Suggestion, error)
		QueryByTenant(ctx context.Context, tenantID string) ([]Suggestion, error)
		QueryByStudent(ctx context.Context, studentID string) ([]Suggestion, error)
		// MarkAnswered only touches suggestions belonging to tenantID;
		// anything else reports ErrNotFound.
		MarkAnswered(ctx context.Context, id, tenantID string, answered bool) (Suggestion, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Submit(ctx context.Context, ns NewSuggestion, tenantID, studentID string) (Suggestion, error) {
	s := Suggestion{
		TenantID:    tenantID,
		Content:     ns.Content,
		IsAnonymous: ns.IsAnonymous,
		CreatedAt:   time.Now().UTC(),
	}
	if !ns.IsAnonymous {
		s.StudentID = studentID
	}
	return svc.repo.CreateSuggestion(ctx, s)
}

// QueryByTenant is the teacher-facing listing; anonymous entries come back
// with no student ID attached.
func (svc *service) QueryByTenant(ctx context.Context, tenantID string) ([]Suggestion, error) {
	sugs, err := svc.repo.QuerySuggestionsByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	for i := range sugs {
		if sugs[i].IsAnonymous {
			sugs[i].StudentID = ""
		}
	}
	return sugs, nil
}

func (svc *service) QueryByStudent(ctx context.Context, studentID string) ([]Suggestion, error) {
	return svc.repo.QuerySuggestionsByStudent(ctx, studentID)
}

func (svc *service) MarkAnswered(ctx context.Context, id, tenantID string, answered bool) (Suggestion, error) {
	s, err := svc.repo.GetSuggestionByID(ctx, id)
	if err != nil {
		return Suggestion{}, err
	}
	if s.TenantID != tenantID {
		return Suggestion{}, ErrNotFound
	}
	s, err = svc.repo.MarkSuggestionAnswered(ctx, id, answered)
	if err != nil {
		return Suggestion{}, err
	}
	if s.IsAnonymous {
		s.StudentID = ""
	}
	return s, nil
}
