package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/suggestion"
)

type suggestionRepository struct {
	db *DB
}

func NewSuggestionRepository(db *DB) suggestion.Repository {
	return &suggestionRepository{db: db}
}

func (repo *suggestionRepository) CreateSuggestion(ctx context.Context, s suggestion.Suggestion) (suggestion.Suggestion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s.ID = uuid.New().String()
	repo.db.suggestions[s.ID] = &s
	return s, nil
}

func (repo *suggestionRepository) GetSuggestionByID(ctx context.Context, id string) (suggestion.Suggestion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.db.suggestions[id]; ok {
		return *s, nil
	}
	return suggestion.Suggestion{}, suggestion.ErrNotFound
}

func (repo *suggestionRepository) QuerySuggestionsByTenant(ctx context.Context, tenantID string) ([]suggestion.Suggestion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	suggestions := make([]suggestion.Suggestion, 0)
	for _, s := range repo.db.suggestions {
		if s.TenantID == tenantID {
			suggestions = append(suggestions, *s)
		}
	}
	sortSuggestions(suggestions)
	return suggestions, nil
}

func (repo *suggestionRepository) QuerySuggestionsByStudent(ctx context.Context, studentID string) ([]suggestion.Suggestion, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	suggestions := make([]suggestion.Suggestion, 0)
	for _, s := range repo.db.suggestions {
		if s.StudentID == studentID {
			suggestions = append(suggestions, *s)
		}
	}
	sortSuggestions(suggestions)
	return suggestions, nil
}

func (repo *suggestionRepository) MarkSuggestionAnswered(ctx context.Context, id string, answered bool) (suggestion.Suggestion, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	s, ok := repo.db.suggestions[id]
	if !ok {
		return suggestion.Suggestion{}, suggestion.ErrNotFound
	}
	s.IsAnswered = answered
	return *s, nil
}

func sortSuggestions(suggestions []suggestion.Suggestion) {
	sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].CreatedAt.After(suggestions[j].CreatedAt) })
}
