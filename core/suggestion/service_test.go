package suggestion_test

import (
	"context"
	"testing"

	"github.com/classflow/gradego/core/suggestion"
	inmemdb "github.com/classflow/gradego/storage/database/inmem"
)

func TestService_Submit(t *testing.T) {
	svc := suggestion.NewService(inmemdb.NewSuggestionRepository(inmemdb.NewDB()))
	ctx := context.Background()

	t.Run("named", func(t *testing.T) {
		s, err := svc.Submit(ctx, suggestion.NewSuggestion{Content: "longer recess"}, "tnt1", "stu1")
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if s.StudentID != "stu1" {
			t.Errorf("s.StudentID = %q, want %q", s.StudentID, "stu1")
		}
	})

	t.Run("anonymous never records the student", func(t *testing.T) {
		s, err := svc.Submit(ctx, suggestion.NewSuggestion{Content: "more books", IsAnonymous: true}, "tnt1", "stu1")
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if s.StudentID != "" {
			t.Errorf("s.StudentID = %q, want empty", s.StudentID)
		}
	})
}

func TestService_QueryByTenant_hidesAnonymousAuthors(t *testing.T) {
	db := inmemdb.NewDB()
	repo := inmemdb.NewSuggestionRepository(db)
	svc := suggestion.NewService(repo)
	ctx := context.Background()

	// simulate a row persisted with its author despite the anonymous flag
	if _, err := repo.CreateSuggestion(ctx, suggestion.Suggestion{
		TenantID:    "tnt1",
		StudentID:   "stu1",
		Content:     "leaky",
		IsAnonymous: true,
	}); err != nil {
		t.Fatalf("CreateSuggestion() error = %v", err)
	}
	if _, err := svc.Submit(ctx, suggestion.NewSuggestion{Content: "named one"}, "tnt1", "stu2"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	sugs, err := svc.QueryByTenant(ctx, "tnt1")
	if err != nil {
		t.Fatalf("QueryByTenant() error = %v", err)
	}
	if len(sugs) != 2 {
		t.Fatalf("len(sugs) = %d, want 2", len(sugs))
	}
	for _, s := range sugs {
		if s.IsAnonymous && s.StudentID != "" {
			t.Errorf("anonymous suggestion %s exposes student %q", s.ID, s.StudentID)
		}
		if !s.IsAnonymous && s.StudentID == "" {
			t.Errorf("named suggestion %s lost its student", s.ID)
		}
	}
}

func TestService_MarkAnswered(t *testing.T) {
	svc := suggestion.NewService(inmemdb.NewSuggestionRepository(inmemdb.NewDB()))
	ctx := context.Background()

	s, err := svc.Submit(ctx, suggestion.NewSuggestion{Content: "more books", IsAnonymous: true}, "tnt1", "stu1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	t.Run("unknown id", func(t *testing.T) {
		if _, err := svc.MarkAnswered(ctx, "lol", "tnt1", true); err != suggestion.ErrNotFound {
			t.Errorf("MarkAnswered() error = %v, wantErr %v", err, suggestion.ErrNotFound)
		}
	})

	t.Run("other tenant looks unknown", func(t *testing.T) {
		if _, err := svc.MarkAnswered(ctx, s.ID, "tnt2", true); err != suggestion.ErrNotFound {
			t.Errorf("MarkAnswered() error = %v, wantErr %v", err, suggestion.ErrNotFound)
		}
	})

	t.Run("same tenant marks", func(t *testing.T) {
		marked, err := svc.MarkAnswered(ctx, s.ID, "tnt1", true)
		if err != nil {
			t.Fatalf("MarkAnswered() error = %v", err)
		}
		if !marked.IsAnswered {
			t.Error("marked.IsAnswered = false, want true")
		}
		if marked.StudentID != "" {
			t.Errorf("marked.StudentID = %q, want empty", marked.StudentID)
		}
	})
}
