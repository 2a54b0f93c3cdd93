package assessment_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/classflow/gradego/core/assessment"
	inmemdb "github.com/classflow/gradego/storage/database/inmem"
)

func newSvc() assessment.Service {
	return assessment.NewService(inmemdb.NewAssessmentRepository(inmemdb.NewDB()))
}

func createQuiz(t *testing.T, svc assessment.Service, dueDate *time.Time) assessment.Assessment {
	t.Helper()

	a, err := svc.Create(context.Background(), assessment.NewAssessment{
		Title:   "Unit 1 Quiz",
		Type:    assessment.TypeQuiz,
		DueDate: dueDate,
		Questions: []assessment.NewQuestion{
			{Text: "2+2?", Type: assessment.QuestionMultipleChoice, Score: 5, Options: json.RawMessage(`["3","4"]`)},
			{Text: "Explain.", Type: assessment.QuestionText, Score: 10},
		},
	}, "cls1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	return a
}

func answersFor(a assessment.Assessment) assessment.NewSubmission {
	ns := assessment.NewSubmission{}
	for _, q := range a.Questions {
		ns.Answers = append(ns.Answers, assessment.NewAnswer{QuestionID: q.ID, Response: json.RawMessage(`"4"`)})
	}
	return ns
}

func TestService_Create(t *testing.T) {
	svc := newSvc()
	a := createQuiz(t, svc, nil)

	if a.MaxScore != 15 {
		t.Errorf("a.MaxScore = %d, want 15", a.MaxScore)
	}
	if len(a.Questions) != 2 {
		t.Fatalf("len(a.Questions) = %d, want 2", len(a.Questions))
	}
	if a.IsPublished {
		t.Error("a.IsPublished = true, want false")
	}

	got, err := svc.GetByID(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(got.Questions) != 2 {
		t.Errorf("len(got.Questions) = %d, want 2", len(got.Questions))
	}
}

func TestService_QueryByClass_publishedOnly(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	draft := createQuiz(t, svc, nil)
	published := createQuiz(t, svc, nil)
	if _, err := svc.Publish(ctx, published.ID); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	all, err := svc.QueryByClass(ctx, "cls1", false)
	if err != nil {
		t.Fatalf("QueryByClass() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d, want 2", len(all))
	}

	visible, err := svc.QueryByClass(ctx, "cls1", true)
	if err != nil {
		t.Fatalf("QueryByClass() error = %v", err)
	}
	if len(visible) != 1 || visible[0].ID != published.ID {
		t.Errorf("QueryByClass(publishedOnly) = %v, want [%s]", visible, published.ID)
	}
	_ = draft
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("unpublished", func(t *testing.T) {
		svc := newSvc()
		a := createQuiz(t, svc, nil)
		if _, err := svc.Submit(ctx, answersFor(a), a.ID, "stu1"); err != assessment.ErrNotPublished {
			t.Errorf("Submit() error = %v, wantErr %v", err, assessment.ErrNotPublished)
		}
	})

	t.Run("past due", func(t *testing.T) {
		svc := newSvc()
		yesterday := time.Now().UTC().Add(-24 * time.Hour)
		a := createQuiz(t, svc, &yesterday)
		if _, err := svc.Publish(ctx, a.ID); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		if _, err := svc.Submit(ctx, answersFor(a), a.ID, "stu1"); err != assessment.ErrPastDue {
			t.Errorf("Submit() error = %v, wantErr %v", err, assessment.ErrPastDue)
		}
	})

	t.Run("one submission per student", func(t *testing.T) {
		svc := newSvc()
		a := createQuiz(t, svc, nil)
		if _, err := svc.Publish(ctx, a.ID); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}

		sub, err := svc.Submit(ctx, answersFor(a), a.ID, "stu1")
		if err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if len(sub.Answers) != 2 {
			t.Errorf("len(sub.Answers) = %d, want 2", len(sub.Answers))
		}
		if sub.IsGraded {
			t.Error("sub.IsGraded = true, want false")
		}

		if _, err := svc.Submit(ctx, answersFor(a), a.ID, "stu1"); err != assessment.ErrSubmissionExists {
			t.Errorf("Submit() error = %v, wantErr %v", err, assessment.ErrSubmissionExists)
		}

		// another student may still submit
		if _, err := svc.Submit(ctx, answersFor(a), a.ID, "stu2"); err != nil {
			t.Errorf("Submit() error = %v", err)
		}
	})
}

func TestService_Grade(t *testing.T) {
	svc := newSvc()
	ctx := context.Background()

	a := createQuiz(t, svc, nil)
	if _, err := svc.Publish(ctx, a.ID); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	sub, err := svc.Submit(ctx, answersFor(a), a.ID, "stu1")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	scores := map[string]int{
		sub.Answers[0].ID: 5,
		sub.Answers[1].ID: 7,
	}
	graded, err := svc.Grade(ctx, sub.ID, scores)
	if err != nil {
		t.Fatalf("Grade() error = %v", err)
	}
	if !graded.IsGraded {
		t.Error("graded.IsGraded = false, want true")
	}
	if graded.TotalScore == nil || *graded.TotalScore != 12 {
		t.Errorf("graded.TotalScore = %v, want 12", graded.TotalScore)
	}
	for _, ans := range graded.Answers {
		if ans.Score == nil {
			t.Errorf("answer %s has no score", ans.ID)
		}
	}
}
