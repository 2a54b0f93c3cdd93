package assessment

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrNotFound          = errors.New("assessment not found")
	ErrSubmissionExists  = errors.New("a submission for this assessment already exists")
	ErrNotPublished      = errors.New("assessment is not published")
	ErrPastDue           = errors.New("assessment is past its due date")
	ErrSubmissionMissing = errors.New("submission not found")
)

type (
	Repository interface {
		// CreateAssessment persists the assessment and its questions as a
		// single transaction.
		CreateAssessment(ctx context.Context, a Assessment) (Assessment, error)
		GetAssessmentByID(ctx context.Context, id string) (Assessment, error)
		QueryAssessmentsByClass(ctx context.Context, classID string, publishedOnly bool) ([]Assessment, error)
		SetAssessmentPublished(ctx context.Context, id string, published bool) (Assessment, error)

		CreateSubmission(ctx context.Context, sub Submission) (Submission, error)
		GetSubmissionByID(ctx context.Context, id string) (Submission, error)
		GetSubmissionForStudent(ctx context.Context, assessmentID, studentID string) (Submission, error)
		QuerySubmissionsByAssessment(ctx context.Context, assessmentID string) ([]Submission, error)
		// GradeSubmission persists per-answer scores and the resulting total.
		GradeSubmission(ctx context.Context, sub Submission) (Submission, error)
	}

	Service interface {
		Create(ctx context.Context, na NewAssessment, classID string) (Assessment, error)
		GetByID(ctx context.Context, id string) (Assessment, error)
		QueryByClass(ctx context.Context, classID string, publishedOnly bool) ([]Assessment, error)
		Publish(ctx context.Context, id string) (Assessment, error)

		Submit(ctx context.Context, ns NewSubmission, assessmentID, studentID string) (Submission, error)
		GetSubmission(ctx context.Context, id string) (Submission, error)
		Submissions(ctx context.Context, assessmentID string) ([]Submission, error)
		Grade(ctx context.Context, submissionID string, scores map[string]int) (Submission, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) Create(ctx context.Context, na NewAssessment, classID string) (Assessment, error) {
	a := Assessment{
		ClassID:   classID,
		Title:     na.Title,
		Type:      na.Type,
		DueDate:   na.DueDate,
		MaxScore:  na.MaxScore(),
		CreatedAt: time.Now().UTC(),
	}
	for _, nq := range na.Questions {
		a.Questions = append(a.Questions, Question{
			Text:          nq.Text,
			Type:          nq.Type,
			Score:         nq.Score,
			Options:       nq.Options,
			CorrectAnswer: nq.CorrectAnswer,
		})
	}
	return svc.repo.CreateAssessment(ctx, a)
}

func (svc *service) GetByID(ctx context.Context, id string) (Assessment, error) {
	return svc.repo.GetAssessmentByID(ctx, id)
}

func (svc *service) QueryByClass(ctx context.Context, classID string, publishedOnly bool) ([]Assessment, error) {
	return svc.repo.QueryAssessmentsByClass(ctx, classID, publishedOnly)
}

func (svc *service) Publish(ctx context.Context, id string) (Assessment, error) {
	return svc.repo.SetAssessmentPublished(ctx, id, true)
}

// Submit records a student's answers. One submission per student per
// assessment; the assessment must be published and not past due.
func (svc *service) Submit(ctx context.Context, ns NewSubmission, assessmentID, studentID string) (Submission, error) {
	a, err := svc.repo.GetAssessmentByID(ctx, assessmentID)
	if err != nil {
		return Submission{}, err
	}
	if !a.IsPublished {
		return Submission{}, ErrNotPublished
	}
	now := time.Now().UTC()
	if a.DueDate != nil && now.After(*a.DueDate) {
		return Submission{}, ErrPastDue
	}
	if _, err := svc.repo.GetSubmissionForStudent(ctx, assessmentID, studentID); err == nil {
		return Submission{}, ErrSubmissionExists
	} else if errors.Cause(err) != ErrSubmissionMissing {
		return Submission{}, errors.Wrap(err, "checking existing submission")
	}

	sub := Submission{
		AssessmentID: assessmentID,
		StudentID:    studentID,
		SubmittedAt:  now,
	}
	for _, na := range ns.Answers {
		sub.Answers = append(sub.Answers, Answer{
			QuestionID: na.QuestionID,
			Response:   na.Response,
		})
	}
	return svc.repo.CreateSubmission(ctx, sub)
}

func (svc *service) GetSubmission(ctx context.Context, id string) (Submission, error) {
	return svc.repo.GetSubmissionByID(ctx, id)
}

func (svc *service) Submissions(ctx context.Context, assessmentID string) ([]Submission, error) {
	return svc.repo.QuerySubmissionsByAssessment(ctx, assessmentID)
}

// Grade assigns per-answer scores (keyed by answer ID) and marks the
// submission graded with the summed total.
func (svc *service) Grade(ctx context.Context, submissionID string, scores map[string]int) (Submission, error) {
	sub, err := svc.repo.GetSubmissionByID(ctx, submissionID)
	if err != nil {
		return Submission{}, err
	}
	var total int
	for i := range sub.Answers {
		if score, ok := scores[sub.Answers[i].ID]; ok {
			s := score
			sub.Answers[i].Score = &s
		}
		if sub.Answers[i].Score != nil {
			total += *sub.Answers[i].Score
		}
	}
	sub.IsGraded = true
	sub.TotalScore = &total
	return svc.repo.GradeSubmission(ctx, sub)
}
