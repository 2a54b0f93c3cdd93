package inmemdb

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/assessment"
)

type assessmentRepository struct {
	db *DB
}

func NewAssessmentRepository(db *DB) assessment.Repository {
	return &assessmentRepository{db: db}
}

func (repo *assessmentRepository) CreateAssessment(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a.ID = uuid.New().String()
	for i := range a.Questions {
		a.Questions[i].ID = uuid.New().String()
		a.Questions[i].AssessmentID = a.ID
	}
	repo.db.assessments[a.ID] = &a
	return a, nil
}

func (repo *assessmentRepository) GetAssessmentByID(ctx context.Context, id string) (assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if a, ok := repo.db.assessments[id]; ok {
		return *a, nil
	}
	return assessment.Assessment{}, assessment.ErrNotFound
}

func (repo *assessmentRepository) QueryAssessmentsByClass(ctx context.Context, classID string, publishedOnly bool) ([]assessment.Assessment, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	assessments := make([]assessment.Assessment, 0)
	for _, a := range repo.db.assessments {
		if a.ClassID != classID {
			continue
		}
		if publishedOnly && !a.IsPublished {
			continue
		}
		assessments = append(assessments, *a)
	}
	sort.Slice(assessments, func(i, j int) bool { return assessments[i].CreatedAt.After(assessments[j].CreatedAt) })
	return assessments, nil
}

func (repo *assessmentRepository) SetAssessmentPublished(ctx context.Context, id string, published bool) (assessment.Assessment, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	a, ok := repo.db.assessments[id]
	if !ok {
		return assessment.Assessment{}, assessment.ErrNotFound
	}
	a.IsPublished = published
	return *a, nil
}

func (repo *assessmentRepository) CreateSubmission(ctx context.Context, sub assessment.Submission) (assessment.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.submissions {
		if existing.AssessmentID == sub.AssessmentID && existing.StudentID == sub.StudentID {
			return assessment.Submission{}, assessment.ErrSubmissionExists
		}
	}
	sub.ID = uuid.New().String()
	for i := range sub.Answers {
		sub.Answers[i].ID = uuid.New().String()
		sub.Answers[i].SubmissionID = sub.ID
	}
	repo.db.submissions[sub.ID] = &sub
	return sub, nil
}

func (repo *assessmentRepository) GetSubmissionByID(ctx context.Context, id string) (assessment.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if sub, ok := repo.db.submissions[id]; ok {
		return *sub, nil
	}
	return assessment.Submission{}, assessment.ErrSubmissionMissing
}

func (repo *assessmentRepository) GetSubmissionForStudent(ctx context.Context, assessmentID, studentID string) (assessment.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, sub := range repo.db.submissions {
		if sub.AssessmentID == assessmentID && sub.StudentID == studentID {
			return *sub, nil
		}
	}
	return assessment.Submission{}, assessment.ErrSubmissionMissing
}

func (repo *assessmentRepository) QuerySubmissionsByAssessment(ctx context.Context, assessmentID string) ([]assessment.Submission, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	subs := make([]assessment.Submission, 0)
	for _, sub := range repo.db.submissions {
		if sub.AssessmentID == assessmentID {
			subs = append(subs, *sub)
		}
	}
	sort.Slice(subs, func(i, j int) bool { return subs[i].SubmittedAt.Before(subs[j].SubmittedAt) })
	return subs, nil
}

func (repo *assessmentRepository) GradeSubmission(ctx context.Context, sub assessment.Submission) (assessment.Submission, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.submissions[sub.ID]
	if !ok {
		return assessment.Submission{}, assessment.ErrSubmissionMissing
	}
	orig.IsGraded = sub.IsGraded
	orig.TotalScore = sub.TotalScore
	orig.Answers = sub.Answers
	return *orig, nil
}
