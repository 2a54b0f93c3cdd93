package pgrepos

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classflow/gradego/core/assessment"
)

type assessmentRow struct {
	ID          string    `db:"id"`
	ClassID     string    `db:"class_id"`
	Title       string    `db:"title"`
	Type        string    `db:"type"`
	DueDate     null.Time `db:"due_date"`
	MaxScore    int       `db:"max_score"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r assessmentRow) toModel() assessment.Assessment {
	a := assessment.Assessment{
		ID:          r.ID,
		ClassID:     r.ClassID,
		Title:       r.Title,
		Type:        r.Type,
		MaxScore:    r.MaxScore,
		IsPublished: r.IsPublished,
		CreatedAt:   r.CreatedAt,
	}
	if r.DueDate.Valid {
		due := r.DueDate.Time
		a.DueDate = &due
	}
	return a
}

type questionRow struct {
	ID            string `db:"id"`
	AssessmentID  string `db:"assessment_id"`
	Text          string `db:"text"`
	Type          string `db:"type"`
	Score         int    `db:"score"`
	Options       []byte `db:"options"`
	CorrectAnswer []byte `db:"correct_answer"`
}

func (r questionRow) toModel() assessment.Question {
	return assessment.Question{
		ID:            r.ID,
		AssessmentID:  r.AssessmentID,
		Text:          r.Text,
		Type:          r.Type,
		Score:         r.Score,
		Options:       json.RawMessage(r.Options),
		CorrectAnswer: json.RawMessage(r.CorrectAnswer),
	}
}

type submissionRow struct {
	ID           string    `db:"id"`
	AssessmentID string    `db:"assessment_id"`
	StudentID    string    `db:"student_id"`
	SubmittedAt  time.Time `db:"submitted_at"`
	IsGraded     bool      `db:"is_graded"`
	TotalScore   null.Int  `db:"total_score"`
}

func (r submissionRow) toModel() assessment.Submission {
	s := assessment.Submission{
		ID:           r.ID,
		AssessmentID: r.AssessmentID,
		StudentID:    r.StudentID,
		SubmittedAt:  r.SubmittedAt,
		IsGraded:     r.IsGraded,
	}
	if r.TotalScore.Valid {
		total := r.TotalScore.Int
		s.TotalScore = &total
	}
	return s
}

type answerRow struct {
	ID           string   `db:"id"`
	SubmissionID string   `db:"submission_id"`
	QuestionID   string   `db:"question_id"`
	Response     []byte   `db:"response"`
	Score        null.Int `db:"score"`
}

func (r answerRow) toModel() assessment.Answer {
	a := assessment.Answer{
		ID:           r.ID,
		SubmissionID: r.SubmissionID,
		QuestionID:   r.QuestionID,
		Response:     json.RawMessage(r.Response),
	}
	if r.Score.Valid {
		score := r.Score.Int
		a.Score = &score
	}
	return a
}

type assessmentRepository struct {
	db *sqlx.DB
}

var _ assessment.Repository = (*assessmentRepository)(nil)

func NewAssessmentRepository(db *sqlx.DB) *assessmentRepository {
	return &assessmentRepository{db: db}
}

// CreateAssessment inserts the assessment and all of its questions in one
// transaction so a partial question insert never leaves a half-built form.
func (repo *assessmentRepository) CreateAssessment(ctx context.Context, a assessment.Assessment) (assessment.Assessment, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "beginning tx")
	}
	defer tx.Rollback() // nolint:errcheck

	a.ID = uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO assessment (id, class_id, title, type, due_date, max_score, is_published, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.ClassID, a.Title, a.Type, null.TimeFromPtr(a.DueDate), a.MaxScore, a.IsPublished, a.CreatedAt)
	if err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "inserting assessment")
	}

	for i := range a.Questions {
		q := &a.Questions[i]
		q.ID = uuid.New().String()
		q.AssessmentID = a.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO question (id, assessment_id, text, type, score, options, correct_answer)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			q.ID, q.AssessmentID, q.Text, q.Type, q.Score, jsonbArg(q.Options), jsonbArg(q.CorrectAnswer))
		if err != nil {
			return assessment.Assessment{}, errors.Wrap(err, "inserting question")
		}
	}

	if err = tx.Commit(); err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "committing tx")
	}
	return a, nil
}

func (repo *assessmentRepository) GetAssessmentByID(ctx context.Context, id string) (assessment.Assessment, error) {
	var row assessmentRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM assessment WHERE id = $1`, id)
	if err != nil {
		return assessment.Assessment{}, trapNoRows(err, assessment.ErrNotFound, "getting assessment by id")
	}
	a := row.toModel()

	var qRows []questionRow
	err = repo.db.SelectContext(ctx, &qRows, `SELECT * FROM question WHERE assessment_id = $1`, id)
	if err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "querying questions")
	}
	for _, q := range qRows {
		a.Questions = append(a.Questions, q.toModel())
	}
	return a, nil
}

func (repo *assessmentRepository) QueryAssessmentsByClass(ctx context.Context, classID string, publishedOnly bool) ([]assessment.Assessment, error) {
	query := `SELECT * FROM assessment WHERE class_id = $1`
	if publishedOnly {
		query += ` AND is_published`
	}
	query += ` ORDER BY created_at DESC`

	var rows []assessmentRow
	if err := repo.db.SelectContext(ctx, &rows, query, classID); err != nil {
		return nil, errors.Wrap(err, "querying assessments by class")
	}
	assessments := make([]assessment.Assessment, 0, len(rows))
	for _, row := range rows {
		assessments = append(assessments, row.toModel())
	}
	return assessments, nil
}

func (repo *assessmentRepository) SetAssessmentPublished(ctx context.Context, id string, published bool) (assessment.Assessment, error) {
	_, err := repo.db.ExecContext(ctx, `UPDATE assessment SET is_published = $2 WHERE id = $1`, id, published)
	if err != nil {
		return assessment.Assessment{}, errors.Wrap(err, "publishing assessment")
	}
	return repo.GetAssessmentByID(ctx, id)
}

// CreateSubmission inserts the submission and its answers in one transaction.
func (repo *assessmentRepository) CreateSubmission(ctx context.Context, sub assessment.Submission) (assessment.Submission, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return assessment.Submission{}, errors.Wrap(err, "beginning tx")
	}
	defer tx.Rollback() // nolint:errcheck

	sub.ID = uuid.New().String()
	_, err = tx.ExecContext(ctx, `
		INSERT INTO submission (id, assessment_id, student_id, submitted_at, is_graded)
		VALUES ($1, $2, $3, $4, $5)`,
		sub.ID, sub.AssessmentID, sub.StudentID, sub.SubmittedAt, sub.IsGraded)
	if err != nil {
		if isUniqueViolation(err) {
			return assessment.Submission{}, assessment.ErrSubmissionExists
		}
		return assessment.Submission{}, errors.Wrap(err, "inserting submission")
	}

	for i := range sub.Answers {
		ans := &sub.Answers[i]
		ans.ID = uuid.New().String()
		ans.SubmissionID = sub.ID
		_, err = tx.ExecContext(ctx, `
			INSERT INTO answer (id, submission_id, question_id, response)
			VALUES ($1, $2, $3, $4)`,
			ans.ID, ans.SubmissionID, ans.QuestionID, jsonbArg(ans.Response))
		if err != nil {
			return assessment.Submission{}, errors.Wrap(err, "inserting answer")
		}
	}

	if err = tx.Commit(); err != nil {
		return assessment.Submission{}, errors.Wrap(err, "committing tx")
	}
	return sub, nil
}

func (repo *assessmentRepository) GetSubmissionByID(ctx context.Context, id string) (assessment.Submission, error) {
	var row submissionRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM submission WHERE id = $1`, id)
	if err != nil {
		return assessment.Submission{}, trapNoRows(err, assessment.ErrSubmissionMissing, "getting submission by id")
	}
	return repo.attachAnswers(ctx, row.toModel())
}

func (repo *assessmentRepository) GetSubmissionForStudent(ctx context.Context, assessmentID, studentID string) (assessment.Submission, error) {
	var row submissionRow
	err := repo.db.GetContext(ctx, &row,
		`SELECT * FROM submission WHERE assessment_id = $1 AND student_id = $2`, assessmentID, studentID)
	if err != nil {
		return assessment.Submission{}, trapNoRows(err, assessment.ErrSubmissionMissing, "getting submission for student")
	}
	return repo.attachAnswers(ctx, row.toModel())
}

func (repo *assessmentRepository) QuerySubmissionsByAssessment(ctx context.Context, assessmentID string) ([]assessment.Submission, error) {
	var rows []submissionRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM submission WHERE assessment_id = $1 ORDER BY submitted_at`, assessmentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying submissions")
	}
	subs := make([]assessment.Submission, 0, len(rows))
	for _, row := range rows {
		subs = append(subs, row.toModel())
	}
	return subs, nil
}

// GradeSubmission writes per-answer scores and the total in one transaction.
func (repo *assessmentRepository) GradeSubmission(ctx context.Context, sub assessment.Submission) (assessment.Submission, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return assessment.Submission{}, errors.Wrap(err, "beginning tx")
	}
	defer tx.Rollback() // nolint:errcheck

	for _, ans := range sub.Answers {
		_, err = tx.ExecContext(ctx,
			`UPDATE answer SET score = $2 WHERE id = $1`, ans.ID, null.IntFromPtr(ans.Score))
		if err != nil {
			return assessment.Submission{}, errors.Wrap(err, "scoring answer")
		}
	}
	_, err = tx.ExecContext(ctx,
		`UPDATE submission SET is_graded = $2, total_score = $3 WHERE id = $1`,
		sub.ID, sub.IsGraded, null.IntFromPtr(sub.TotalScore))
	if err != nil {
		return assessment.Submission{}, errors.Wrap(err, "updating submission grade")
	}

	if err = tx.Commit(); err != nil {
		return assessment.Submission{}, errors.Wrap(err, "committing tx")
	}
	return sub, nil
}

func (repo *assessmentRepository) attachAnswers(ctx context.Context, sub assessment.Submission) (assessment.Submission, error) {
	var rows []answerRow
	err := repo.db.SelectContext(ctx, &rows, `SELECT * FROM answer WHERE submission_id = $1`, sub.ID)
	if err != nil {
		return assessment.Submission{}, errors.Wrap(err, "querying answers")
	}
	for _, row := range rows {
		sub.Answers = append(sub.Answers, row.toModel())
	}
	return sub, nil
}

// jsonbArg maps an empty payload to NULL instead of invalid empty jsonb.
func jsonbArg(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
