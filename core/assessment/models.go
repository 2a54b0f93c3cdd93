package assessment

import (
	"encoding/json"
	"time"

	"github.com/classflow/gradego/core"
)

// Assessment types
const (
	TypeQuiz     = "quiz"
	TypeExam     = "exam"
	TypeHomework = "homework"
)

// Question types
const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionCheckbox       = "checkbox"
	QuestionRating         = "rating"
	QuestionText           = "text"
)

type Assessment struct {
	ID          string     `json:"id"`
	ClassID     string     `json:"class_id"`
	Title       string     `json:"title"`
	Type        string     `json:"type"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	MaxScore    int        `json:"max_score"`
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"` // UTC

	Questions []Question `json:"questions,omitempty"`
}

type Question struct {
	ID           string          `json:"id"`
	AssessmentID string          `json:"assessment_id"`
	Text         string          `json:"text"`
	Type         string          `json:"type"`
	Score        int             `json:"score"`
	Options      json.RawMessage `json:"options,omitempty"`
	// CorrectAnswer is never serialized to students.
	CorrectAnswer json.RawMessage `json:"-"`
}

type Submission struct {
	ID           string    `json:"id"`
	AssessmentID string    `json:"assessment_id"`
	StudentID    string    `json:"student_id"`
	SubmittedAt  time.Time `json:"submitted_at"` // UTC
	IsGraded     bool      `json:"is_graded"`
	TotalScore   *int      `json:"total_score,omitempty"`

	Answers []Answer `json:"answers,omitempty"`
}

type Answer struct {
	ID           string          `json:"id"`
	SubmissionID string          `json:"submission_id"`
	QuestionID   string          `json:"question_id"`
	Response     json.RawMessage `json:"response,omitempty"`
	Score        *int            `json:"score,omitempty"`
}

type NewQuestion struct {
	Text          string          `json:"text" validate:"required"`
	Type          string          `json:"type" validate:"required,oneof=multiple_choice checkbox rating text"`
	Score         int             `json:"score" validate:"gte=0"`
	Options       json.RawMessage `json:"options"`
	CorrectAnswer json.RawMessage `json:"correct_answer"`
}

type NewAssessment struct {
	Title     string        `json:"title" validate:"required"`
	Type      string        `json:"type" validate:"required,oneof=quiz exam homework"`
	DueDate   *time.Time    `json:"due_date"`
	Questions []NewQuestion `json:"questions" validate:"omitempty,dive"`
}

func (na *NewAssessment) Validate() error {
	na.Title = core.CleanString(na.Title)
	na.Type = core.CleanString(na.Type, true /* lower */)
	return core.Validate.Struct(na)
}

// MaxScore is the sum of all question scores.
func (na *NewAssessment) MaxScore() int {
	var total int
	for _, q := range na.Questions {
		total += q.Score
	}
	return total
}

type NewAnswer struct {
	QuestionID string          `json:"question_id" validate:"required"`
	Response   json.RawMessage `json:"response"`
}

type NewSubmission struct {
	Answers []NewAnswer `json:"answers" validate:"required,dive"`
}

func (ns *NewSubmission) Validate() error {
	return core.Validate.Struct(ns)
}
