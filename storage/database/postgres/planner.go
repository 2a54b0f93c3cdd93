package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classflow/gradego/core/planner"
)

type plannerNoteRow struct {
	ID        string      `db:"id"`
	TeacherID string      `db:"teacher_id"`
	ClassID   null.String `db:"class_id"`
	Date      time.Time   `db:"date"`
	Title     string      `db:"title"`
	Content   string      `db:"content"`
	IsPrivate bool        `db:"is_private"`
	Urgency   string      `db:"urgency"`
}

func (r plannerNoteRow) toModel() planner.Note {
	return planner.Note{
		ID:        r.ID,
		TeacherID: r.TeacherID,
		ClassID:   r.ClassID.String,
		Date:      r.Date,
		Title:     r.Title,
		Content:   r.Content,
		IsPrivate: r.IsPrivate,
		Urgency:   r.Urgency,
	}
}

type plannerRepository struct {
	db *sqlx.DB
}

var _ planner.Repository = (*plannerRepository)(nil)

func NewPlannerRepository(db *sqlx.DB) *plannerRepository {
	return &plannerRepository{db: db}
}

func (repo *plannerRepository) CreateNote(ctx context.Context, n planner.Note) (planner.Note, error) {
	n.ID = uuid.New().String()
	_, err := repo.db.ExecContext(ctx, `
		INSERT INTO planner_note (id, teacher_id, class_id, date, title, content, is_private, urgency)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.TeacherID, null.NewString(n.ClassID, n.ClassID != ""),
		n.Date, n.Title, n.Content, n.IsPrivate, n.Urgency)
	if err != nil {
		return planner.Note{}, errors.Wrap(err, "inserting planner note")
	}
	return n, nil
}

func (repo *plannerRepository) GetNoteByID(ctx context.Context, id string) (planner.Note, error) {
	var row plannerNoteRow
	err := repo.db.GetContext(ctx, &row, `SELECT * FROM planner_note WHERE id = $1`, id)
	if err != nil {
		return planner.Note{}, trapNoRows(err, planner.ErrNotFound, "getting planner note by id")
	}
	return row.toModel(), nil
}

func (repo *plannerRepository) QueryNotesByTeacher(ctx context.Context, teacherID string, from, to time.Time) ([]planner.Note, error) {
	var rows []plannerNoteRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM planner_note
		WHERE teacher_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date`, teacherID, from, to)
	if err != nil {
		return nil, errors.Wrap(err, "querying planner notes by teacher")
	}
	return plannerNoteSlice(rows), nil
}

func (repo *plannerRepository) QuerySharedNotesByClass(ctx context.Context, classID string) ([]planner.Note, error) {
	var rows []plannerNoteRow
	err := repo.db.SelectContext(ctx, &rows, `
		SELECT * FROM planner_note
		WHERE class_id = $1 AND NOT is_private
		ORDER BY date`, classID)
	if err != nil {
		return nil, errors.Wrap(err, "querying shared planner notes")
	}
	return plannerNoteSlice(rows), nil
}

func (repo *plannerRepository) UpdateNote(ctx context.Context, n planner.Note) (planner.Note, error) {
	_, err := repo.db.ExecContext(ctx, `
		UPDATE planner_note
		SET class_id = $2, date = $3, title = $4, content = $5, is_private = $6, urgency = $7
		WHERE id = $1`,
		n.ID, null.NewString(n.ClassID, n.ClassID != ""),
		n.Date, n.Title, n.Content, n.IsPrivate, n.Urgency)
	if err != nil {
		return planner.Note{}, errors.Wrap(err, "updating planner note")
	}
	return n, nil
}

func (repo *plannerRepository) DeleteNote(ctx context.Context, id string) error {
	_, err := repo.db.ExecContext(ctx, `DELETE FROM planner_note WHERE id = $1`, id)
	return errors.Wrap(err, "deleting planner note")
}

func plannerNoteSlice(rows []plannerNoteRow) []planner.Note {
	notes := make([]planner.Note, 0, len(rows))
	for _, row := range rows {
		notes = append(notes, row.toModel())
	}
	return notes
}
