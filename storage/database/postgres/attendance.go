package pgrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/classflow/gradego/core/attendance"
)

type attendanceRow struct {
	ID        string    `db:"id"`
	ClassID   string    `db:"class_id"`
	StudentID string    `db:"student_id"`
	Date      time.Time `db:"date"`
	Status    string    `db:"status"`
}

func (r attendanceRow) toModel() attendance.Record {
	return attendance.Record{
		ID:        r.ID,
		ClassID:   r.ClassID,
		StudentID: r.StudentID,
		Date:      r.Date,
		Status:    r.Status,
	}
}

type attendanceRepository struct {
	db *sqlx.DB
}

var _ attendance.Repository = (*attendanceRepository)(nil)

func NewAttendanceRepository(db *sqlx.DB) *attendanceRepository {
	return &attendanceRepository{db: db}
}

// UpsertRecord relies on the (date, student_id) unique constraint; recording
// the same student twice on a day overwrites the status in place.
func (repo *attendanceRepository) UpsertRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	rec.ID = uuid.New().String()
	var row attendanceRow
	err := repo.db.GetContext(ctx, &row, `
		INSERT INTO attendance_record (id, class_id, student_id, date, status)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (date, student_id) DO UPDATE SET status = EXCLUDED.status
		RETURNING *`,
		rec.ID, rec.ClassID, rec.StudentID, rec.Date, rec.Status)
	if err != nil {
		return attendance.Record{}, errors.Wrap(err, "upserting attendance record")
	}
	return row.toModel(), nil
}

func (repo *attendanceRepository) QueryRecordsByClassDate(ctx context.Context, classID string, date time.Time) ([]attendance.Record, error) {
	var rows []attendanceRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM attendance_record WHERE class_id = $1 AND date = $2`, classID, date)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance by class and date")
	}
	return attendanceSlice(rows), nil
}

func (repo *attendanceRepository) QueryRecordsByStudent(ctx context.Context, studentID string) ([]attendance.Record, error) {
	var rows []attendanceRow
	err := repo.db.SelectContext(ctx, &rows,
		`SELECT * FROM attendance_record WHERE student_id = $1 ORDER BY date`, studentID)
	if err != nil {
		return nil, errors.Wrap(err, "querying attendance by student")
	}
	return attendanceSlice(rows), nil
}

func (repo *attendanceRepository) SummarizeClass(ctx context.Context, classID string, from, to time.Time) (attendance.Summary, error) {
	var sum attendance.Summary
	err := repo.db.GetContext(ctx, &sum, `
		SELECT
			count(*) FILTER (WHERE status = 'present') AS present,
			count(*) FILTER (WHERE status = 'absent')  AS absent,
			count(*) FILTER (WHERE status = 'late')    AS late
		FROM attendance_record
		WHERE class_id = $1 AND date BETWEEN $2 AND $3`, classID, from, to)
	if err != nil {
		return attendance.Summary{}, errors.Wrap(err, "summarizing class attendance")
	}
	return sum, nil
}

func attendanceSlice(rows []attendanceRow) []attendance.Record {
	records := make([]attendance.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toModel())
	}
	return records
}
