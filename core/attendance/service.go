package attendance

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("attendance record not found")

type (
	Repository interface {
		// UpsertRecord inserts or overwrites the status for (date, student).
		UpsertRecord(ctx context.Context, rec Record) (Record, error)
		QueryRecordsByClassDate(ctx context.Context, classID string, date time.Time) ([]Record, error)
		QueryRecordsByStudent(ctx context.Context, studentID string) ([]Record, error)
		SummarizeClass(ctx context.Context, classID string, from, to time.Time) (Summary, error)
	}

	Service interface {
		// RecordSheet upserts a whole class day's attendance.
		RecordSheet(ctx context.Context, sheet NewSheet, classID string) ([]Record, error)
		QueryByClassDate(ctx context.Context, classID string, date time.Time) ([]Record, error)
		QueryByStudent(ctx context.Context, studentID string) ([]Record, error)
		Summarize(ctx context.Context, classID string, from, to time.Time) (Summary, error)
	}

	service struct {
		repo Repository
	}
)

var _ Service = (*service)(nil)

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (svc *service) RecordSheet(ctx context.Context, sheet NewSheet, classID string) ([]Record, error) {
	day := sheet.Date.UTC().Truncate(24 * time.Hour)
	recs := make([]Record, 0, len(sheet.Records))
	for _, nr := range sheet.Records {
		rec, err := svc.repo.UpsertRecord(ctx, Record{
			ClassID:   classID,
			StudentID: nr.StudentID,
			Date:      day,
			Status:    nr.Status,
		})
		if err != nil {
			return nil, errors.Wrap(err, "upserting attendance record")
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func (svc *service) QueryByClassDate(ctx context.Context, classID string, date time.Time) ([]Record, error) {
	return svc.repo.QueryRecordsByClassDate(ctx, classID, date.UTC().Truncate(24*time.Hour))
}

func (svc *service) QueryByStudent(ctx context.Context, studentID string) ([]Record, error) {
	return svc.repo.QueryRecordsByStudent(ctx, studentID)
}

func (svc *service) Summarize(ctx context.Context, classID string, from, to time.Time) (Summary, error) {
	return svc.repo.SummarizeClass(ctx, classID, from, to)
}
