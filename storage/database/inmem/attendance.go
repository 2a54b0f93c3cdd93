package inmemdb

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/classflow/gradego/core/attendance"
)

type attendanceRepository struct {
	db *DB
}

func NewAttendanceRepository(db *DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func (repo *attendanceRepository) UpsertRecord(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.attendance {
		if existing.StudentID == rec.StudentID && existing.Date.Equal(rec.Date) {
			existing.Status = rec.Status
			return *existing, nil
		}
	}
	rec.ID = uuid.New().String()
	repo.db.attendance[rec.ID] = &rec
	return rec, nil
}

func (repo *attendanceRepository) QueryRecordsByClassDate(ctx context.Context, classID string, date time.Time) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]attendance.Record, 0)
	for _, rec := range repo.db.attendance {
		if rec.ClassID == classID && rec.Date.Equal(date) {
			records = append(records, *rec)
		}
	}
	return records, nil
}

func (repo *attendanceRepository) QueryRecordsByStudent(ctx context.Context, studentID string) ([]attendance.Record, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	records := make([]attendance.Record, 0)
	for _, rec := range repo.db.attendance {
		if rec.StudentID == studentID {
			records = append(records, *rec)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

func (repo *attendanceRepository) SummarizeClass(ctx context.Context, classID string, from, to time.Time) (attendance.Summary, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	var sum attendance.Summary
	for _, rec := range repo.db.attendance {
		if rec.ClassID != classID || rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			sum.Present++
		case attendance.StatusAbsent:
			sum.Absent++
		case attendance.StatusLate:
			sum.Late++
		}
	}
	return sum, nil
}
