package attendance_test

import (
	"context"
	"testing"
	"time"

	"github.com/classflow/gradego/core/attendance"
	inmemdb "github.com/classflow/gradego/storage/database/inmem"
)

func TestService_RecordSheet(t *testing.T) {
	svc := attendance.NewService(inmemdb.NewAttendanceRepository(inmemdb.NewDB()))
	ctx := context.Background()

	day := time.Date(2021, 9, 6, 10, 30, 0, 0, time.UTC) // time-of-day is dropped

	recs, err := svc.RecordSheet(ctx, attendance.NewSheet{
		Date: day,
		Records: []attendance.NewRecord{
			{StudentID: "stu1", Status: attendance.StatusPresent},
			{StudentID: "stu2", Status: attendance.StatusAbsent},
		},
	}, "cls1")
	if err != nil {
		t.Fatalf("RecordSheet() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	wantDay := time.Date(2021, 9, 6, 0, 0, 0, 0, time.UTC)
	for _, rec := range recs {
		if !rec.Date.Equal(wantDay) {
			t.Errorf("rec.Date = %v, want %v", rec.Date, wantDay)
		}
	}

	// re-recording the same day overwrites instead of duplicating
	if _, err := svc.RecordSheet(ctx, attendance.NewSheet{
		Date:    day,
		Records: []attendance.NewRecord{{StudentID: "stu2", Status: attendance.StatusLate}},
	}, "cls1"); err != nil {
		t.Fatalf("RecordSheet() error = %v", err)
	}

	recs, err = svc.QueryByClassDate(ctx, "cls1", day)
	if err != nil {
		t.Fatalf("QueryByClassDate() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len(recs) = %d, want 2", len(recs))
	}
	statuses := make(map[string]string, len(recs))
	for _, rec := range recs {
		statuses[rec.StudentID] = rec.Status
	}
	if statuses["stu1"] != attendance.StatusPresent {
		t.Errorf("stu1 status = %q, want %q", statuses["stu1"], attendance.StatusPresent)
	}
	if statuses["stu2"] != attendance.StatusLate {
		t.Errorf("stu2 status = %q, want %q", statuses["stu2"], attendance.StatusLate)
	}
}

func TestService_Summarize(t *testing.T) {
	svc := attendance.NewService(inmemdb.NewAttendanceRepository(inmemdb.NewDB()))
	ctx := context.Background()

	day1 := time.Date(2021, 9, 6, 0, 0, 0, 0, time.UTC)
	day2 := day1.Add(24 * time.Hour)
	sheets := []attendance.NewSheet{
		{Date: day1, Records: []attendance.NewRecord{
			{StudentID: "stu1", Status: attendance.StatusPresent},
			{StudentID: "stu2", Status: attendance.StatusAbsent},
		}},
		{Date: day2, Records: []attendance.NewRecord{
			{StudentID: "stu1", Status: attendance.StatusLate},
			{StudentID: "stu2", Status: attendance.StatusPresent},
		}},
	}
	for _, sheet := range sheets {
		if _, err := svc.RecordSheet(ctx, sheet, "cls1"); err != nil {
			t.Fatalf("RecordSheet() error = %v", err)
		}
	}

	sum, err := svc.Summarize(ctx, "cls1", day1, day2)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	want := attendance.Summary{Present: 2, Absent: 1, Late: 1}
	if sum != want {
		t.Errorf("Summarize() = %+v, want %+v", sum, want)
	}

	// only day1
	sum, err = svc.Summarize(ctx, "cls1", day1, day1)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	want = attendance.Summary{Present: 1, Absent: 1}
	if sum != want {
		t.Errorf("Summarize() = %+v, want %+v", sum, want)
	}
}
