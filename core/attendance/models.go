package attendance

import (
	"time"

	"github.com/classflow/gradego/core"
)

// Attendance statuses
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
	StatusLate    = "late"
)

// Record is one student's attendance for one class day.
// (date, student) is unique; re-recording overwrites the status.
type Record struct {
	ID        string    `json:"id"`
	ClassID   string    `json:"class_id"`
	StudentID string    `json:"student_id"`
	Date      time.Time `json:"date"` // day precision, UTC
	Status    string    `json:"status"`
}

type NewRecord struct {
	StudentID string `json:"student_id" validate:"required"`
	Status    string `json:"status" validate:"required,oneof=present absent late"`
}

type NewSheet struct {
	Date    time.Time   `json:"date" validate:"required"`
	Records []NewRecord `json:"records" validate:"required,dive"`
}

func (ns *NewSheet) Validate() error {
	for i := range ns.Records {
		ns.Records[i].Status = core.CleanString(ns.Records[i].Status, true /* lower */)
	}
	return core.Validate.Struct(ns)
}

// Summary aggregates a class's attendance counts for charting.
type Summary struct {
	Present int `json:"present"`
	Absent  int `json:"absent"`
	Late    int `json:"late"`
}
