// Package inmemdb provides map-backed repositories for tests and local
// development without a running database.
package inmemdb

import (
	"sync"

	"github.com/classflow/gradego/core/account"
	"github.com/classflow/gradego/core/announcement"
	"github.com/classflow/gradego/core/assessment"
	"github.com/classflow/gradego/core/attendance"
	"github.com/classflow/gradego/core/classroom"
	"github.com/classflow/gradego/core/planner"
	"github.com/classflow/gradego/core/student"
	"github.com/classflow/gradego/core/suggestion"
	"github.com/classflow/gradego/core/tenant"
	"github.com/classflow/gradego/core/teacher"
)

type DB struct {
	mutex sync.RWMutex

	accounts      map[string]*account.Account
	tenants       map[string]*tenant.Tenant
	teachers      map[string]*teacher.Teacher
	students      map[string]*student.Student
	classes       map[string]*classroom.Class
	roster        map[string]map[string]bool // classID -> studentID set
	assessments   map[string]*assessment.Assessment
	submissions   map[string]*assessment.Submission
	attendance    map[string]*attendance.Record
	announcements map[string]*announcement.Announcement
	suggestions   map[string]*suggestion.Suggestion
	plannerNotes  map[string]*planner.Note
}

func NewDB() *DB {
	return &DB{
		accounts:      make(map[string]*account.Account),
		tenants:       make(map[string]*tenant.Tenant),
		teachers:      make(map[string]*teacher.Teacher),
		students:      make(map[string]*student.Student),
		classes:       make(map[string]*classroom.Class),
		roster:        make(map[string]map[string]bool),
		assessments:   make(map[string]*assessment.Assessment),
		submissions:   make(map[string]*assessment.Submission),
		attendance:    make(map[string]*attendance.Record),
		announcements: make(map[string]*announcement.Announcement),
		suggestions:   make(map[string]*suggestion.Suggestion),
		plannerNotes:  make(map[string]*planner.Note),
	}
}
