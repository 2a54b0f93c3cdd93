package enroll

import "github.com/classflow/gradego/core"

// The enrollment wizard collects a student's information over three steps,
// each with its own disjoint validation schema, before a final confirmation.

type (
	Step1StudentInfo struct {
		FirstName       string `json:"first_name" validate:"required"`
		MiddleName      string `json:"middle_name"`
		LastName        string `json:"last_name" validate:"required"`
		Extension       string `json:"extension"`
		Sex             string `json:"sex" validate:"required"`
		Gender          string `json:"gender"`
		Birthday        string `json:"birthday" validate:"required"`
		LRN             string `json:"lrn" validate:"required,digits"`
		InterestingFact string `json:"interesting_fact"`
	}

	Step2GuardianInfo struct {
		GuardianFirstName    string `json:"guardian_first_name" validate:"required"`
		GuardianMiddleName   string `json:"guardian_middle_name"`
		GuardianLastName     string `json:"guardian_last_name" validate:"required"`
		GuardianExtension    string `json:"guardian_extension"`
		GuardianRelationship string `json:"guardian_relationship" validate:"required"`
		GuardianNumber       string `json:"guardian_number" validate:"required,ph_mobile"`
	}

	Step3AccountSetup struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8,max=32"`
	}

	// Form is the union of all step schemas, re-validated on submission.
	Form struct {
		Step1StudentInfo
		Step2GuardianInfo
		Step3AccountSetup
	}
)

func (s *Step1StudentInfo) clean() {
	s.FirstName = core.CleanString(s.FirstName)
	s.MiddleName = core.CleanString(s.MiddleName)
	s.LastName = core.CleanString(s.LastName)
	s.Extension = core.CleanString(s.Extension)
	s.Sex = core.CleanString(s.Sex, true /* lower */)
	s.Gender = core.CleanString(s.Gender)
	s.Birthday = core.CleanString(s.Birthday)
	s.LRN = core.CleanString(s.LRN)
	s.InterestingFact = core.CleanString(s.InterestingFact)
}

func (s *Step1StudentInfo) Validate() error {
	s.clean()
	return core.Validate.Struct(s)
}

func (s *Step2GuardianInfo) clean() {
	s.GuardianFirstName = core.CleanString(s.GuardianFirstName)
	s.GuardianMiddleName = core.CleanString(s.GuardianMiddleName)
	s.GuardianLastName = core.CleanString(s.GuardianLastName)
	s.GuardianExtension = core.CleanString(s.GuardianExtension)
	s.GuardianRelationship = core.CleanString(s.GuardianRelationship)
	s.GuardianNumber = core.CleanString(s.GuardianNumber)
}

func (s *Step2GuardianInfo) Validate() error {
	s.clean()
	return core.Validate.Struct(s)
}

func (s *Step3AccountSetup) clean() {
	s.Email = core.CleanString(s.Email, true /* lower */)
}

func (s *Step3AccountSetup) Validate() error {
	s.clean()
	return core.Validate.Struct(s)
}

// Validate re-validates the union of all step schemas.
func (f *Form) Validate() error {
	f.Step1StudentInfo.clean()
	f.Step2GuardianInfo.clean()
	f.Step3AccountSetup.clean()
	return core.Validate.Struct(f)
}
