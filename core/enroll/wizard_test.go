package enroll

import "testing"

func validStep1() Step1StudentInfo {
	return Step1StudentInfo{
		FirstName: "Juan",
		LastName:  "Dela Cruz",
		Sex:       "Male",
		Birthday:  "2012-03-04",
		LRN:       "123456789012",
	}
}

func validStep2() Step2GuardianInfo {
	return Step2GuardianInfo{
		GuardianFirstName:    "Maria",
		GuardianLastName:     "Dela Cruz",
		GuardianRelationship: "Mother",
		GuardianNumber:       "09171234567",
	}
}

func validStep3() Step3AccountSetup {
	return Step3AccountSetup{
		Email:    "juan@test.cd",
		Password: "tr0ub4dor&3",
	}
}

func TestWizard_Advance(t *testing.T) {
	t.Run("wrong data type", func(t *testing.T) {
		w := NewWizard()
		if err := w.Advance("lol"); err != ErrWrongStep {
			t.Errorf("Advance() error = %v, wantErr %v", err, ErrWrongStep)
		}
	})

	t.Run("invalid data does not advance", func(t *testing.T) {
		w := NewWizard()
		data := validStep1()
		data.LastName = ""
		if err := w.Advance(data); err == nil {
			t.Error("Advance() expected a validation error")
		}
		if w.Step() != StepStudentInfo {
			t.Errorf("Step() = %d, want %d", w.Step(), StepStudentInfo)
		}
	})

	t.Run("non-digit LRN does not advance", func(t *testing.T) {
		w := NewWizard()
		data := validStep1()
		data.LRN = "12345678901x"
		if err := w.Advance(data); err == nil {
			t.Error("Advance() expected a validation error")
		}
	})

	t.Run("data for another step", func(t *testing.T) {
		w := NewWizard()
		if err := w.Advance(validStep3()); err != ErrWrongStep {
			t.Errorf("Advance() error = %v, wantErr %v", err, ErrWrongStep)
		}
	})

	t.Run("valid data advances", func(t *testing.T) {
		w := NewWizard()
		if err := w.Advance(validStep1()); err != nil {
			t.Fatalf("Advance() error = %v", err)
		}
		if w.Step() != StepGuardianInfo {
			t.Errorf("Step() = %d, want %d", w.Step(), StepGuardianInfo)
		}
	})
}

func TestWizard_Back(t *testing.T) {
	w := NewWizard()

	// no-op on the first step
	w.Back()
	if w.Step() != StepStudentInfo {
		t.Errorf("Step() = %d, want %d", w.Step(), StepStudentInfo)
	}

	if err := w.Advance(validStep1()); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	w.Back()
	if w.Step() != StepStudentInfo {
		t.Errorf("Step() = %d, want %d", w.Step(), StepStudentInfo)
	}

	// entered values survive going back
	if got := w.Form().FirstName; got != "Juan" {
		t.Errorf("Form().FirstName = %q, want %q", got, "Juan")
	}

	// and the step can be redone with corrected data
	data := validStep1()
	data.FirstName = "Juana"
	if err := w.Advance(data); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if got := w.Form().FirstName; got != "Juana" {
		t.Errorf("Form().FirstName = %q, want %q", got, "Juana")
	}
}

func TestWizard_Submit(t *testing.T) {
	w := NewWizard()

	if _, err := w.Submit(); err != ErrNotConfirming {
		t.Errorf("Submit() error = %v, wantErr %v", err, ErrNotConfirming)
	}

	if err := w.Advance(validStep1()); err != nil {
		t.Fatalf("Advance(step1) error = %v", err)
	}
	if _, err := w.Submit(); err != ErrNotConfirming {
		t.Errorf("Submit() error = %v, wantErr %v", err, ErrNotConfirming)
	}
	if err := w.Advance(validStep2()); err != nil {
		t.Fatalf("Advance(step2) error = %v", err)
	}
	if err := w.Advance(validStep3()); err != nil {
		t.Fatalf("Advance(step3) error = %v", err)
	}
	if w.Step() != StepConfirmation {
		t.Fatalf("Step() = %d, want %d", w.Step(), StepConfirmation)
	}

	form, err := w.Submit()
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if form.LRN != "123456789012" {
		t.Errorf("form.LRN = %q, want %q", form.LRN, "123456789012")
	}
	if form.GuardianNumber != "09171234567" {
		t.Errorf("form.GuardianNumber = %q, want %q", form.GuardianNumber, "09171234567")
	}
	if form.Email != "juan@test.cd" {
		t.Errorf("form.Email = %q, want %q", form.Email, "juan@test.cd")
	}
}

func TestWizard_Submit_unionRevalidated(t *testing.T) {
	w := NewWizard()
	if err := w.Advance(validStep1()); err != nil {
		t.Fatalf("Advance(step1) error = %v", err)
	}
	if err := w.Advance(validStep2()); err != nil {
		t.Fatalf("Advance(step2) error = %v", err)
	}
	// a password similar to the student's name passes step 3 alone but
	// fails the union check
	step3 := validStep3()
	step3.Password = "juandelacruz"
	if err := w.Advance(step3); err != nil {
		t.Fatalf("Advance(step3) error = %v", err)
	}
	if _, err := w.Submit(); err == nil {
		t.Error("Submit() expected a validation error")
	}
}
