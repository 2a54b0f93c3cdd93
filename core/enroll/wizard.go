package enroll

import "github.com/pkg/errors"

// Wizard steps, in order.
const (
	StepStudentInfo = iota + 1
	StepGuardianInfo
	StepAccountSetup
	StepConfirmation
)

var (
	ErrWrongStep     = errors.New("submitted data does not match the current step")
	ErrNotConfirming = errors.New("enrollment has remaining steps")
)

// Wizard accumulates enrollment form state across steps. It mirrors the
// state a client holds between calls to the per-step validation endpoint:
// the HTTP flow is stateless and revalidates each step's payload, while a
// Wizard tracks the same progression in-process for clients embedding the
// enrollment flow directly. Advancing requires the current step's schema to
// validate; going back preserves previously entered values. It is not safe
// for concurrent use.
type Wizard struct {
	step int
	form Form
}

func NewWizard() *Wizard {
	return &Wizard{step: StepStudentInfo}
}

func (w *Wizard) Step() int { return w.step }

// Form returns a copy of the accumulated state.
func (w *Wizard) Form() Form { return w.form }

// Advance validates data against the current step's schema and, on success,
// merges it into the accumulated form and moves to the next step.
// Validation failures leave the wizard where it was.
func (w *Wizard) Advance(data interface{}) error {
	switch d := data.(type) {
	case Step1StudentInfo:
		if w.step != StepStudentInfo {
			return ErrWrongStep
		}
		if err := d.Validate(); err != nil {
			return err
		}
		w.form.Step1StudentInfo = d
	case Step2GuardianInfo:
		if w.step != StepGuardianInfo {
			return ErrWrongStep
		}
		if err := d.Validate(); err != nil {
			return err
		}
		w.form.Step2GuardianInfo = d
	case Step3AccountSetup:
		if w.step != StepAccountSetup {
			return ErrWrongStep
		}
		if err := d.Validate(); err != nil {
			return err
		}
		w.form.Step3AccountSetup = d
	default:
		return ErrWrongStep
	}
	w.step++
	return nil
}

// Back moves to the previous step; entered values are preserved.
func (w *Wizard) Back() {
	if w.step > StepStudentInfo {
		w.step--
	}
}

// Submit re-validates the union of all step schemas and returns the final
// form. Only valid at the confirmation step.
func (w *Wizard) Submit() (Form, error) {
	if w.step != StepConfirmation {
		return Form{}, ErrNotConfirming
	}
	if err := w.form.Validate(); err != nil {
		return Form{}, err
	}
	return w.form, nil
}
