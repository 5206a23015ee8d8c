package registration

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/prperemyshlev/seller-portal/internal/apiclient"
	"github.com/prperemyshlev/seller-portal/internal/domain"
)

// Step is a position in the registration flow
type Step int

const (
	StepAccount Step = iota + 1
	StepProfile
	StepBusinessDetails
	StepSubmitted
)

func (s Step) String() string {
	switch s {
	case StepAccount:
		return "account"
	case StepProfile:
		return "profile"
	case StepBusinessDetails:
		return "business_details"
	case StepSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

var (
	ErrStepInvalid      = errors.New("current step has invalid fields")
	ErrCannotGoBack     = errors.New("cannot go back from this step")
	ErrNotReadyToSubmit = errors.New("registration can only be submitted from the business details step")
	ErrAlreadySubmitted = errors.New("registration already submitted")
)

// Wizard holds form state across the three registration steps.
// Data survives moving back and forth; only a successful submission ends the flow.
type Wizard struct {
	Data            CompleteRegistrationData
	ConfirmPassword string

	pipeline *Pipeline
	step     Step
	errors   FieldErrors
}

// NewWizard starts a registration at the account step
func NewWizard(pipeline *Pipeline) *Wizard {
	return &Wizard{pipeline: pipeline, step: StepAccount, errors: FieldErrors{}}
}

// Step returns the current step
func (w *Wizard) Step() Step {
	return w.step
}

// Errors returns the field errors from the last transition or submission
func (w *Wizard) Errors() FieldErrors {
	return w.errors
}

// Next validates the current step and advances on success
func (w *Wizard) Next() error {
	var errs FieldErrors
	switch w.step {
	case StepAccount:
		errs = ValidateAccount(w.Data, w.ConfirmPassword)
	case StepProfile:
		errs = ValidateProfile(w.Data)
	case StepBusinessDetails:
		return ErrNotReadyToSubmit
	default:
		return ErrAlreadySubmitted
	}

	w.errors = errs
	if errs.Any() {
		return ErrStepInvalid
	}
	w.step++
	return nil
}

// Back returns to the previous step, keeping everything entered so far
func (w *Wizard) Back() error {
	switch w.step {
	case StepProfile, StepBusinessDetails:
		w.step--
		w.errors = FieldErrors{}
		return nil
	default:
		return ErrCannotGoBack
	}
}

// Submit sends the registration from the business details step.
// On failure the wizard stays on that step with the returned field errors attached.
func (w *Wizard) Submit(ctx context.Context) (*apiclient.Envelope, error) {
	switch w.step {
	case StepBusinessDetails:
	case StepSubmitted:
		return nil, ErrAlreadySubmitted
	default:
		return nil, ErrNotReadyToSubmit
	}

	if errs := ValidateBusinessDetails(w.Data); errs.Any() {
		w.errors = errs
		return nil, ErrStepInvalid
	}

	env, err := w.pipeline.Submit(ctx, w.Data)
	if err != nil {
		var regErr *RegistrationError
		if errors.As(err, &regErr) {
			w.errors = regErr.FieldErrors
		}
		return nil, err
	}

	w.errors = FieldErrors{}
	w.step = StepSubmitted
	return env, nil
}

// SelectCategory sets the business category from a server-provided list
func (w *Wizard) SelectCategory(categories []domain.Category, choice string) bool {
	id, ok := ResolveCategory(categories, choice)
	if ok {
		w.Data.BusinessCategory = id
	}
	return ok
}

// ResolveCategory finds a category by case-insensitive name or by numeric id
func ResolveCategory(categories []domain.Category, choice string) (int, bool) {
	choice = strings.TrimSpace(choice)
	if choice == "" {
		return 0, false
	}

	id, numErr := strconv.Atoi(choice)
	for _, c := range categories {
		if strings.EqualFold(c.Name, choice) || (numErr == nil && c.ID == id) {
			return c.ID, true
		}
	}
	return 0, false
}
