// Package businessflow contains the core business logic and use cases for interview provisioning workflows
package businessflow

import (
	"errors"
	"fmt"
)

// Business flow error constants
var (
	// Validation errors, raised before any write
	ErrNoRolesSelected              = errors.New("at least one role must be selected")
	ErrNoContactsForPublicInterview = errors.New("at least one contact is required for public interviews")
	ErrMissingQuestionnaireConfig   = errors.New("no questionnaire is configured on the program for the requested interview type")
	ErrEmptyQuestionnaire           = errors.New("questionnaire resolves to zero questions")

	// Lookup errors
	ErrProgramNotFound = errors.New("program not found")
	ErrPhaseNotFound   = errors.New("program phase not found")
	ErrContactNotFound = errors.New("contact not found")

	// Misc
	ErrInvalidInterviewType = errors.New("invalid interview type")
)

type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BatchMemberError reports the failure of one batch member during public
// fan-out. Interviews created for earlier contacts are committed and remain
// valid; InterviewsCreated counts them so callers can retry at member
// granularity.
type BatchMemberError struct {
	ContactID         uint
	InterviewsCreated int
	Err               error
}

func (e *BatchMemberError) Error() string {
	return fmt.Sprintf("provisioning aborted at contact %d after %d interviews: %v", e.ContactID, e.InterviewsCreated, e.Err)
}

func (e *BatchMemberError) Unwrap() error {
	return e.Err
}

func IsNoRolesSelected(err error) bool {
	return errors.Is(err, ErrNoRolesSelected)
}

func IsNoContactsForPublicInterview(err error) bool {
	return errors.Is(err, ErrNoContactsForPublicInterview)
}

func IsMissingQuestionnaireConfig(err error) bool {
	return errors.Is(err, ErrMissingQuestionnaireConfig)
}

func IsEmptyQuestionnaire(err error) bool {
	return errors.Is(err, ErrEmptyQuestionnaire)
}

func IsProgramNotFound(err error) bool {
	return errors.Is(err, ErrProgramNotFound)
}

func IsPhaseNotFound(err error) bool {
	return errors.Is(err, ErrPhaseNotFound)
}

func IsContactNotFound(err error) bool {
	return errors.Is(err, ErrContactNotFound)
}

func IsInvalidInterviewType(err error) bool {
	return errors.Is(err, ErrInvalidInterviewType)
}

// AsBatchMemberError extracts a BatchMemberError from an error chain
func AsBatchMemberError(err error) (*BatchMemberError, bool) {
	var be *BatchMemberError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
