// Package businessflow contains the core business logic and use cases for interview provisioning workflows
package businessflow

import (
	"context"
	"fmt"
	"log"

	"github.com/attestix/attestix/models"
	"github.com/attestix/attestix/repository"
	"github.com/attestix/attestix/utils"
	"github.com/google/uuid"
)

// Saga step names, in execution order
const (
	sagaStepCreateHeader      = "create_header"
	sagaStepLinkRoles         = "link_roles"
	sagaStepCreateResponses   = "create_responses"
	sagaStepLinkResponseRoles = "link_response_roles"
)

// interviewSagaInput carries everything one saga run needs. QuestionIDs and
// RoleIDs must be non-empty on entry; ContactID is set only for public
// individual interviews.
type interviewSagaInput struct {
	CompanyID       uint
	CreatedBy       uint
	ProgramID       uint
	PhaseID         uint
	QuestionnaireID uint
	InterviewType   models.InterviewType
	IsPublic        bool
	ContactID       *uint
	RoleIDs         []uint
	QuestionIDs     []uint
}

// interviewSagaResult reports one committed aggregate
type interviewSagaResult struct {
	Interview        *models.Interview
	EffectiveRoleIDs []uint
	RoleReduced      bool
}

// sagaStep pairs a forward action with the compensation that undoes it. The
// uniform contract guarantees every step's failure path runs the same
// unwinding code instead of per-site cleanup.
type sagaStep struct {
	name       string
	run        func(ctx context.Context) error
	compensate func(ctx context.Context) error
}

// interviewSaga creates one interview aggregate (header, role links, response
// placeholders and, for public single-role interviews, response-role links)
// as an all-or-nothing unit over a store without multi-table transactions.
// Steps execute strictly in order; the first failure compensates every
// completed step in reverse order and surfaces the original error.
type interviewSaga struct {
	interviewRepo repository.InterviewRepository
	input         interviewSagaInput

	interview        *models.Interview
	responses        []*models.InterviewResponse
	effectiveRoleIDs []uint
	roleReduced      bool

	// Populated when a step failure triggered compensation
	failedStep       string
	stepsCompensated int
}

func newInterviewSaga(interviewRepo repository.InterviewRepository, input interviewSagaInput) *interviewSaga {
	return &interviewSaga{
		interviewRepo: interviewRepo,
		input:         input,
	}
}

// Execute runs the saga to completion. On failure the aggregate is removed
// from storage before the step error is returned; a secondary compensation
// failure is logged, never raised over the original error.
func (s *interviewSaga) Execute(ctx context.Context) (*interviewSagaResult, error) {
	if len(s.input.QuestionIDs) == 0 {
		return nil, ErrEmptyQuestionnaire
	}
	if len(s.input.RoleIDs) == 0 {
		return nil, ErrNoRolesSelected
	}

	s.applyRolePolicy()

	steps := []sagaStep{
		{
			name:       sagaStepCreateHeader,
			run:        s.createHeader,
			compensate: s.deleteHeader,
		},
		{
			name:       sagaStepLinkRoles,
			run:        s.linkRoles,
			compensate: s.deleteRoles,
		},
		{
			name:       sagaStepCreateResponses,
			run:        s.createResponses,
			compensate: s.deleteResponses,
		},
	}
	if s.linksResponseRoles() {
		steps = append(steps, sagaStep{
			name:       sagaStepLinkResponseRoles,
			run:        s.linkResponseRoles,
			compensate: s.deleteResponseRoles,
		})
	}

	for i, step := range steps {
		if err := step.run(ctx); err != nil {
			s.compensate(ctx, steps[:i], step.name)
			return nil, err
		}
	}

	// The aggregate's existence in storage is the commit; no status
	// transition is needed.
	interviewsProvisionedTotal.With(map[string]string{
		"interview_type": s.input.InterviewType.String(),
		"public":         boolLabel(s.input.IsPublic),
	}).Inc()

	return &interviewSagaResult{
		Interview:        s.interview,
		EffectiveRoleIDs: s.effectiveRoleIDs,
		RoleReduced:      s.roleReduced,
	}, nil
}

// applyRolePolicy reduces a public individual interview to its first role.
// Group and non-public interviews keep the full role set.
func (s *interviewSaga) applyRolePolicy() {
	s.effectiveRoleIDs = s.input.RoleIDs
	if s.input.IsPublic && s.input.ContactID != nil && len(s.input.RoleIDs) > 1 {
		s.effectiveRoleIDs = s.input.RoleIDs[:1]
		s.roleReduced = true
		log.Printf("public individual interview for contact %d reduced from %d roles to role %d",
			*s.input.ContactID, len(s.input.RoleIDs), s.effectiveRoleIDs[0])
	}
}

// linksResponseRoles reports whether the conditional fourth step runs:
// response-role links are pre-populated only for public interviews with
// exactly one effective role.
func (s *interviewSaga) linksResponseRoles() bool {
	return s.input.IsPublic && len(s.effectiveRoleIDs) == 1 && len(s.input.QuestionIDs) > 0
}

// Step 1: insert the interview header. A failure here has nothing to
// compensate.
func (s *interviewSaga) createHeader(ctx context.Context) error {
	var accessCode *string
	if s.input.IsPublic {
		code, err := utils.GenerateAccessCode()
		if err != nil {
			return err
		}
		accessCode = &code
	}

	interview := &models.Interview{
		UUID:            uuid.New(),
		Name:            interviewName(s.input.InterviewType, s.input.ContactID),
		ProgramID:       s.input.ProgramID,
		PhaseID:         s.input.PhaseID,
		QuestionnaireID: s.input.QuestionnaireID,
		ContactID:       s.input.ContactID,
		CompanyID:       s.input.CompanyID,
		InterviewType:   s.input.InterviewType,
		IsPublic:        s.input.IsPublic,
		Enabled:         utils.ToPtr(true),
		AccessCode:      accessCode,
		Status:          models.InterviewStatusPending,
		CreatedBy:       s.input.CreatedBy,
		CreatedAt:       utils.UTCNow(),
	}

	if err := s.interviewRepo.Save(ctx, interview); err != nil {
		return err
	}

	s.interview = interview
	return nil
}

// Step 2: link the effective roles as one batched write
func (s *interviewSaga) linkRoles(ctx context.Context) error {
	roles := make([]*models.InterviewRole, 0, len(s.effectiveRoleIDs))
	for _, roleID := range s.effectiveRoleIDs {
		roles = append(roles, &models.InterviewRole{
			InterviewID: s.interview.ID,
			RoleID:      roleID,
			CompanyID:   s.input.CompanyID,
			CreatedBy:   s.input.CreatedBy,
			CreatedAt:   utils.UTCNow(),
		})
	}

	return s.interviewRepo.SaveRoles(ctx, roles)
}

// Step 3: create one placeholder response per resolved question
func (s *interviewSaga) createResponses(ctx context.Context) error {
	responses := make([]*models.InterviewResponse, 0, len(s.input.QuestionIDs))
	for _, questionID := range s.input.QuestionIDs {
		responses = append(responses, &models.InterviewResponse{
			InterviewID:             s.interview.ID,
			QuestionnaireQuestionID: questionID,
			CompanyID:               s.input.CompanyID,
			IsApplicable:            utils.ToPtr(true),
			CreatedBy:               s.input.CreatedBy,
			CreatedAt:               utils.UTCNow(),
		})
	}

	if err := s.interviewRepo.SaveResponses(ctx, responses); err != nil {
		return err
	}

	s.responses = responses
	return nil
}

// Step 4 (conditional): pre-populate the answering role on every placeholder
func (s *interviewSaga) linkResponseRoles(ctx context.Context) error {
	roleID := s.effectiveRoleIDs[0]
	responseRoles := make([]*models.InterviewResponseRole, 0, len(s.responses))
	for _, response := range s.responses {
		responseRoles = append(responseRoles, &models.InterviewResponseRole{
			InterviewResponseID: response.ID,
			InterviewID:         s.interview.ID,
			RoleID:              roleID,
			CompanyID:           s.input.CompanyID,
			CreatedBy:           s.input.CreatedBy,
			CreatedAt:           utils.UTCNow(),
		})
	}

	return s.interviewRepo.SaveResponseRoles(ctx, responseRoles)
}

// compensate unwinds every completed step in reverse order. It runs on a
// context detached from the caller's cancellation so that an aborted request
// still cleans up after itself. Compensation errors are logged; the step
// error stays the one surfaced to the caller.
func (s *interviewSaga) compensate(ctx context.Context, completed []sagaStep, failedStep string) {
	s.failedStep = failedStep
	s.stepsCompensated = len(completed)
	provisioningCompensationsTotal.With(map[string]string{"failed_step": failedStep}).Inc()

	cleanupCtx := context.WithoutCancel(ctx)
	for i := len(completed) - 1; i >= 0; i-- {
		if completed[i].compensate == nil {
			continue
		}
		if err := completed[i].compensate(cleanupCtx); err != nil {
			log.Printf("compensation of step %s failed for interview %d: %v",
				completed[i].name, s.interviewID(), err)
		}
	}
}

func (s *interviewSaga) deleteHeader(ctx context.Context) error {
	return s.interviewRepo.DeleteByID(ctx, s.interview.ID)
}

func (s *interviewSaga) deleteRoles(ctx context.Context) error {
	return s.interviewRepo.DeleteRolesByInterviewID(ctx, s.interview.ID)
}

func (s *interviewSaga) deleteResponses(ctx context.Context) error {
	return s.interviewRepo.DeleteResponsesByInterviewID(ctx, s.interview.ID)
}

func (s *interviewSaga) deleteResponseRoles(ctx context.Context) error {
	return s.interviewRepo.DeleteResponseRolesByInterviewID(ctx, s.interview.ID)
}

// compensated reports whether a partially created aggregate was unwound. A
// header-step failure leaves nothing behind and does not count.
func (s *interviewSaga) compensated() bool {
	return s.stepsCompensated > 0
}

func (s *interviewSaga) interviewID() uint {
	if s.interview == nil {
		return 0
	}
	return s.interview.ID
}

// interviewName derives the advisory display name of an interview. Names are
// not unique keys.
func interviewName(interviewType models.InterviewType, contactID *uint) string {
	if contactID != nil {
		return fmt.Sprintf("%s Interview - Contact %d", interviewType, *contactID)
	}
	return fmt.Sprintf("%s Interview - Group", interviewType)
}
