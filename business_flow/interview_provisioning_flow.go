// Package businessflow contains the core business logic and use cases for interview provisioning workflows
package businessflow

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/attestix/attestix/app/dto"
	"github.com/attestix/attestix/config"
	"github.com/attestix/attestix/models"
	"github.com/attestix/attestix/repository"
	"github.com/attestix/attestix/utils"
	"github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// InterviewProvisioningFlow handles the interview provisioning business logic
type InterviewProvisioningFlow interface {
	ProvisionInterviews(ctx context.Context, req *dto.ProvisionInterviewsRequest, metadata *ClientMetadata) (*dto.ProvisionInterviewsResponse, error)
}

// InterviewProvisioningFlowImpl implements the interview provisioning flow.
// For public requests it fans out one saga run per contact, sequentially:
// each run is independently compensable, a failed run aborts the remaining
// batch, and runs committed before the failure are kept. Non-public requests
// produce exactly one group interview.
type InterviewProvisioningFlowImpl struct {
	programRepo   repository.ProgramRepository
	interviewRepo repository.InterviewRepository
	auditRepo     repository.AuditLogRepository
	resolver      *QuestionnaireStructureResolver
}

// NewInterviewProvisioningFlow creates a new interview provisioning flow instance
func NewInterviewProvisioningFlow(
	programRepo repository.ProgramRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	interviewRepo repository.InterviewRepository,
	auditRepo repository.AuditLogRepository,
	cacheConfig *config.CacheConfig,
	rc *redis.Client,
) InterviewProvisioningFlow {
	return &InterviewProvisioningFlowImpl{
		programRepo:   programRepo,
		interviewRepo: interviewRepo,
		auditRepo:     auditRepo,
		resolver:      NewQuestionnaireStructureResolver(questionnaireRepo, cacheConfig, rc),
	}
}

// ProvisionInterviews validates the request, resolves the questionnaire
// structure and materializes one or more interview aggregates. All validation
// runs before any write; a validation failure therefore never needs
// compensation.
func (s *InterviewProvisioningFlowImpl) ProvisionInterviews(ctx context.Context, req *dto.ProvisionInterviewsRequest, metadata *ClientMetadata) (*dto.ProvisionInterviewsResponse, error) {
	s.auditStarted(ctx, req, metadata)

	questionnaireID, err := s.validateProvisionRequest(ctx, req)
	if err != nil {
		return nil, s.fail(ctx, req, "INTERVIEW_PROVISIONING_VALIDATION_FAILED", "Interview provisioning validation failed", err, metadata)
	}

	questionIDs, err := s.resolver.Resolve(ctx, questionnaireID)
	if err != nil {
		if IsEmptyQuestionnaire(err) {
			return nil, s.fail(ctx, req, "EMPTY_QUESTIONNAIRE", "Questionnaire has no questions", err, metadata)
		}
		return nil, s.fail(ctx, req, "QUESTIONNAIRE_RESOLUTION_FAILED", "Failed to resolve questionnaire structure", err, metadata)
	}

	interviewType := models.InterviewType(req.InterviewType)

	var created []models.Interview
	roleReduced := false

	if req.IsPublic {
		// One individual interview per contact, in sequence. Committed
		// aggregates are not rolled back when a later contact fails.
		for _, contactID := range req.ContactIDs {
			result, err := s.runSaga(ctx, req, interviewType, questionnaireID, questionIDs, utils.ToPtr(contactID), metadata)
			if err != nil {
				batchErr := &BatchMemberError{
					ContactID:         contactID,
					InterviewsCreated: len(created),
					Err:               err,
				}
				return nil, s.fail(ctx, req, "INTERVIEW_BATCH_MEMBER_FAILED", "Interview provisioning aborted mid-batch", batchErr, metadata)
			}
			created = append(created, *result.Interview)
			if result.RoleReduced {
				roleReduced = true
				s.auditRoleReduction(ctx, req, result, metadata)
			}
		}
	} else {
		result, err := s.runSaga(ctx, req, interviewType, questionnaireID, questionIDs, nil, metadata)
		if err != nil {
			return nil, s.fail(ctx, req, "INTERVIEW_CREATION_FAILED", "Interview creation failed", err, metadata)
		}
		created = append(created, *result.Interview)
	}

	s.auditSuccess(ctx, req, len(created), metadata)

	resp := &dto.ProvisionInterviewsResponse{
		Message:              fmt.Sprintf("%d interview(s) created successfully", len(created)),
		InterviewsCreated:    len(created),
		RoleReductionApplied: roleReduced,
	}
	for _, interview := range created {
		resp.Interviews = append(resp.Interviews, ToProvisionedInterviewDTO(interview))
	}

	return resp, nil
}

// validateProvisionRequest enforces the provisioning preconditions in order,
// fail-fast, without side effects. Checks that need no storage run before any
// lookup.
func (s *InterviewProvisioningFlowImpl) validateProvisionRequest(ctx context.Context, req *dto.ProvisionInterviewsRequest) (uint, error) {
	if len(req.RoleIDs) == 0 {
		return 0, ErrNoRolesSelected
	}
	if req.IsPublic && len(req.ContactIDs) == 0 {
		return 0, ErrNoContactsForPublicInterview
	}

	interviewType := models.InterviewType(req.InterviewType)
	if !interviewType.Valid() {
		return 0, ErrInvalidInterviewType
	}

	program, err := s.programRepo.ByID(ctx, req.ProgramID)
	if err != nil {
		return 0, err
	}
	if program == nil || program.CompanyID != req.CompanyID {
		return 0, ErrProgramNotFound
	}

	phase, err := s.programRepo.PhaseByID(ctx, req.ProgramID, req.PhaseID)
	if err != nil {
		return 0, err
	}
	if phase == nil {
		return 0, ErrPhaseNotFound
	}

	questionnaireID := program.QuestionnaireIDForType(interviewType)
	if questionnaireID == nil {
		return 0, ErrMissingQuestionnaireConfig
	}

	return *questionnaireID, nil
}

func (s *InterviewProvisioningFlowImpl) runSaga(
	ctx context.Context,
	req *dto.ProvisionInterviewsRequest,
	interviewType models.InterviewType,
	questionnaireID uint,
	questionIDs []uint,
	contactID *uint,
	metadata *ClientMetadata,
) (*interviewSagaResult, error) {
	saga := newInterviewSaga(s.interviewRepo, interviewSagaInput{
		CompanyID:       req.CompanyID,
		CreatedBy:       req.CreatedBy,
		ProgramID:       req.ProgramID,
		PhaseID:         req.PhaseID,
		QuestionnaireID: questionnaireID,
		InterviewType:   interviewType,
		IsPublic:        req.IsPublic,
		ContactID:       contactID,
		RoleIDs:         req.RoleIDs,
		QuestionIDs:     questionIDs,
	})

	result, err := saga.Execute(ctx)
	if err != nil && saga.compensated() {
		s.auditCompensation(ctx, req, saga, err, metadata)
	}

	return result, err
}

// fail wraps the error, records the failure metric and writes a best-effort
// audit row
func (s *InterviewProvisioningFlowImpl) fail(ctx context.Context, req *dto.ProvisionInterviewsRequest, code, message string, err error, metadata *ClientMetadata) error {
	provisioningFailuresTotal.With(map[string]string{"code": code}).Inc()

	errMsg := err.Error()
	s.createAuditLog(ctx, req, models.AuditActionInterviewProvisioningFailed, message, false, &errMsg, metadata)

	return NewBusinessError(code, message, err)
}

func (s *InterviewProvisioningFlowImpl) auditStarted(ctx context.Context, req *dto.ProvisionInterviewsRequest, metadata *ClientMetadata) {
	msg := fmt.Sprintf("Provisioning requested for program %d phase %d", req.ProgramID, req.PhaseID)
	s.createAuditLog(ctx, req, models.AuditActionInterviewProvisioningStarted, msg, true, nil, metadata)
}

// auditCompensation records the unwinding of one partially created aggregate.
// It runs on a context detached from the caller's cancellation for the same
// reason compensation itself does.
func (s *InterviewProvisioningFlowImpl) auditCompensation(ctx context.Context, req *dto.ProvisionInterviewsRequest, saga *interviewSaga, stepErr error, metadata *ClientMetadata) {
	msg := fmt.Sprintf("Interview %d removed after step %s failed, %d step(s) compensated",
		saga.interviewID(), saga.failedStep, saga.stepsCompensated)
	errMsg := stepErr.Error()
	s.createAuditLog(context.WithoutCancel(ctx), req, models.AuditActionInterviewAggregateCompensated, msg, false, &errMsg, metadata)
}

func (s *InterviewProvisioningFlowImpl) auditSuccess(ctx context.Context, req *dto.ProvisionInterviewsRequest, count int, metadata *ClientMetadata) {
	msg := fmt.Sprintf("Provisioned %d interview(s) for program %d phase %d", count, req.ProgramID, req.PhaseID)
	s.createAuditLog(ctx, req, models.AuditActionInterviewProvisioningCompleted, msg, true, nil, metadata)
}

func (s *InterviewProvisioningFlowImpl) auditRoleReduction(ctx context.Context, req *dto.ProvisionInterviewsRequest, result *interviewSagaResult, metadata *ClientMetadata) {
	msg := fmt.Sprintf("Role selection reduced to role %d for public individual interview %d",
		result.EffectiveRoleIDs[0], result.Interview.ID)
	s.createAuditLog(ctx, req, models.AuditActionRoleReductionApplied, msg, true, nil, metadata)
}

// createAuditLog writes an audit row best-effort; audit failures never affect
// the provisioning outcome
func (s *InterviewProvisioningFlowImpl) createAuditLog(ctx context.Context, req *dto.ProvisionInterviewsRequest, action, description string, success bool, errMsg *string, metadata *ClientMetadata) {
	if s.auditRepo == nil {
		return
	}

	roleIDs := make(pq.Int64Array, 0, len(req.RoleIDs))
	for _, id := range req.RoleIDs {
		roleIDs = append(roleIDs, int64(id))
	}

	meta := map[string]any{
		"program_id":     req.ProgramID,
		"phase_id":       req.PhaseID,
		"interview_type": req.InterviewType,
		"is_public":      req.IsPublic,
		"contact_ids":    req.ContactIDs,
	}
	metaBytes, _ := json.Marshal(meta)

	auditLog := &models.AuditLog{
		CompanyID:    utils.ToPtr(req.CompanyID),
		ActorID:      utils.ToPtr(req.CreatedBy),
		Action:       action,
		Description:  &description,
		RoleIDs:      roleIDs,
		Metadata:     metaBytes,
		Success:      utils.ToPtr(success),
		ErrorMessage: errMsg,
		CreatedAt:    utils.UTCNow(),
	}

	if metadata != nil {
		if metadata.IPAddress != "" {
			auditLog.IPAddress = utils.ToPtr(metadata.IPAddress)
		}
		if metadata.UserAgent != "" {
			auditLog.UserAgent = utils.ToPtr(metadata.UserAgent)
		}
		if metadata.RequestID != "" {
			auditLog.RequestID = utils.ToPtr(metadata.RequestID)
		}
	}

	_ = s.auditRepo.Save(ctx, auditLog)
}
