// Package handlers contains HTTP request handlers and presentation layer logic for the API endpoints
package handlers

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/attestix/attestix/app/dto"
	"github.com/attestix/attestix/app/services"
	businessflow "github.com/attestix/attestix/business_flow"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

// InterviewHandlerInterface defines the contract for interview handlers
type InterviewHandlerInterface interface {
	ProvisionInterviews(c fiber.Ctx) error
}

// InterviewHandler handles interview-related HTTP requests
type InterviewHandler struct {
	provisioningFlow businessflow.InterviewProvisioningFlow
	notifier         services.NotificationService
	validator        *validator.Validate
}

// NewInterviewHandler creates a new interview handler
func NewInterviewHandler(provisioningFlow businessflow.InterviewProvisioningFlow, notifier services.NotificationService) *InterviewHandler {
	return &InterviewHandler{
		provisioningFlow: provisioningFlow,
		notifier:         notifier,
		validator:        validator.New(),
	}
}

func (h *InterviewHandler) ErrorResponse(c fiber.Ctx, statusCode int, message, errorCode string, details any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: false,
		Message: message,
		Error: &dto.ErrorDetail{
			Code:    errorCode,
			Details: details,
		},
	})
}

func (h *InterviewHandler) SuccessResponse(c fiber.Ctx, statusCode int, message string, data any) error {
	return c.Status(statusCode).JSON(dto.APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ProvisionInterviews handles the interview provisioning process
// @Summary Provision Interviews
// @Description Create interview aggregates for a program phase from a questionnaire and a target population
// @Tags Interviews
// @Accept json
// @Produce json
// @Param programId path int true "Program ID"
// @Param phaseId path int true "Phase ID"
// @Param request body dto.ProvisionInterviewsRequest true "Provisioning parameters"
// @Success 201 {object} dto.APIResponse{data=dto.ProvisionInterviewsResponse} "Interviews created successfully"
// @Failure 400 {object} dto.APIResponse "Validation error or invalid request"
// @Failure 404 {object} dto.APIResponse "Program or phase not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /api/v1/programs/{programId}/phases/{phaseId}/interviews [post]
func (h *InterviewHandler) ProvisionInterviews(c fiber.Ctx) error {
	var req dto.ProvisionInterviewsRequest
	if err := c.Bind().JSON(&req); err != nil {
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", "INVALID_REQUEST", err.Error())
	}

	if programID, err := strconv.ParseUint(c.Params("programId"), 10, 64); err == nil {
		req.ProgramID = uint(programID)
	}
	if phaseID, err := strconv.ParseUint(c.Params("phaseId"), 10, 64); err == nil {
		req.PhaseID = uint(phaseID)
	}

	// Validate request
	if err := h.validator.Struct(&req); err != nil {
		var validationErrors []string
		for _, err := range err.(validator.ValidationErrors) {
			validationErrors = append(validationErrors, getValidationErrorMessage(err))
		}
		return h.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", "VALIDATION_ERROR", validationErrors)
	}

	// Get client information
	metadata := businessflow.NewClientMetadata(c.IP(), c.Get("User-Agent"))
	if requestID, ok := c.Locals("requestid").(string); ok {
		metadata.SetRequestID(requestID)
	}

	// Tenant and actor come from the authenticated context set by upstream
	// middleware, never from the body
	companyID, ok := c.Locals("company_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Company ID not found in context", "MISSING_COMPANY_ID", nil)
	}
	actorID, ok := c.Locals("actor_id").(uint)
	if !ok {
		return h.ErrorResponse(c, fiber.StatusUnauthorized, "Actor ID not found in context", "MISSING_ACTOR_ID", nil)
	}
	req.CompanyID = companyID
	req.CreatedBy = actorID

	ctx, cancel := h.createRequestContext(c)
	defer cancel()

	resp, err := h.provisioningFlow.ProvisionInterviews(ctx, &req, metadata)
	if err != nil {
		return h.mapProvisioningError(c, err)
	}

	// Invitation emails are a side channel triggered after a successful
	// result, never by the provisioning workflow itself
	h.sendInvitations(ctx, resp)

	return h.SuccessResponse(c, fiber.StatusCreated, resp.Message, resp)
}

// createRequestContext builds the context a flow call runs under. Batch
// fan-out can take a while, so the timeout is generous.
func (h *InterviewHandler) createRequestContext(c fiber.Ctx) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	ctx = context.WithValue(ctx, businessflow.RequestIDKey, c.Get("X-Request-ID"))
	return ctx, cancel
}

// mapProvisioningError translates business flow errors to HTTP responses
func (h *InterviewHandler) mapProvisioningError(c fiber.Ctx, err error) error {
	var code string
	if be, ok := err.(*businessflow.BusinessError); ok {
		code = be.Code
	}

	switch {
	case businessflow.IsNoRolesSelected(err),
		businessflow.IsNoContactsForPublicInterview(err),
		businessflow.IsEmptyQuestionnaire(err),
		businessflow.IsMissingQuestionnaireConfig(err),
		businessflow.IsInvalidInterviewType(err):
		return h.ErrorResponse(c, fiber.StatusBadRequest, err.Error(), code, nil)
	case businessflow.IsProgramNotFound(err), businessflow.IsPhaseNotFound(err):
		return h.ErrorResponse(c, fiber.StatusNotFound, err.Error(), code, nil)
	default:
		if batchErr, ok := businessflow.AsBatchMemberError(err); ok {
			return h.ErrorResponse(c, fiber.StatusInternalServerError, batchErr.Error(), code, fiber.Map{
				"failed_contact_id":  batchErr.ContactID,
				"interviews_created": batchErr.InterviewsCreated,
			})
		}
		return h.ErrorResponse(c, fiber.StatusInternalServerError, "Interview provisioning failed", code, nil)
	}
}

// sendInvitations emails access codes for public individual interviews,
// best-effort
func (h *InterviewHandler) sendInvitations(ctx context.Context, resp *dto.ProvisionInterviewsResponse) {
	if h.notifier == nil {
		return
	}

	for _, interview := range resp.Interviews {
		if !interview.IsPublic || interview.ContactID == nil || interview.AccessCode == "" {
			continue
		}
		if err := h.notifier.SendInterviewInvitation(ctx, *interview.ContactID, interview.Name, interview.AccessCode); err != nil {
			log.Printf("failed to send interview invitation for interview %d: %v", interview.ID, err)
		}
	}
}

// getValidationErrorMessage converts validator errors to human readable messages
func getValidationErrorMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "min":
		return fmt.Sprintf("%s must contain at least %s element(s)", err.Field(), err.Param())
	case "oneof":
		return err.Field() + " must be one of: " + err.Param()
	default:
		return err.Field() + " is invalid"
	}
}
