package dto

// ProvisionInterviewsRequest represents the request to provision interviews
// for a program phase. CompanyID and CreatedBy are populated from the
// authenticated context, never from the request body.
type ProvisionInterviewsRequest struct {
	ProgramID     uint   `json:"program_id" validate:"required"`
	PhaseID       uint   `json:"phase_id" validate:"required"`
	InterviewType string `json:"interview_type" validate:"required,oneof=onsite presite"`
	IsPublic      bool   `json:"is_public"`
	RoleIDs       []uint `json:"role_ids" validate:"required,min=1,dive,required"`
	ContactIDs    []uint `json:"contact_ids" validate:"omitempty,dive,required"`

	CompanyID uint `json:"-"`
	CreatedBy uint `json:"-"`
}

// ProvisionedInterviewDTO describes one committed interview aggregate
type ProvisionedInterviewDTO struct {
	ID         uint   `json:"id"`
	UUID       string `json:"uuid"`
	Name       string `json:"name"`
	ContactID  *uint  `json:"contact_id,omitempty"`
	AccessCode string `json:"access_code,omitempty"`
	IsPublic   bool   `json:"is_public"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
}

// ProvisionInterviewsResponse represents the outcome of a provisioning
// request. It never partially reflects a failed aggregate.
type ProvisionInterviewsResponse struct {
	Message              string                    `json:"message"`
	InterviewsCreated    int                       `json:"interviews_created"`
	Interviews           []ProvisionedInterviewDTO `json:"interviews"`
	RoleReductionApplied bool                      `json:"role_reduction_applied,omitempty"`
}
