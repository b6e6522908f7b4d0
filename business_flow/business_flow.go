// Package businessflow contains the business logic for the application.
package businessflow

import (
	"time"

	"github.com/attestix/attestix/app/dto"
	"github.com/attestix/attestix/models"
)

const RequestIDKey = "X-Request-ID"

// ClientMetadata holds all client-related information for audit logging
type ClientMetadata struct {
	IPAddress  string            `json:"ip_address"`
	UserAgent  string            `json:"user_agent"`
	RequestID  string            `json:"request_id,omitempty"`
	Additional map[string]string `json:"additional,omitempty"`
}

// NewClientMetadata creates a new ClientMetadata instance with basic information
func NewClientMetadata(ipAddress, userAgent string) *ClientMetadata {
	return &ClientMetadata{
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
		Additional: make(map[string]string),
	}
}

// AddAdditional adds additional custom information to the metadata
func (cm *ClientMetadata) AddAdditional(key, value string) {
	if cm.Additional == nil {
		cm.Additional = make(map[string]string)
	}
	cm.Additional[key] = value
}

// SetRequestID sets the request ID
func (cm *ClientMetadata) SetRequestID(requestID string) {
	cm.RequestID = requestID
}

// ToProvisionedInterviewDTO converts a created interview to its response DTO
func ToProvisionedInterviewDTO(interview models.Interview) dto.ProvisionedInterviewDTO {
	d := dto.ProvisionedInterviewDTO{
		ID:        interview.ID,
		UUID:      interview.UUID.String(),
		Name:      interview.Name,
		ContactID: interview.ContactID,
		IsPublic:  interview.IsPublic,
		Status:    string(interview.Status),
		CreatedAt: interview.CreatedAt.Format(time.RFC3339),
	}
	if interview.AccessCode != nil {
		d.AccessCode = *interview.AccessCode
	}

	return d
}
