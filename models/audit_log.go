// Package models contains domain entities and business models for the compliance assessment platform
package models

import (
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// AuditLog records provisioning activity for a company. RoleIDs captures the
// role selection of the originating request as submitted, before any
// role-reduction policy is applied.
type AuditLog struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	CompanyID    *uint           `gorm:"index:idx_audit_company_id" json:"company_id,omitempty"`
	Company      *Company        `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	ActorID      *uint           `gorm:"index:idx_audit_actor_id" json:"actor_id,omitempty"`
	Action       string          `gorm:"type:audit_action_enum;not null;index:idx_audit_action" json:"action"`
	Description  *string         `gorm:"type:text" json:"description,omitempty"`
	RoleIDs      pq.Int64Array   `gorm:"type:bigint[]" json:"role_ids,omitempty"`
	IPAddress    *string         `gorm:"type:inet;index:idx_audit_ip_address" json:"ip_address,omitempty"`
	UserAgent    *string         `gorm:"type:text" json:"user_agent,omitempty"`
	RequestID    *string         `gorm:"size:255;index:idx_audit_request_id" json:"request_id,omitempty"`
	Metadata     json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
	Success      *bool           `gorm:"default:true;index:idx_audit_success" json:"success"`
	ErrorMessage *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time       `gorm:"default:CURRENT_TIMESTAMP;index:idx_audit_created_at" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_log"
}

// Audit action constants
const (
	AuditActionInterviewProvisioningStarted   = "interview_provisioning_started"
	AuditActionInterviewProvisioningCompleted = "interview_provisioning_completed"
	AuditActionInterviewProvisioningFailed    = "interview_provisioning_failed"
	AuditActionInterviewAggregateCompensated  = "interview_aggregate_compensated"
	AuditActionRoleReductionApplied           = "role_reduction_applied"
)

// AuditLogFilter represents filter criteria for audit log queries
type AuditLogFilter struct {
	ID            *uint
	CompanyID     *uint
	ActorID       *uint
	Action        *string
	Success       *bool
	RequestID     *string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
}

func (a *AuditLog) IsFailed() bool {
	return a.Success != nil && !*a.Success
}
