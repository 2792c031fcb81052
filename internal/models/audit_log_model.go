package models

import "time"

// Audit actions recorded for mutating operations.
const (
	AuditUserRegister  = "USER_REGISTER"
	AuditCarCreate     = "CAR_CREATE"
	AuditCarUpdate     = "CAR_UPDATE"
	AuditCarDelete     = "CAR_DELETE"
	AuditBookingCreate = "BOOKING_CREATE"
	AuditBookingCancel = "BOOKING_CANCEL"
)

// AuditLog represents an audit trail event.
type AuditLog struct {
	ID         string                 `json:"id" firestore:"-"`
	Timestamp  time.Time              `json:"timestamp" firestore:"timestamp"`
	UserEmail  string                 `json:"userEmail" firestore:"userEmail"` // Who performed the action
	Action     string                 `json:"action" firestore:"action"`
	TargetType string                 `json:"targetType,omitempty" firestore:"targetType,omitempty"` // e.g., "USER", "CAR", "BOOKING"
	TargetID   string                 `json:"targetId,omitempty" firestore:"targetId,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" firestore:"details,omitempty"`
}
