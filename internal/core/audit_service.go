package core

import (
	"context"
	"errors"
	"log"
	"time"

	"rentwheels-backend-go/internal/db"
	"rentwheels-backend-go/internal/models"
)

// auditService implements the AuditService interface.
type auditService struct {
	auditRepo db.AuditRepository
}

// NewAuditService creates a new AuditService instance.
func NewAuditService(auditRepo db.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// CreateAuditLog persists an audit entry, stamping the time when the caller
// left it zero.
func (s *auditService) CreateAuditLog(ctx context.Context, logEntry models.AuditLog) error {
	if s.auditRepo == nil {
		return errors.New("AuditRepository not initialized in AuditService")
	}
	if logEntry.Timestamp.IsZero() {
		logEntry.Timestamp = time.Now().UTC()
	}
	return s.auditRepo.Create(ctx, logEntry)
}

// recordAudit is the shared best-effort helper used by the mutating
// services: an audit failure is logged and never fails the main operation.
func recordAudit(ctx context.Context, audit AuditService, entry models.AuditLog) {
	if audit == nil {
		return
	}
	if err := audit.CreateAuditLog(ctx, entry); err != nil {
		log.Printf("Warning: failed to create audit log for %s (target: %s): %v", entry.Action, entry.TargetID, err)
	}
}
