package checklist

import (
	"github.com/google/uuid"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

// CanEdit is the edit-lock policy governing response and file writes.
// Admins and dispatchers may edit any inspection in their company at any
// status. Workers may edit only inspections assigned to them, and only
// while the status is open or in_progress.
func CanEdit(insp *domain.Inspection, userID uuid.UUID, role domain.Role) bool {
	if role == domain.RoleAdmin || role == domain.RoleDispatcher {
		return true
	}
	if insp.AssignedTo != userID {
		return false
	}
	return insp.Status.Editable()
}

// CanSubmit gates the submit operation: the status must still be editable,
// and the caller must be the assigned worker or an admin/dispatcher.
func CanSubmit(insp *domain.Inspection, userID uuid.UUID, role domain.Role) bool {
	if !insp.Status.Editable() {
		return false
	}
	return insp.AssignedTo == userID || role == domain.RoleAdmin || role == domain.RoleDispatcher
}
