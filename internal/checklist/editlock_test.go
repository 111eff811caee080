package checklist

import (
	"testing"

	"github.com/google/uuid"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

func TestCanEdit(t *testing.T) {
	worker := uuid.New()
	other := uuid.New()

	cases := []struct {
		name   string
		status domain.InspectionStatus
		user   uuid.UUID
		role   domain.Role
		want   bool
	}{
		{"assignee open", domain.InspectionStatusOpen, worker, domain.RoleWorker, true},
		{"assignee in progress", domain.InspectionStatusInProgress, worker, domain.RoleWorker, true},
		{"assignee submitted", domain.InspectionStatusSubmitted, worker, domain.RoleWorker, false},
		{"assignee reviewed", domain.InspectionStatusReviewed, worker, domain.RoleWorker, false},
		{"other worker open", domain.InspectionStatusOpen, other, domain.RoleWorker, false},
		{"admin submitted", domain.InspectionStatusSubmitted, other, domain.RoleAdmin, true},
		{"dispatcher reviewed", domain.InspectionStatusReviewed, other, domain.RoleDispatcher, true},
	}

	for _, tc := range cases {
		insp := &domain.Inspection{Status: tc.status, AssignedTo: worker}
		if got := CanEdit(insp, tc.user, tc.role); got != tc.want {
			t.Errorf("%s: CanEdit = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanSubmit(t *testing.T) {
	worker := uuid.New()
	other := uuid.New()

	cases := []struct {
		name   string
		status domain.InspectionStatus
		user   uuid.UUID
		role   domain.Role
		want   bool
	}{
		{"assignee open", domain.InspectionStatusOpen, worker, domain.RoleWorker, true},
		{"assignee in progress", domain.InspectionStatusInProgress, worker, domain.RoleWorker, true},
		{"other worker", domain.InspectionStatusInProgress, other, domain.RoleWorker, false},
		{"dispatcher not assignee", domain.InspectionStatusInProgress, other, domain.RoleDispatcher, true},
		{"admin after submit", domain.InspectionStatusSubmitted, other, domain.RoleAdmin, false},
		{"assignee after submit", domain.InspectionStatusSubmitted, worker, domain.RoleWorker, false},
	}

	for _, tc := range cases {
		insp := &domain.Inspection{Status: tc.status, AssignedTo: worker}
		if got := CanSubmit(insp, tc.user, tc.role); got != tc.want {
			t.Errorf("%s: CanSubmit = %v, want %v", tc.name, got, tc.want)
		}
	}
}
