package services

import (
	"net/http"
	"testing"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/testutil"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

func TestInitDefaultTemplate(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.SeedCompany(t, env.db)
	admin := testutil.SeedUser(t, env.db, company.ID, domain.RoleAdmin)
	worker := testutil.SeedUser(t, env.db, company.ID, domain.RoleWorker)

	if _, err := env.template.InitDefault(ctxAs(worker)); err == nil {
		t.Fatal("worker must not seed the checklist")
	} else if apiStatus(t, err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiStatus(t, err))
	}

	version, err := env.template.InitDefault(ctxAs(admin))
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if len(version.Items) == 0 {
		t.Fatal("seeded version has no items")
	}
	if !version.IsActive {
		t.Fatal("seeded version should be active")
	}

	var hasReason bool
	for _, it := range version.Items {
		if it.ItemKey == "deviation_reason" {
			hasReason = true
		}
	}
	if !hasReason {
		t.Fatal("seeded checklist misses deviation_reason")
	}

	if _, err := env.template.InitDefault(ctxAs(admin)); err == nil {
		t.Fatal("second init must conflict")
	} else if apiStatus(t, err) != http.StatusConflict {
		t.Fatalf("expected 409, got %d", apiStatus(t, err))
	}
}

func TestGetActiveVersionReflectsSeed(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.SeedCompany(t, env.db)
	admin := testutil.SeedUser(t, env.db, company.ID, domain.RoleAdmin)

	if _, err := env.template.GetActiveVersion(ctxAs(admin)); err == nil {
		t.Fatal("expected not found before seeding")
	} else if apiStatus(t, err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", apiStatus(t, err))
	}

	seeded, err := env.template.InitDefault(ctxAs(admin))
	if err != nil {
		t.Fatalf("init failed: %v", err)
	}

	active, err := env.template.GetActiveVersion(ctxAs(admin))
	if err != nil {
		t.Fatalf("get active failed: %v", err)
	}
	if active.ID != seeded.ID {
		t.Fatal("active version should be the seeded one")
	}
}
