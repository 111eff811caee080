package services

import (
	"net/http"
	"testing"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/testutil"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

func TestLeadLifecycle(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.SeedCompany(t, env.db)
	dispatcher := testutil.SeedUser(t, env.db, company.ID, domain.RoleDispatcher)
	worker := testutil.SeedUser(t, env.db, company.ID, domain.RoleWorker)

	ctx := ctxAs(dispatcher)

	created, err := env.lead.Create(ctx, CreateLeadInput{Name: "Acme Cleaning Prospect", Email: "sales@acme.example"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.Status != domain.LeadStatusNew {
		t.Fatalf("expected status new, got %s", created.Status)
	}

	if _, err := env.lead.Create(ctxAs(worker), CreateLeadInput{Name: "nope"}); err == nil {
		t.Fatal("worker must not create leads")
	} else if apiStatus(t, err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiStatus(t, err))
	}

	leads, err := env.lead.List(ctxAs(worker))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(leads) != 1 {
		t.Fatalf("expected 1 lead, got %d", len(leads))
	}

	got, err := env.lead.Get(ctxAs(worker), created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != created.ID {
		t.Fatal("wrong lead returned")
	}

	if err := env.lead.Delete(ctxAs(worker), created.ID); err == nil {
		t.Fatal("worker must not delete leads")
	}
	if err := env.lead.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := env.lead.Get(ctx, created.ID); err == nil {
		t.Fatal("expected not found after delete")
	} else if apiStatus(t, err) != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", apiStatus(t, err))
	}
}

func TestLeadScopedByCompany(t *testing.T) {
	env := newTestEnv(t)
	company := testutil.SeedCompany(t, env.db)
	otherCompany := testutil.SeedCompany(t, env.db)
	dispatcher := testutil.SeedUser(t, env.db, company.ID, domain.RoleDispatcher)
	outsider := testutil.SeedUser(t, env.db, otherCompany.ID, domain.RoleAdmin)

	created, err := env.lead.Create(ctxAs(dispatcher), CreateLeadInput{Name: "Local Prospect"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := env.lead.Get(ctxAs(outsider), created.ID); err == nil {
		t.Fatal("other company must not see the lead")
	}
	leads, err := env.lead.List(ctxAs(outsider))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(leads) != 0 {
		t.Fatalf("expected empty list, got %d", len(leads))
	}
}
