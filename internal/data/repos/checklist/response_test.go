package checklist

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/testutil"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
)

func TestResponseRepoUpsertIdempotent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	company := testutil.SeedCompany(t, tx)
	worker := testutil.SeedUser(t, tx, company.ID, domain.RoleWorker)
	version := testutil.SeedTemplateVersion(t, tx, company.ID)
	inspection := testutil.SeedInspection(t, tx, company.ID, worker.ID, &version.ID)

	repo := NewResponseRepo(db, log)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	item := version.Items[0]
	write := func(value string) {
		err := repo.Upsert(dbc, []*domain.InspectionResponse{{
			CompanyID:       company.ID,
			InspectionID:    inspection.ID,
			ChecklistItemID: item.ID,
			Value:           datatypes.JSON([]byte(value)),
		}})
		if err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
	}

	write(`4`)
	write(`2`)

	responses, err := repo.GetByInspectionID(dbc, company.ID, inspection.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 row after replay, got %d", len(responses))
	}
	if string(responses[0].Value) != `2` {
		t.Fatalf("expected latest value 2, got %s", responses[0].Value)
	}
}

func TestResponseRepoDeleteByItemIDs(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	company := testutil.SeedCompany(t, tx)
	worker := testutil.SeedUser(t, tx, company.ID, domain.RoleWorker)
	version := testutil.SeedTemplateVersion(t, tx, company.ID)
	inspection := testutil.SeedInspection(t, tx, company.ID, worker.ID, &version.ID)

	repo := NewResponseRepo(db, log)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	var batch []*domain.InspectionResponse
	for _, item := range version.Items[:2] {
		batch = append(batch, &domain.InspectionResponse{
			CompanyID:       company.ID,
			InspectionID:    inspection.ID,
			ChecklistItemID: item.ID,
			Value:           datatypes.JSON([]byte(`3`)),
		})
	}
	if err := repo.Upsert(dbc, batch); err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	if err := repo.DeleteByItemIDs(dbc, company.ID, inspection.ID, []uuid.UUID{version.Items[0].ID}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	responses, err := repo.GetByInspectionID(dbc, company.ID, inspection.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 remaining row, got %d", len(responses))
	}
	if responses[0].ChecklistItemID != version.Items[1].ID {
		t.Fatal("wrong row survived the delete")
	}
}

func TestResponseRepoScopedByCompany(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	log := testutil.Logger(t)

	company := testutil.SeedCompany(t, tx)
	otherCompany := testutil.SeedCompany(t, tx)
	worker := testutil.SeedUser(t, tx, company.ID, domain.RoleWorker)
	version := testutil.SeedTemplateVersion(t, tx, company.ID)
	inspection := testutil.SeedInspection(t, tx, company.ID, worker.ID, &version.ID)

	repo := NewResponseRepo(db, log)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	err := repo.Upsert(dbc, []*domain.InspectionResponse{{
		CompanyID:       company.ID,
		InspectionID:    inspection.ID,
		ChecklistItemID: version.Items[0].ID,
		Value:           datatypes.JSON([]byte(`5`)),
	}})
	if err != nil {
		t.Fatalf("upsert failed: %v", err)
	}

	responses, err := repo.GetByInspectionID(dbc, otherCompany.ID, inspection.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(responses) != 0 {
		t.Fatalf("another company must not see the rows, got %d", len(responses))
	}
}
