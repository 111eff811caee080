package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/testutil"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
)

// fakeBucket records operations instead of talking to object storage.
type fakeBucket struct {
	objects map[string][]byte
	deleted []string
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string][]byte)}
}

func (b *fakeBucket) UploadFile(_ context.Context, key string, _ string, file io.Reader) error {
	data, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	b.objects[key] = data
	return nil
}

func (b *fakeBucket) DeleteFile(_ context.Context, key string) error {
	delete(b.objects, key)
	b.deleted = append(b.deleted, key)
	return nil
}

func (b *fakeBucket) SignedURL(key string, _ time.Duration) (string, error) {
	return "https://signed.example.com/" + key, nil
}

// failingFileRepo wraps the real repo and fails Create, to exercise the
// compensation path.
type failingFileRepo struct {
	checklistrepos.FileRepo
}

func (f *failingFileRepo) Create(dbctx.Context, *domain.InspectionFile) (*domain.InspectionFile, error) {
	return nil, fmt.Errorf("insert failed")
}

func fileTestFixtures(t *testing.T, env *testEnv) (*domain.User, *domain.Inspection) {
	t.Helper()
	company := testutil.SeedCompany(t, env.db)
	worker := testutil.SeedUser(t, env.db, company.ID, domain.RoleWorker)
	version := testutil.SeedTemplateVersion(t, env.db, company.ID)
	inspection := testutil.SeedInspection(t, env.db, company.ID, worker.ID, &version.ID)
	return worker, inspection
}

func TestFileUploadAndList(t *testing.T) {
	env := newTestEnv(t)
	worker, inspection := fileTestFixtures(t, env)

	bucket := newFakeBucket()
	log := testutil.Logger(t)
	svc := NewFileService(env.db, log, env.fileRepo, env.inspectionRepo, bucket)

	workerCtx := ctxAs(worker)
	body := strings.NewReader("jpeg bytes")

	uploaded, err := svc.Upload(workerCtx, inspection.ID, nil, "hallway.jpg", "image/jpeg", 10, body)
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if uploaded.URL == "" {
		t.Fatal("expected signed url on upload response")
	}
	if !strings.Contains(uploaded.StoragePath, inspection.ID.String()) {
		t.Fatalf("storage path should scope to the inspection, got %s", uploaded.StoragePath)
	}
	if !strings.Contains(uploaded.StoragePath, "/general/") {
		t.Fatalf("item-less upload should land under general, got %s", uploaded.StoragePath)
	}
	if _, ok := bucket.objects[uploaded.StoragePath]; !ok {
		t.Fatal("object missing from bucket")
	}

	files, err := svc.List(workerCtx, inspection.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].URL == "" {
		t.Fatal("expected signed url on listing")
	}
}

func TestFileUploadScopedToItem(t *testing.T) {
	env := newTestEnv(t)
	worker, inspection := fileTestFixtures(t, env)

	bucket := newFakeBucket()
	svc := NewFileService(env.db, testutil.Logger(t), env.fileRepo, env.inspectionRepo, bucket)

	itemID := uuid.New()
	uploaded, err := svc.Upload(ctxAs(worker), inspection.ID, &itemID, "floor.png", "image/png", 4, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if !strings.Contains(uploaded.StoragePath, itemID.String()) {
		t.Fatalf("item upload should embed the item id, got %s", uploaded.StoragePath)
	}
	if uploaded.ChecklistItemID == nil || *uploaded.ChecklistItemID != itemID {
		t.Fatal("item id should be recorded on the row")
	}
}

func TestFileUploadCompensatesOnInsertFailure(t *testing.T) {
	env := newTestEnv(t)
	worker, inspection := fileTestFixtures(t, env)

	bucket := newFakeBucket()
	svc := NewFileService(env.db, testutil.Logger(t), &failingFileRepo{env.fileRepo}, env.inspectionRepo, bucket)

	_, err := svc.Upload(ctxAs(worker), inspection.ID, nil, "broken.jpg", "image/jpeg", 5, strings.NewReader("bytes"))
	if err == nil {
		t.Fatal("expected upload to fail")
	}
	if len(bucket.deleted) != 1 {
		t.Fatalf("expected the uploaded object to be removed, deletions: %v", bucket.deleted)
	}
	if len(bucket.objects) != 0 {
		t.Fatal("bucket should hold no orphaned objects")
	}
}

func TestFileDeleteRemovesRowAndObject(t *testing.T) {
	env := newTestEnv(t)
	worker, inspection := fileTestFixtures(t, env)

	bucket := newFakeBucket()
	svc := NewFileService(env.db, testutil.Logger(t), env.fileRepo, env.inspectionRepo, bucket)

	workerCtx := ctxAs(worker)
	uploaded, err := svc.Upload(workerCtx, inspection.ID, nil, "x.jpg", "image/jpeg", 1, strings.NewReader("x"))
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if err := svc.Delete(workerCtx, inspection.ID, uploaded.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if len(bucket.objects) != 0 {
		t.Fatal("object should be gone after delete")
	}

	files, err := svc.List(workerCtx, inspection.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(files) != 0 {
		t.Fatalf("expected no files, got %d", len(files))
	}
}

func TestFileUploadLockedAfterSubmit(t *testing.T) {
	env := newTestEnv(t)
	worker, inspection := fileTestFixtures(t, env)

	env.db.Model(&domain.Inspection{}).Where("id = ?", inspection.ID).
		Update("status", domain.InspectionStatusSubmitted)

	bucket := newFakeBucket()
	svc := NewFileService(env.db, testutil.Logger(t), env.fileRepo, env.inspectionRepo, bucket)

	_, err := svc.Upload(ctxAs(worker), inspection.ID, nil, "late.jpg", "image/jpeg", 1, strings.NewReader("x"))
	if err == nil {
		t.Fatal("expected upload to be locked")
	}
	if apiStatus(t, err) != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", apiStatus(t, err))
	}
	if len(bucket.objects) != 0 {
		t.Fatal("nothing should be uploaded when locked")
	}
}
