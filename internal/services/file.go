package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/checklist"
	checklistrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/checklist"
	inspectionrepos "github.com/fieldcheck/fieldcheck-backend/internal/data/repos/inspections"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/gcp"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

// signedURLTTL bounds how long a download link stays valid.
const signedURLTTL = time.Hour

// FileWithURL pairs a stored attachment with a short-lived download link.
type FileWithURL struct {
	*domain.InspectionFile
	URL string `json:"url,omitempty"`
}

type FileService interface {
	Upload(ctx context.Context, inspectionID uuid.UUID, checklistItemID *uuid.UUID, fileName, contentType string, size int64, body io.Reader) (*FileWithURL, error)
	List(ctx context.Context, inspectionID uuid.UUID) ([]*FileWithURL, error)
	Delete(ctx context.Context, inspectionID, fileID uuid.UUID) error
}

type fileService struct {
	db             *gorm.DB
	log            *logger.Logger
	fileRepo       checklistrepos.FileRepo
	inspectionRepo inspectionrepos.InspectionRepo
	bucket         gcp.BucketService
}

func NewFileService(
	db *gorm.DB,
	baseLog *logger.Logger,
	fileRepo checklistrepos.FileRepo,
	inspectionRepo inspectionrepos.InspectionRepo,
	bucket gcp.BucketService,
) FileService {
	return &fileService{
		db:             db,
		log:            baseLog.With("service", "FileService"),
		fileRepo:       fileRepo,
		inspectionRepo: inspectionRepo,
		bucket:         bucket,
	}
}

func (s *fileService) Upload(ctx context.Context, inspectionID uuid.UUID, checklistItemID *uuid.UUID, fileName, contentType string, size int64, body io.Reader) (*FileWithURL, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	inspection, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return nil, err
	}
	if !checklist.CanEdit(inspection, rd.UserID, rd.Role) {
		return nil, apierr.New(http.StatusForbidden, "INSPECTION_LOCKED", pkgerrors.ErrForbidden)
	}

	key := storageKey(rd.CompanyID, inspection.ID, checklistItemID, fileName)
	if err := s.bucket.UploadFile(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("upload attachment: %w", err)
	}

	record := &domain.InspectionFile{
		CompanyID:       rd.CompanyID,
		InspectionID:    inspection.ID,
		ChecklistItemID: checklistItemID,
		StoragePath:     key,
		FileName:        fileName,
		FileSize:        size,
		MimeType:        contentType,
		UploadedBy:      rd.UserID,
	}
	created, err := s.fileRepo.Create(dbctx.Context{Ctx: ctx}, record)
	if err != nil {
		// The object is already in the bucket; take it back out so the
		// failed upload leaves nothing behind.
		if delErr := s.bucket.DeleteFile(ctx, key); delErr != nil {
			s.log.Warn("Failed to remove orphaned object after metadata insert failed", "key", key, "error", delErr)
		}
		return nil, err
	}

	s.log.Info("Uploaded attachment", "inspection_id", inspection.ID, "file_id", created.ID, "size", size)
	return s.withURL(created), nil
}

func (s *fileService) List(ctx context.Context, inspectionID uuid.UUID) ([]*FileWithURL, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	if _, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID); err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return nil, err
	}

	files, err := s.fileRepo.GetByInspectionID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
	if err != nil {
		return nil, err
	}

	out := make([]*FileWithURL, 0, len(files))
	for _, f := range files {
		out = append(out, s.withURL(f))
	}
	return out, nil
}

func (s *fileService) Delete(ctx context.Context, inspectionID, fileID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	inspection, err := s.inspectionRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, inspectionID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return apierr.New(http.StatusNotFound, "INSPECTION_NOT_FOUND", err)
		}
		return err
	}
	if !checklist.CanEdit(inspection, rd.UserID, rd.Role) {
		return apierr.New(http.StatusForbidden, "INSPECTION_LOCKED", pkgerrors.ErrForbidden)
	}

	file, err := s.fileRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, fileID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return apierr.New(http.StatusNotFound, "FILE_NOT_FOUND", err)
		}
		return err
	}
	if file.InspectionID != inspection.ID {
		return apierr.New(http.StatusNotFound, "FILE_NOT_FOUND", pkgerrors.ErrNotFound)
	}

	if err := s.fileRepo.DeleteByID(dbctx.Context{Ctx: ctx}, rd.CompanyID, fileID); err != nil {
		return err
	}
	// The row is gone; the object is now unreachable either way, so a
	// failed bucket delete only costs storage.
	if err := s.bucket.DeleteFile(ctx, file.StoragePath); err != nil {
		s.log.Warn("Failed to delete object for removed attachment", "key", file.StoragePath, "error", err)
	}
	return nil
}

func (s *fileService) withURL(f *domain.InspectionFile) *FileWithURL {
	out := &FileWithURL{InspectionFile: f}
	url, err := s.bucket.SignedURL(f.StoragePath, signedURLTTL)
	if err != nil {
		s.log.Warn("Failed to sign attachment url", "key", f.StoragePath, "error", err)
		return out
	}
	out.URL = url
	return out
}

func storageKey(companyID, inspectionID uuid.UUID, checklistItemID *uuid.UUID, fileName string) string {
	segment := "general"
	if checklistItemID != nil {
		segment = checklistItemID.String()
	}
	ext := strings.ToLower(path.Ext(fileName))
	if ext == "" {
		ext = ".bin"
	}
	return fmt.Sprintf("inspections/%s/%s/%s/%d%s", companyID, inspectionID, segment, time.Now().UnixMilli(), ext)
}
