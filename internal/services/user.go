package services

import (
	"context"
	"errors"
	"net/http"

	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/accounts"
	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

type UserService interface {
	Me(ctx context.Context) (*domain.User, error)
	// ListCompanyUsers backs the assignee picker for dispatchers.
	ListCompanyUsers(ctx context.Context) ([]*domain.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo accounts.UserRepo
}

func NewUserService(db *gorm.DB, baseLog *logger.Logger, userRepo accounts.UserRepo) UserService {
	return &userService{
		db:       db,
		log:      baseLog.With("service", "UserService"),
		userRepo: userRepo,
	}
}

func (s *userService) Me(ctx context.Context) (*domain.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}

	user, err := s.userRepo.GetByID(dbctx.Context{Ctx: ctx}, rd.UserID)
	if err != nil {
		if errors.Is(err, pkgerrors.ErrNotFound) {
			return nil, apierr.New(http.StatusNotFound, "USER_NOT_FOUND", err)
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ListCompanyUsers(ctx context.Context) ([]*domain.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, apierr.New(http.StatusUnauthorized, "UNAUTHENTICATED", pkgerrors.ErrForbidden)
	}
	if !rd.CanManage() {
		return nil, apierr.New(http.StatusForbidden, "MANAGER_ONLY", pkgerrors.ErrForbidden)
	}
	return s.userRepo.GetByCompanyID(dbctx.Context{Ctx: ctx}, rd.CompanyID)
}
