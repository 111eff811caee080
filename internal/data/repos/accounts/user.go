package accounts

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
)

type UserRepo interface {
	GetByID(dbc dbctx.Context, userID uuid.UUID) (*domain.User, error)
	GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) GetByID(dbc dbctx.Context, userID uuid.UUID) (*domain.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var user domain.User
	if err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", userID).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByCompanyID(dbc dbctx.Context, companyID uuid.UUID) ([]*domain.User, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var users []*domain.User
	if err := transaction.WithContext(dbc.Ctx).
		Where("company_id = ?", companyID).
		Order("full_name ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
