package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fieldcheck/fieldcheck-backend/internal/data/repos/accounts"
	pkgerrors "github.com/fieldcheck/fieldcheck-backend/internal/pkg/errors"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/apierr"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/dbctx"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/logger"
	"github.com/fieldcheck/fieldcheck-backend/internal/platform/requestdata"
)

// AuthService turns a bearer token into request identity. Tokens are
// issued by the identity provider; only the subject claim is trusted and
// the role and company always come from the app_users profile.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     accounts.UserRepo
	jwtSecretKey string
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo accounts.UserRepo, jwtSecretKey string) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
	}
}

func (s *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(s.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return ctx, apierr.New(http.StatusUnauthorized, "INVALID_TOKEN", fmt.Errorf("parse token: %w", err))
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx, apierr.New(http.StatusUnauthorized, "INVALID_TOKEN", fmt.Errorf("unexpected claims type"))
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return ctx, apierr.New(http.StatusUnauthorized, "INVALID_TOKEN", fmt.Errorf("token has no subject"))
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "INVALID_TOKEN", fmt.Errorf("subject is not a uuid: %w", err))
	}

	user, err := s.userRepo.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return ctx, apierr.New(http.StatusUnauthorized, "UNKNOWN_USER", pkgerrors.ErrForbidden)
	}

	rd := &requestdata.RequestData{
		UserID:    user.ID,
		CompanyID: user.CompanyID,
		Role:      user.Role,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
