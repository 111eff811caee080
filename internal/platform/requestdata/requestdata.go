package requestdata

import (
	"context"

	"github.com/google/uuid"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

type requestDataKeyType struct{}

var requestDataKey = requestDataKeyType{}

// RequestData is the caller identity resolved once per request by the auth
// middleware: who is calling, their company, and their role. Every core
// operation receives it explicitly; tenant scoping is never ambient.
type RequestData struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	Role      domain.Role
}

func (rd *RequestData) IsAdmin() bool {
	return rd != nil && rd.Role == domain.RoleAdmin
}

func (rd *RequestData) IsDispatcher() bool {
	return rd != nil && rd.Role == domain.RoleDispatcher
}

// CanManage reports whether the caller holds a role allowed to manage
// inspections company-wide (admin or dispatcher).
func (rd *RequestData) CanManage() bool {
	return rd.IsAdmin() || rd.IsDispatcher()
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if rd, ok := ctx.Value(requestDataKey).(*RequestData); ok {
		return rd
	}
	return nil
}
