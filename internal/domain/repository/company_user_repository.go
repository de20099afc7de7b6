package repository

import (
	"context"

	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para User (credenciales).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}

// CompanyUserRepository puerto de persistencia para membresías.
type CompanyUserRepository interface {
	Create(ctx context.Context, cu *entity.CompanyUser) error
	GetByID(ctx context.Context, id string) (*entity.CompanyUser, error)
	// FindActiveByUser resuelve la membresía activa única del usuario, con su
	// empresa y plan en una sola consulta. Cero filas → domain.ErrNoMembership;
	// más de una → domain.ErrAmbiguousMembership (nunca se elige una al azar).
	FindActiveByUser(ctx context.Context, userID string) (*entity.Membership, error)
	// CountActiveByCompany cuenta membresías con is_active=true del tenant
	// (el numerador del techo max_users).
	CountActiveByCompany(ctx context.Context, companyID string) (int, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.CompanyUser, error)
	// Deactivate baja lógica de la membresía (is_active=false), nunca DELETE.
	Deactivate(ctx context.Context, id string) error
	Update(ctx context.Context, cu *entity.CompanyUser) error
}
