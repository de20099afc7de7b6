package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// InviteTxRunner ejecuta el alta usuario+membresía dentro de una transacción:
// o se persisten ambas filas o ninguna.
type InviteTxRunner interface {
	RunInvite(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		cuRepo repository.CompanyUserRepository,
	) error) error
}

// MemberService gestión de membresías de la empresa: listar, invitar, desactivar.
type MemberService struct {
	userRepo repository.UserRepository
	cuRepo   repository.CompanyUserRepository
	txRunner InviteTxRunner
}

// NewMemberService construye el servicio de membresías.
func NewMemberService(userRepo repository.UserRepository, cuRepo repository.CompanyUserRepository, txRunner InviteTxRunner) *MemberService {
	return &MemberService{userRepo: userRepo, cuRepo: cuRepo, txRunner: txRunner}
}

// List pagina las membresías del tenant.
func (s *MemberService) List(ctx context.Context, m *entity.Membership, page dto.PageRequest) ([]*dto.MemberResponse, error) {
	page.DefaultPage()
	list, err := s.cuRepo.ListByCompany(ctx, m.Company.ID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.MemberResponse, 0, len(list))
	for _, cu := range list {
		out = append(out, toMemberResponse(cu))
	}
	return out, nil
}

// Invite crea usuario + membresía en una sola transacción. El techo max_users
// ya fue verificado por el gate; aquí solo se validan datos y unicidad.
func (s *MemberService) Invite(ctx context.Context, m *entity.Membership, in dto.InviteMemberRequest) (*dto.MemberResponse, error) {
	if in.Email == "" || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if role != entity.RoleAdmin && role != entity.RoleManager && role != entity.RoleUser && role != entity.RoleViewer {
		return nil, domain.ErrInvalidInput
	}
	perms := entity.PermissionSet{}
	for name, v := range in.Perms {
		p := entity.Permission(name)
		if !entity.KnownPermission(p) {
			return nil, domain.ErrInvalidInput
		}
		perms[p] = v
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	cu := &entity.CompanyUser{
		ID:          uuid.New().String(),
		CompanyID:   m.Company.ID,
		UserID:      user.ID,
		Role:        role,
		Permissions: perms,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = s.txRunner.RunInvite(ctx, func(userRepo repository.UserRepository, cuRepo repository.CompanyUserRepository) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		return cuRepo.Create(ctx, cu)
	})
	if err != nil {
		return nil, err
	}
	return toMemberResponse(cu), nil
}

// Deactivate baja lógica de una membresía del tenant. No permite que un
// usuario se desactive a sí mismo.
func (s *MemberService) Deactivate(ctx context.Context, m *entity.Membership, memberID string) error {
	cu, err := s.cuRepo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if cu == nil || cu.CompanyID != m.Company.ID {
		return domain.ErrNotFound
	}
	if cu.ID == m.CompanyUser.ID {
		return domain.ErrConflict
	}
	return s.cuRepo.Deactivate(ctx, memberID)
}

func toMemberResponse(cu *entity.CompanyUser) *dto.MemberResponse {
	perms := make(map[string]bool, len(cu.Permissions))
	for p, v := range cu.Permissions {
		perms[string(p)] = v
	}
	return &dto.MemberResponse{
		ID:          cu.ID,
		UserID:      cu.UserID,
		Role:        cu.Role,
		Permissions: perms,
		IsActive:    cu.IsActive,
		CreatedAt:   cu.CreatedAt,
	}
}
