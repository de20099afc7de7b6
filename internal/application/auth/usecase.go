package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
	"github.com/tradelink-ng/edibridge-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TrialConfig parámetros del trial creado en el registro.
type TrialConfig struct {
	DurationDays int
}

// RegistrationTxRunner ejecuta el registro completo en una transacción:
// usuario + empresa + membresía ADMIN se persisten juntos o ninguno. No deben
// quedar empresas huérfanas si la membresía falla.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		companyRepo repository.CompanyRepository,
		cuRepo repository.CompanyUserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	cuRepo   repository.CompanyUserRepository
	planRepo repository.SubscriptionPlanRepository
	txRunner RegistrationTxRunner
	jwtCfg   JWTConfig
	trialCfg TrialConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	cuRepo repository.CompanyUserRepository,
	planRepo repository.SubscriptionPlanRepository,
	txRunner RegistrationTxRunner,
	jwtCfg JWTConfig,
	trialCfg TrialConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo: userRepo,
		cuRepo:   cuRepo,
		planRepo: planRepo,
		txRunner: txRunner,
		jwtCfg:   jwtCfg,
		trialCfg: trialCfg,
	}
}

// Register crea usuario + empresa en TRIAL + membresía ADMIN, todo en una
// transacción. Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if in.User.Email == "" || in.User.Password == "" || in.Company.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.User.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	trialPlan, err := uc.planRepo.GetByName(ctx, entity.PlanTrial)
	if err != nil {
		return nil, err
	}
	if trialPlan == nil {
		return nil, domain.ErrNotFound // catálogo de planes sin sembrar
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.User.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	trialEnd := now.AddDate(0, 0, uc.trialCfg.DurationDays)

	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.User.Email,
		PasswordHash: string(hash),
		FirstName:    in.User.FirstName,
		LastName:     in.User.LastName,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.Company.Name,
		TaxID:              in.Company.TaxID,
		Address:            in.Company.Address,
		Phone:              in.Company.Phone,
		Email:              in.Company.Email,
		SubscriptionPlanID: trialPlan.ID,
		SubscriptionStatus: entity.SubscriptionTrial,
		SubscriptionStart:  &now,
		SubscriptionEnd:    &trialEnd,
		IsActive:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	membership := &entity.CompanyUser{
		ID:          uuid.New().String(),
		CompanyID:   company.ID,
		UserID:      user.ID,
		Role:        entity.RoleAdmin,
		Permissions: entity.AdminPermissions(),
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = uc.txRunner.RunRegistration(ctx, func(
		userRepo repository.UserRepository,
		companyRepo repository.CompanyRepository,
		cuRepo repository.CompanyUserRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := companyRepo.Create(ctx, company); err != nil {
			return err
		}
		return cuRepo.Create(ctx, membership)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, company.ID, membership.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message: "registro completado; trial de " + company.Name + " activo",
		User:    *toUserResponse(user),
		Company: dto.CompanySummary{
			ID:                 company.ID,
			Name:               company.Name,
			SubscriptionStatus: company.SubscriptionStatus,
			TrialEnds:          company.SubscriptionEnd,
		},
		Token: token,
	}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
// CompanyID y Role en el token son solo una pista: el gate re-resuelve la
// membresía en cada request.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrForbidden
	}

	companyID, role := "", ""
	m, err := uc.cuRepo.FindActiveByUser(ctx, user.ID)
	switch {
	case err == nil:
		companyID, role = m.Company.ID, m.CompanyUser.Role
	case errors.Is(err, domain.ErrNoMembership):
		// un usuario sin membresía puede autenticarse; solo accede a rutas exentas
	default:
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, companyID, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

// Profile devuelve el perfil del usuario con su membresía si la tiene.
// No exige membresía: es una de las rutas exentas del gate de tenant.
func (uc *AuthUseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	out := &dto.ProfileResponse{User: *toUserResponse(user)}

	m, err := uc.cuRepo.FindActiveByUser(ctx, userID)
	switch {
	case err == nil:
		out.CompanyID = m.Company.ID
		out.CompanyName = m.Company.Name
		out.Role = m.CompanyUser.Role
		out.Permissions = permissionsToMap(m.CompanyUser.Permissions)
	case errors.Is(err, domain.ErrNoMembership):
		// perfil sin empresa: campos de membresía vacíos
	default:
		return nil, err
	}
	return out, nil
}

// UpdateProfile actualiza los campos editables del perfil.
func (uc *AuthUseCase) UpdateProfile(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return uc.Profile(ctx, userID)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

func permissionsToMap(ps entity.PermissionSet) map[string]bool {
	if len(ps) == 0 {
		return nil
	}
	out := make(map[string]bool, len(ps))
	for p, v := range ps {
		out[string(p)] = v
	}
	return out
}
