package auth_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tradelink-ng/edibridge-api/internal/application/auth"
	"github.com/tradelink-ng/edibridge-api/internal/application/dto"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
	pkgjwt "github.com/tradelink-ng/edibridge-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserStore struct {
	byEmail map[string]*entity.User
	created []*entity.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*entity.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *entity.User) error {
	f.created = append(f.created, u)
	f.byEmail[u.Email] = u
	return nil
}
func (f *fakeUserStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return f.byEmail[email], nil
}
func (f *fakeUserStore) Update(_ context.Context, _ *entity.User) error { return nil }

type fakeCompanyStore struct {
	created []*entity.Company
}

func (f *fakeCompanyStore) Create(_ context.Context, c *entity.Company) error {
	f.created = append(f.created, c)
	return nil
}
func (f *fakeCompanyStore) GetByID(_ context.Context, _ string) (*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyStore) Update(_ context.Context, _ *entity.Company) error { return nil }
func (f *fakeCompanyStore) UpdateSubscription(_ context.Context, _ *entity.Company) error {
	return nil
}
func (f *fakeCompanyStore) List(_ context.Context, _, _ int) ([]*entity.Company, error) {
	return nil, nil
}
func (f *fakeCompanyStore) ListTrialsEndingOn(_ context.Context, _ string) ([]*entity.Company, error) {
	return nil, nil
}

type fakeMembershipStore struct {
	created    []*entity.CompanyUser
	membership *entity.Membership
	createErr  error
}

func (f *fakeMembershipStore) Create(_ context.Context, cu *entity.CompanyUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, cu)
	return nil
}
func (f *fakeMembershipStore) GetByID(_ context.Context, _ string) (*entity.CompanyUser, error) {
	return nil, nil
}
func (f *fakeMembershipStore) FindActiveByUser(_ context.Context, _ string) (*entity.Membership, error) {
	if f.membership == nil {
		return nil, domain.ErrNoMembership
	}
	return f.membership, nil
}
func (f *fakeMembershipStore) CountActiveByCompany(_ context.Context, _ string) (int, error) {
	return len(f.created), nil
}
func (f *fakeMembershipStore) ListByCompany(_ context.Context, _ string, _, _ int) ([]*entity.CompanyUser, error) {
	return nil, nil
}
func (f *fakeMembershipStore) Deactivate(_ context.Context, _ string) error          { return nil }
func (f *fakeMembershipStore) Update(_ context.Context, _ *entity.CompanyUser) error { return nil }

type fakePlanCatalog struct {
	trial *entity.SubscriptionPlan
}

func (f *fakePlanCatalog) Create(_ context.Context, _ *entity.SubscriptionPlan) error { return nil }
func (f *fakePlanCatalog) GetByID(_ context.Context, _ string) (*entity.SubscriptionPlan, error) {
	return nil, nil
}
func (f *fakePlanCatalog) GetByName(_ context.Context, name string) (*entity.SubscriptionPlan, error) {
	if f.trial != nil && f.trial.Name == name {
		return f.trial, nil
	}
	return nil, nil
}
func (f *fakePlanCatalog) ListActive(_ context.Context) ([]*entity.SubscriptionPlan, error) {
	return nil, nil
}

// fakeRegistrationRunner pasa los fakes a fn; con failWith simula un rollback:
// el error de fn sube y nada de lo "persistido" dentro cuenta como committed.
type fakeRegistrationRunner struct {
	users    *fakeUserStore
	cos      *fakeCompanyStore
	cus      *fakeMembershipStore
	failWith error
}

func (f *fakeRegistrationRunner) RunRegistration(ctx context.Context, fn func(
	repository.UserRepository, repository.CompanyRepository, repository.CompanyUserRepository,
) error) error {
	if f.failWith != nil {
		return f.failWith
	}
	return fn(f.users, f.cos, f.cus)
}

// ──────────────────────────────────────────────────────────────────────────────
// Setup
// ──────────────────────────────────────────────────────────────────────────────

const (
	trialDays = 14
	jwtSecret = "register-test-secret"
)

func buildAuthUC() (*auth.AuthUseCase, *fakeUserStore, *fakeCompanyStore, *fakeMembershipStore, *fakeRegistrationRunner) {
	users := newFakeUserStore()
	cos := &fakeCompanyStore{}
	cus := &fakeMembershipStore{}
	runner := &fakeRegistrationRunner{users: users, cos: cos, cus: cus}
	plans := &fakePlanCatalog{trial: &entity.SubscriptionPlan{
		ID: "plan-trial", Name: entity.PlanTrial, IsActive: true,
	}}
	uc := auth.NewAuthUseCase(users, cus, plans, runner,
		auth.JWTConfig{Secret: jwtSecret, ExpMinutes: 60, Issuer: "edibridge-test"},
		auth.TrialConfig{DurationDays: trialDays},
	)
	return uc, users, cos, cus, runner
}

func registerInput() dto.RegisterRequest {
	return dto.RegisterRequest{
		Company: dto.RegisterCompanyRequest{Name: "Acme Distributors", TaxID: "RC-123456"},
		User: dto.RegisterUserRequest{
			Email:     "admin@acme.ng",
			Password:  "s3cretpass",
			FirstName: "Ada",
			LastName:  "Obi",
		},
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaUsuarioEmpresaYMembresiaAdmin(t *testing.T) {
	uc, users, cos, cus, _ := buildAuthUC()

	out, err := uc.Register(context.Background(), registerInput())
	require.NoError(t, err)
	require.Len(t, users.created, 1)
	require.Len(t, cos.created, 1)
	require.Len(t, cus.created, 1)

	user, company, membership := users.created[0], cos.created[0], cus.created[0]

	// El password jamás se persiste en claro.
	assert.NotEqual(t, "s3cretpass", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cretpass")))

	// Empresa en TRIAL con vencimiento a trialDays días.
	assert.Equal(t, entity.SubscriptionTrial, company.SubscriptionStatus)
	assert.Equal(t, "plan-trial", company.SubscriptionPlanID)
	require.NotNil(t, company.SubscriptionEnd)
	wantEnd := time.Now().AddDate(0, 0, trialDays)
	assert.WithinDuration(t, wantEnd, *company.SubscriptionEnd, time.Minute)

	// Membresía ADMIN que ata usuario y empresa.
	assert.Equal(t, user.ID, membership.UserID)
	assert.Equal(t, company.ID, membership.CompanyID)
	assert.Equal(t, entity.RoleAdmin, membership.Role)
	assert.True(t, membership.Permissions.Has(entity.PermManageUsers))

	// El token emitido identifica al usuario recién creado.
	gotUser, gotCompany, gotRole, err := pkgjwt.Parse(jwtSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, gotUser)
	assert.Equal(t, company.ID, gotCompany)
	assert.Equal(t, entity.RoleAdmin, gotRole)
}

func TestRegister_EmailYaRegistradoFalla(t *testing.T) {
	uc, users, _, _, _ := buildAuthUC()
	require.NoError(t, users.Create(context.Background(), &entity.User{
		ID: "u-existing", Email: "admin@acme.ng",
	}))
	users.created = nil

	_, err := uc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, users.created, "no debe crearse nada tras el pre-chequeo")
}

// Carrera de registro: el pre-chequeo pasó pero el índice único de email
// dispara dentro de la transacción. Debe mapearse al mismo error de negocio.
func TestRegister_DuplicadoEnTransaccionSeMapea(t *testing.T) {
	uc, _, _, _, runner := buildAuthUC()
	runner.failWith = fmt.Errorf("insert usuario: %w", domain.ErrDuplicate)

	_, err := uc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_FalloDeTransaccionSePropaga(t *testing.T) {
	uc, _, _, _, runner := buildAuthUC()
	runner.failWith = errors.New("deadlock detected")

	_, err := uc.Register(context.Background(), registerInput())
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_SinCatalogoDePlanesFalla(t *testing.T) {
	users := newFakeUserStore()
	cus := &fakeMembershipStore{}
	runner := &fakeRegistrationRunner{users: users, cos: &fakeCompanyStore{}, cus: cus}
	uc := auth.NewAuthUseCase(users, cus, &fakePlanCatalog{}, runner,
		auth.JWTConfig{Secret: jwtSecret, ExpMinutes: 60, Issuer: "edibridge-test"},
		auth.TrialConfig{DurationDays: trialDays},
	)

	_, err := uc.Register(context.Background(), registerInput())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegister_InputIncompletoFalla(t *testing.T) {
	uc, _, _, _, _ := buildAuthUC()
	in := registerInput()
	in.Company.Name = ""

	_, err := uc.Register(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Login
// ──────────────────────────────────────────────────────────────────────────────

func loginFixture(t *testing.T, users *fakeUserStore, active bool) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cretpass"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{ID: "u-1", Email: "admin@acme.ng", PasswordHash: string(hash), IsActive: active}
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestLogin_PasswordIncorrectoDevuelveUnauthorized(t *testing.T) {
	uc, users, _, _, _ := buildAuthUC()
	loginFixture(t, users, true)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@acme.ng", Password: "otra"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInactivoDevuelveForbidden(t *testing.T) {
	uc, users, _, _, _ := buildAuthUC()
	loginFixture(t, users, false)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@acme.ng", Password: "s3cretpass"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// Un usuario sin membresía puede autenticarse; el token sale sin company/role
// y solo le sirve para las rutas exentas del gate.
func TestLogin_SinMembresiaEmiteTokenSinEmpresa(t *testing.T) {
	uc, users, _, _, _ := buildAuthUC()
	u := loginFixture(t, users, true)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@acme.ng", Password: "s3cretpass"})
	require.NoError(t, err)

	gotUser, gotCompany, gotRole, err := pkgjwt.Parse(jwtSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, gotUser)
	assert.Empty(t, gotCompany)
	assert.Empty(t, gotRole)
}

func TestLogin_ConMembresiaIncluyePistaDeEmpresa(t *testing.T) {
	uc, users, _, cus, _ := buildAuthUC()
	loginFixture(t, users, true)
	cus.membership = &entity.Membership{
		CompanyUser: entity.CompanyUser{ID: "cu-1", Role: entity.RoleAdmin},
		Company:     entity.Company{ID: "co-1"},
	}

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "admin@acme.ng", Password: "s3cretpass"})
	require.NoError(t, err)

	_, gotCompany, gotRole, err := pkgjwt.Parse(jwtSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "co-1", gotCompany)
	assert.Equal(t, entity.RoleAdmin, gotRole)
}
