package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
	"github.com/tradelink-ng/edibridge-api/internal/domain"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	apphttp "github.com/tradelink-ng/edibridge-api/internal/interfaces/http"
	pkgjwt "github.com/tradelink-ng/edibridge-api/pkg/jwt"
	"github.com/tradelink-ng/edibridge-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testCompanyID = "00000000-0000-0000-0000-000000000002"
	testIssuer    = "edibridge-test"
	testExpMin    = 60
)

// fakeResolver simula la resolución de membresía y cuenta las llamadas para
// verificar que el gate resuelve UNA sola vez por request.
type fakeResolver struct {
	m     *entity.Membership
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (*entity.Membership, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.m, nil
}

// fakeUsageRepo simula el log de uso: conteo configurable para el rate limit y
// registro de inserciones para verificar el UsageLogger.
type fakeUsageRepo struct {
	count     int
	countErr  error
	createErr error
	created   []*entity.APIUsageLog
}

func (f *fakeUsageRepo) Create(_ context.Context, log *entity.APIUsageLog) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, log)
	return nil
}

func (f *fakeUsageRepo) CountSince(_ context.Context, _ string, _ time.Time) (int, error) {
	return f.count, f.countErr
}

func activeMembership(planName string) *entity.Membership {
	now := time.Now()
	return &entity.Membership{
		CompanyUser: entity.CompanyUser{
			ID:        "cu-1",
			CompanyID: testCompanyID,
			Role:      entity.RoleAdmin,
			IsActive:  true,
		},
		Company: entity.Company{
			ID:                 testCompanyID,
			Name:               "Acme Distributors",
			SubscriptionStatus: entity.SubscriptionActive,
			IsActive:           true,
		},
		Plan: entity.SubscriptionPlan{Name: planName, IsActive: true},
	}
}

// buildGateApp monta la cadena protegida completa tal como lo hace el router:
// Auth → TenantResolve → SubscriptionGate → RateLimit → UsageLogger → handler
// dummy, más una ruta de facturación que omite el gate de suscripción.
func buildGateApp(resolver *fakeResolver, usageRepo *fakeUsageRepo) *fiber.App {
	app := fiber.New()
	nop := logger.FromZerolog(zerolog.Nop())
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.TenantResolve(resolver),
		apphttp.SubscriptionGate(),
		apphttp.RateLimitMiddleware(usecase.NewRateLimitService(usageRepo)),
		apphttp.UsageLogger(usageRepo, nop),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
		},
	)
	app.Get("/billing",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.TenantResolve(resolver),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func bearerToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testCompanyID, entity.RoleAdmin, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doProtected(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", bearerToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeGateBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TenantResolve + SubscriptionGate
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: usuario autenticado pero sin empresa → HTTP 403 con cuerpo estable.
func TestGate_SinMembresiaDevuelve403(t *testing.T) {
	resolver := &fakeResolver{err: domain.ErrNoMembership}
	app := buildGateApp(resolver, &fakeUsageRepo{})

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeGateBody(t, resp)
	assert.Equal(t, "No company association", body["error"])
	assert.NotEmpty(t, body["detail"])
}

// Caso 2: más de una membresía activa es una anomalía de datos → HTTP 500,
// nunca se elige una empresa al azar.
func TestGate_MembresiaAmbiguaDevuelve500(t *testing.T) {
	resolver := &fakeResolver{err: domain.ErrAmbiguousMembership}
	app := buildGateApp(resolver, &fakeUsageRepo{})

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body := decodeGateBody(t, resp)
	assert.Equal(t, "Membership conflict", body["error"])
}

// Caso 3: trial vencido ayer → HTTP 402 con subscription_status EXPIRED.
func TestGate_TrialVencidoDevuelve402(t *testing.T) {
	m := activeMembership(entity.PlanTrial)
	yesterday := time.Now().AddDate(0, 0, -1)
	m.Company.SubscriptionStatus = entity.SubscriptionTrial
	m.Company.SubscriptionEnd = &yesterday
	app := buildGateApp(&fakeResolver{m: m}, &fakeUsageRepo{})

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusPaymentRequired, resp.StatusCode)
	body := decodeGateBody(t, resp)
	assert.Equal(t, "Subscription inactive", body["error"])
	assert.Equal(t, "EXPIRED", body["subscription_status"])
}

// Caso 3b: trial que vence HOY sigue siendo válido → HTTP 200.
func TestGate_TrialVenceHoySiguePasando(t *testing.T) {
	m := activeMembership(entity.PlanTrial)
	today := time.Now()
	m.Company.SubscriptionStatus = entity.SubscriptionTrial
	m.Company.SubscriptionEnd = &today
	app := buildGateApp(&fakeResolver{m: m}, &fakeUsageRepo{})

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el trial vence al FINAL del día de subscription_end, no al inicio")
}

// Caso 3c: con el trial vencido, las rutas de facturación siguen accesibles;
// si no, la empresa jamás podría hacer upgrade.
func TestTenantResolve_TrialVencidoAccedeAFacturacion(t *testing.T) {
	m := activeMembership(entity.PlanTrial)
	yesterday := time.Now().AddDate(0, 0, -1)
	m.Company.SubscriptionStatus = entity.SubscriptionTrial
	m.Company.SubscriptionEnd = &yesterday
	app := buildGateApp(&fakeResolver{m: m}, &fakeUsageRepo{})

	req := httptest.NewRequest(http.MethodGet, "/billing", nil)
	req.Header.Set("Authorization", bearerToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 4: empresa desactivada (baja lógica) → HTTP 403.
func TestGate_EmpresaDesactivadaDevuelve403(t *testing.T) {
	m := activeMembership(entity.PlanBasic)
	m.Company.IsActive = false
	app := buildGateApp(&fakeResolver{m: m}, &fakeUsageRepo{})

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeGateBody(t, resp)
	assert.Equal(t, "Company disabled", body["error"])
}

// Caso 5: la membresía se resuelve UNA vez por request; las etapas posteriores
// la leen de Locals sin volver a la DB.
func TestGate_ResuelveUnaSolaVezPorRequest(t *testing.T) {
	resolver := &fakeResolver{m: activeMembership(entity.PlanEnterprise)}
	app := buildGateApp(resolver, &fakeUsageRepo{})

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, resolver.calls,
		"rate limit, cuotas y usage logger deben reutilizar la membresía cacheada")
}

// Caso 6: sin token no hay gate que evaluar → HTTP 401 del AuthMiddleware.
func TestGate_SinTokenDevuelve401(t *testing.T) {
	resolver := &fakeResolver{m: activeMembership(entity.PlanBasic)}
	app := buildGateApp(resolver, &fakeUsageRepo{})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 0, resolver.calls, "sin autenticación no debe tocarse la DB")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RateLimitMiddleware
// ──────────────────────────────────────────────────────────────────────────────

// Última llamada del bucket enterprise (9999 de 10000) → pasa con Remaining 0.
func TestRateLimit_UltimaLlamadaDelBucketPasa(t *testing.T) {
	usage := &fakeUsageRepo{count: 9999}
	app := buildGateApp(&fakeResolver{m: activeMembership(entity.PlanEnterprise)}, usage)

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "10000", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Reset"))
}

// Bucket agotado (10000 de 10000) → HTTP 429 con limit, remaining 0 y reset_time.
func TestRateLimit_BucketAgotadoDevuelve429(t *testing.T) {
	usage := &fakeUsageRepo{count: 10000}
	app := buildGateApp(&fakeResolver{m: activeMembership(entity.PlanEnterprise)}, usage)

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "10000", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	body := decodeGateBody(t, resp)
	assert.Equal(t, "Rate limit exceeded", body["error"])
	assert.Equal(t, float64(10000), body["limit"])
	assert.Equal(t, float64(0), body["remaining"])
	assert.NotEmpty(t, body["reset_time"])
	_, err := time.Parse(time.RFC3339, body["reset_time"].(string))
	assert.NoError(t, err, "reset_time debe ser RFC3339")
}

// Las llamadas rechazadas por 429 NO generan fila de uso: el logger va después
// del rate limit, si no un tenant bloqueado jamás saldría del bucket.
func TestRateLimit_RechazoNoRegistraUso(t *testing.T) {
	usage := &fakeUsageRepo{count: 10000}
	app := buildGateApp(&fakeResolver{m: activeMembership(entity.PlanEnterprise)}, usage)

	resp := doProtected(t, app)
	defer resp.Body.Close()

	require.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Empty(t, usage.created, "un 429 no debe insertar en api_usage_logs")
}

// Fallo de DB al contar → el request pasa sin headers de rate limit (fail open).
func TestRateLimit_FalloDeConteoAdmiteElRequest(t *testing.T) {
	usage := &fakeUsageRepo{countErr: errors.New("connection refused")}
	app := buildGateApp(&fakeResolver{m: activeMembership(entity.PlanBasic)}, usage)

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("X-RateLimit-Limit"),
		"sin conteo confiable no se anuncian headers de rate limit")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests UsageLogger
// ──────────────────────────────────────────────────────────────────────────────

// Una llamada admitida registra una fila atribuida al tenant.
func TestUsageLogger_RegistraLaLlamadaAdmitida(t *testing.T) {
	usage := &fakeUsageRepo{count: 0}
	app := buildGateApp(&fakeResolver{m: activeMembership(entity.PlanGrowth)}, usage)

	resp := doProtected(t, app)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, usage.created, 1)
	entry := usage.created[0]
	assert.Equal(t, testCompanyID, entry.CompanyID)
	assert.Equal(t, "/protected", entry.Endpoint)
	assert.Equal(t, http.MethodGet, entry.Method)
	assert.Equal(t, http.StatusOK, entry.StatusCode)
}

// Un fallo al insertar el log de uso se descarta: la respuesta ya producida
// no cambia.
func TestUsageLogger_FalloDeInsertNoAlteraLaRespuesta(t *testing.T) {
	usage := &fakeUsageRepo{createErr: errors.New("disk full")}
	app := buildGateApp(&fakeResolver{m: activeMembership(entity.PlanBasic)}, usage)

	resp := doProtected(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole / RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func buildAuthzApp(m *entity.Membership, guard fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Post("/guarded",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.TenantResolve(&fakeResolver{m: m}),
		apphttp.SubscriptionGate(),
		guard,
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func doGuarded(t *testing.T, app *fiber.App) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
	req.Header.Set("Authorization", bearerToken(t))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestRequireRole_RolInsuficienteDevuelve403(t *testing.T) {
	m := activeMembership(entity.PlanBasic)
	m.CompanyUser.Role = entity.RoleUser
	app := buildAuthzApp(m, apphttp.RequireRole(entity.RoleAdmin))

	resp := doGuarded(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Insufficient role")
}

func TestRequireRole_RolPermitidoPasa(t *testing.T) {
	m := activeMembership(entity.PlanBasic)
	m.CompanyUser.Role = entity.RoleManager
	app := buildAuthzApp(m, apphttp.RequireRole(entity.RoleAdmin, entity.RoleManager))

	resp := doGuarded(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ADMIN pasa cualquier control de permiso aunque la bandera no esté presente.
func TestRequirePermission_AdminSiemprePasa(t *testing.T) {
	m := activeMembership(entity.PlanBasic)
	m.CompanyUser.Permissions = entity.PermissionSet{}
	app := buildAuthzApp(m, apphttp.RequirePermission(entity.PermManageUsers))

	resp := doGuarded(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_BanderaAusenteDevuelve403(t *testing.T) {
	m := activeMembership(entity.PlanBasic)
	m.CompanyUser.Role = entity.RoleUser
	m.CompanyUser.Permissions = entity.PermissionSet{entity.PermViewReports: true}
	app := buildAuthzApp(m, apphttp.RequirePermission(entity.PermManagePartners))

	resp := doGuarded(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Permission denied")
}

func TestRequirePermission_BanderaPresentePasa(t *testing.T) {
	m := activeMembership(entity.PlanBasic)
	m.CompanyUser.Role = entity.RoleUser
	m.CompanyUser.Permissions = entity.PermissionSet{entity.PermManagePartners: true}
	app := buildAuthzApp(m, apphttp.RequirePermission(entity.PermManagePartners))

	resp := doGuarded(t, app)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
