package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tradelink-ng/edibridge-api/internal/application/auth"
	"github.com/tradelink-ng/edibridge-api/internal/application/usecase"
	"github.com/tradelink-ng/edibridge-api/internal/domain/entity"
	"github.com/tradelink-ng/edibridge-api/internal/domain/repository"
	"github.com/tradelink-ng/edibridge-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	TenantSvc      *usecase.TenantService
	RateLimitSvc   *usecase.RateLimitService
	LimitSvc       *usecase.LimitService
	SubscriptionUC *usecase.SubscriptionService
	MemberUC       *usecase.MemberService
	PartnerUC      *usecase.PartnerService
	DocumentUC     *usecase.DocumentService
	UsageRepo      repository.APIUsageRepository
	Logger         *logger.Logger
	JWTSecret      string
}

// Router registra las rutas de la API.
//
// Cadena del gate para rutas de negocio, en orden:
//
//	Auth (JWT) → TenantResolve → SubscriptionGate → RateLimit → UsageLogger
//
// Las rutas de perfil quedan solo detrás de Auth: un usuario sin empresa debe
// poder ver su perfil y salir de ese estado. Las rutas de facturación (planes,
// upgrade, estado) resuelven membresía pero omiten el gate de suscripción y el
// rate limit: una empresa con el trial vencido tiene que poder pagar.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Perfil: autenticado pero exento del gate de tenant.
	profile := api.Group("/auth", AuthMiddleware(deps.JWTSecret))
	profile.Get("/profile", authHandler.Profile)
	profile.Put("/profile", authHandler.UpdateProfile)

	// Facturación: membresía resuelta, suscripción NO exigida.
	subHandler := NewSubscriptionHandler(deps.SubscriptionUC)
	billing := api.Group("/auth",
		AuthMiddleware(deps.JWTSecret),
		TenantResolve(deps.TenantSvc),
	)
	billing.Get("/subscription/plans", subHandler.ListPlans)
	billing.Post("/subscription/upgrade", RequireRole(entity.RoleAdmin), subHandler.Upgrade)
	billing.Get("/company/status", subHandler.CompanyStatus)

	// Rutas de negocio: gate completo.
	protected := api.Group("/",
		AuthMiddleware(deps.JWTSecret),
		TenantResolve(deps.TenantSvc),
		SubscriptionGate(),
		RateLimitMiddleware(deps.RateLimitSvc),
		UsageLogger(deps.UsageRepo, deps.Logger),
	)

	// Miembros
	members := protected.Group("/members")
	memberHandler := NewMemberHandler(deps.MemberUC)
	members.Get("/", memberHandler.List)
	members.Post("/",
		RequirePermission(entity.PermManageUsers),
		RequireUserQuota(deps.LimitSvc),
		memberHandler.Invite,
	)
	members.Delete("/:id", RequirePermission(entity.PermManageUsers), memberHandler.Deactivate)

	// Socios comerciales
	partners := protected.Group("/partners")
	partnerHandler := NewPartnerHandler(deps.PartnerUC)
	partners.Get("/", partnerHandler.List)
	partners.Get("/:id", partnerHandler.GetByID)
	partners.Post("/", RequirePermission(entity.PermManagePartners), partnerHandler.Create)
	partners.Put("/:id", RequirePermission(entity.PermManagePartners), partnerHandler.Update)
	partners.Delete("/:id", RequirePermission(entity.PermManagePartners), partnerHandler.Deactivate)

	// Transacciones EDI (solo lectura de sobres)
	txHandler := NewTransactionHandler(deps.DocumentUC)
	protected.Get("/transactions", txHandler.List)
	protected.Get("/transactions/:id", txHandler.GetByID)

	// Documentos: las altas consumen cuota mensual de transacciones.
	docHandler := NewDocumentHandler(deps.DocumentUC)
	txQuota := RequireTransactionQuota(deps.LimitSvc)

	pos := protected.Group("/purchase-orders")
	pos.Get("/", docHandler.ListPurchaseOrders)
	pos.Get("/:id", docHandler.GetPurchaseOrder)
	pos.Post("/", txQuota, docHandler.CreatePurchaseOrder)

	invoices := protected.Group("/invoices")
	invoices.Get("/", docHandler.ListInvoices)
	invoices.Get("/:id", docHandler.GetInvoice)
	invoices.Post("/", txQuota, docHandler.CreateInvoice)

	payments := protected.Group("/payments")
	payments.Get("/", docHandler.ListPayments)
	payments.Get("/:id", docHandler.GetPayment)
	payments.Post("/", txQuota, docHandler.CreatePayment)
}
