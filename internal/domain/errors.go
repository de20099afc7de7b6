package domain

import (
	"errors"
	"fmt"
	"time"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrNoMembership: el usuario autenticado no tiene membresía activa en ninguna empresa.
	ErrNoMembership = errors.New("usuario sin empresa asociada")
	// ErrAmbiguousMembership: más de una membresía activa para el mismo usuario.
	// Es una violación de integridad de datos; nunca se resuelve eligiendo una fila al azar.
	ErrAmbiguousMembership = errors.New("múltiples membresías activas para el usuario")
)

// SubscriptionError indica que la suscripción de la empresa no está en estado válido.
// State es el estado derivado (EXPIRED, SUSPENDED, CANCELLED) tal como viaja en la respuesta.
type SubscriptionError struct {
	State string
}

func (e *SubscriptionError) Error() string {
	return fmt.Sprintf("suscripción inválida: %s", e.State)
}

// RateLimitError indica que la empresa superó su límite de llamadas por hora.
type RateLimitError struct {
	Limit   int
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("límite de %d solicitudes por hora superado", e.Limit)
}

// Recursos con techo por plan.
const (
	QuotaUsers        = "users"
	QuotaTransactions = "transactions"
	QuotaPartners     = "partners"
)

// QuotaError indica que un recurso alcanzó el techo del plan.
// Resource es una de las constantes Quota*; Ceiling el máximo del plan.
type QuotaError struct {
	Resource string
	Ceiling  int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("límite de %s alcanzado (%d)", e.Resource, e.Ceiling)
}
