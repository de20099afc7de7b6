package entity

import "time"

// Roles válidos para CompanyUser.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleUser    = "USER"
	RoleViewer  = "VIEWER"
)

// Permission es el conjunto cerrado de banderas de permiso de una membresía.
type Permission string

const (
	PermManageUsers    Permission = "can_manage_users"
	PermManagePartners Permission = "can_manage_partners"
	PermViewReports    Permission = "can_view_reports"
	PermManageSettings Permission = "can_manage_settings"
)

// knownPermissions catálogo cerrado; se valida al crear/editar membresías.
var knownPermissions = map[Permission]struct{}{
	PermManageUsers:    {},
	PermManagePartners: {},
	PermViewReports:    {},
	PermManageSettings: {},
}

// KnownPermission informa si la bandera pertenece al catálogo.
func KnownPermission(p Permission) bool {
	_, ok := knownPermissions[p]
	return ok
}

// PermissionSet banderas de permiso de una membresía.
type PermissionSet map[Permission]bool

// Has devuelve el valor de la bandera; ausente = false.
func (s PermissionSet) Has(p Permission) bool {
	return s[p]
}

// AdminPermissions banderas por defecto de la membresía ADMIN creada en el registro.
func AdminPermissions() PermissionSet {
	return PermissionSet{
		PermManageUsers:    true,
		PermManagePartners: true,
		PermViewReports:    true,
		PermManageSettings: true,
	}
}

// User es el principal autenticable (credenciales, sin contexto de empresa).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FirstName    string
	LastName     string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CompanyUser es la membresía: el vínculo entre un User y una Company, con rol
// y banderas de permiso. Invariante: a lo sumo UNA membresía activa por usuario
// (constraint de unicidad parcial sobre user_id en la tabla).
// Se desactiva (is_active=false), nunca se borra.
type CompanyUser struct {
	ID          string
	CompanyID   string
	UserID      string
	Role        string // ver constantes Role*
	Permissions PermissionSet
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Membership es el resultado de resolver el tenant de un usuario autenticado:
// la membresía activa junto con su empresa y plan, cargados en una sola consulta.
// Se cachea en el contexto del request para que las etapas posteriores y el
// handler final no repitan la búsqueda.
type Membership struct {
	CompanyUser CompanyUser
	Company     Company
	Plan        SubscriptionPlan
}
