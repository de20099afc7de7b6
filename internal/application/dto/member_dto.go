package dto

import "time"

// InviteMemberRequest alta de un usuario en la empresa del solicitante.
type InviteMemberRequest struct {
	Email     string          `json:"email"`
	Password  string          `json:"password"`
	FirstName string          `json:"first_name"`
	LastName  string          `json:"last_name"`
	Role      string          `json:"role"`
	Perms     map[string]bool `json:"permissions"`
}

// MemberResponse membresía de un usuario en la empresa.
type MemberResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}
