package dto

// PageRequest paginación para listados.
type PageRequest struct {
	Limit  int `query:"limit" validate:"min=1,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

// DefaultPage aplica valores por defecto si Limit/Offset son cero.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// ErrorResponse cuerpo de error HTTP para rutas CRUD.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// GateErrorResponse cuerpo de rechazo del gate de requests. Shape estable:
// error + detail siempre; subscription_status solo en rechazos 402; los campos
// de rate limit solo en rechazos 429.
type GateErrorResponse struct {
	Error              string `json:"error"`
	Detail             string `json:"detail"`
	SubscriptionStatus string `json:"subscription_status,omitempty"`
	Limit              int    `json:"limit,omitempty"`
	Remaining          *int   `json:"remaining,omitempty"`
	ResetTime          string `json:"reset_time,omitempty"`
}
