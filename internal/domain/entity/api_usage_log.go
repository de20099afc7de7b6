package entity

import "time"

// APIUsageLog es una fila append-only por llamada API completada. Se escribe
// best-effort después del handler y se lee solo en agregado (conteos por hora
// para rate limiting y por mes para analítica). Nunca se muta tras crearse.
type APIUsageLog struct {
	ID            string
	CompanyID     string
	CompanyUserID string
	Endpoint      string
	Method        string
	StatusCode    int
	IPAddress     string
	UserAgent     string
	RequestBytes  int
	ResponseBytes int
	CreatedAt     time.Time
}
