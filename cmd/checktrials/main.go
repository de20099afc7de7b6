// checktrials lista las empresas en TRIAL cuyo período vence dentro de N días
// (por defecto hoy). Pensado para correr desde cron y alimentar avisos de
// vencimiento; no modifica datos: la expiración en caliente la decide el gate
// en cada request.
//
// Uso: go run ./cmd/checktrials --days 3
package main

import (
	"context"
	"flag"
	"time"

	"github.com/tradelink-ng/edibridge-api/internal/infrastructure/postgres"
	"github.com/tradelink-ng/edibridge-api/pkg/config"
	"github.com/tradelink-ng/edibridge-api/pkg/logger"
)

func main() {
	days := flag.Int("days", 0, "días hacia adelante a revisar (0 = trials que vencen hoy)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	companyRepo := postgres.NewCompanyRepository(pool)
	date := time.Now().AddDate(0, 0, *days).Format("2006-01-02")

	companies, err := companyRepo.ListTrialsEndingOn(ctx, date)
	if err != nil {
		log.Fatal().Err(err).Str("date", date).Msg("listar trials por vencer")
	}
	if len(companies) == 0 {
		log.Info().Str("date", date).Msg("sin trials venciendo en la fecha")
		return
	}
	for _, c := range companies {
		log.Warn().
			Str("company_id", c.ID).
			Str("company", c.Name).
			Str("email", c.Email).
			Str("trial_ends", date).
			Msg("trial por vencer")
	}
	log.Info().Int("count", len(companies)).Str("date", date).Msg("revisión de trials completada")
}
