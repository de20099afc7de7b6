package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/tradelink-ng/edibridge-api/pkg/jwt"
)

const (
	secret  = "unit-test-secret"
	userID  = "00000000-0000-0000-0000-000000000001"
	company = "00000000-0000-0000-0000-000000000002"
	issuer  = "edibridge-test"
)

func TestGenerateYParse_RoundTrip(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, company, "ADMIN", issuer, 60)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	gotUser, gotCompany, gotRole, err := pkgjwt.Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, userID, gotUser)
	assert.Equal(t, company, gotCompany)
	assert.Equal(t, "ADMIN", gotRole)
}

func TestParse_FirmaIncorrectaFalla(t *testing.T) {
	tok, err := pkgjwt.Generate(secret, userID, company, "USER", issuer, 60)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err, "un token firmado con otro secret no debe validar")
}

func TestParse_TokenExpiradoFalla(t *testing.T) {
	// expMinutes negativo produce un token vencido en el pasado.
	tok, err := pkgjwt.Generate(secret, userID, company, "USER", issuer, -5)
	require.NoError(t, err)

	_, _, _, err = pkgjwt.Parse(secret, tok)
	assert.Error(t, err, "un token expirado debe rechazarse")
}

func TestParse_BasuraFalla(t *testing.T) {
	_, _, _, err := pkgjwt.Parse(secret, "no.es.un.jwt")
	assert.Error(t, err)
}

func TestGenerate_SecretVacioFalla(t *testing.T) {
	_, err := pkgjwt.Generate("", userID, company, "USER", issuer, 60)
	assert.Error(t, err)
}
