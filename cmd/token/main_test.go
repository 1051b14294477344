package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/pkg/config"
	"github.com/jhoicas/Clientes-api/pkg/jwt"
)

const testCompanyID = "00000000-0000-0000-0000-000000000002"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{Secret: "secret-de-pruebas", Issuer: "clientes-api-test", Expiration: 15}
}

func TestIssue_UsaExpiracionYEmisorConfigurados(t *testing.T) {
	before := time.Now()
	tok, err := issue(testJWTConfig(), "u-1", testCompanyID, jwt.RoleFacturador)
	require.NoError(t, err)

	claims, err := jwt.ParseClaims("secret-de-pruebas", tok, "clientes-api-test")
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.UserID)
	assert.Equal(t, testCompanyID, claims.CompanyID)
	assert.Equal(t, jwt.RoleFacturador, claims.Role)
	assert.WithinDuration(t, before.Add(15*time.Minute), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssue_Validaciones(t *testing.T) {
	cfg := testJWTConfig()

	_, err := issue(cfg, "", testCompanyID, "bodeguero")
	assert.ErrorContains(t, err, "rol desconocido")

	_, err = issue(cfg, "", "empresa-1", jwt.RoleAdmin)
	assert.ErrorContains(t, err, "company inválido")

	cfg.Expiration = 0
	_, err = issue(cfg, "", testCompanyID, jwt.RoleAdmin)
	assert.ErrorContains(t, err, "JWT_EXPIRATION_MINUTES")

	_, err = issue(config.JWTConfig{Expiration: 60}, "", testCompanyID, jwt.RoleAdmin)
	assert.ErrorIs(t, err, jwt.ErrEmptySecret)
}

func TestRootCmd_ImprimeToken(t *testing.T) {
	cmd := newRootCmd(func() (*config.Config, error) {
		return &config.Config{JWT: testJWTConfig()}, nil
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--company", testCompanyID, "--role", "admin"})

	require.NoError(t, cmd.Execute())

	claims, err := jwt.ParseClaims("secret-de-pruebas", strings.TrimSpace(out.String()), "clientes-api-test")
	require.NoError(t, err)
	assert.Equal(t, jwt.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.UserID, "sin --user se genera uno")
}
