// Comando token: emite un JWT firmado con la configuración local (JWT_SECRET, JWT_ISSUER,
// JWT_EXPIRATION_MINUTES). Sirve para desarrollo y pruebas manuales contra la API.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/Clientes-api/pkg/config"
	"github.com/jhoicas/Clientes-api/pkg/jwt"
)

func newRootCmd(load func() (*config.Config, error)) *cobra.Command {
	var userID, companyID, role string
	cmd := &cobra.Command{
		Use:          "token",
		Short:        "Emite un token de acceso para la API de clientes",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			tok, err := issue(cfg.JWT, userID, companyID, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "ID del usuario (por defecto uno aleatorio)")
	cmd.Flags().StringVar(&companyID, "company", "", "ID de la empresa")
	cmd.Flags().StringVar(&role, "role", jwt.RoleConsulta, "admin | facturador | consulta")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}

// issue valida los datos y firma el token con la expiración configurada.
func issue(cfg config.JWTConfig, userID, companyID, role string) (string, error) {
	if !jwt.KnownRole(role) {
		return "", fmt.Errorf("rol desconocido: %q", role)
	}
	if _, err := uuid.Parse(companyID); err != nil {
		return "", fmt.Errorf("company inválido: %q", companyID)
	}
	if userID == "" {
		userID = uuid.NewString()
	}
	if cfg.Expiration < 1 {
		return "", fmt.Errorf("JWT_EXPIRATION_MINUTES debe ser positivo: %d", cfg.Expiration)
	}
	return jwt.Generate(cfg.Secret, userID, companyID, role, cfg.Issuer, cfg.Expiration)
}

func main() {
	if err := newRootCmd(config.Load).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
