// Comando migrate: aplica o revierte las migraciones SQL embebidas.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Clientes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Clientes-api/pkg/config"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:          "migrate",
	Short:        "Migraciones de la base de datos de clientes",
	SilenceUsage: true,
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Aplica todas las migraciones pendientes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return err
		}
		log.Info().Msg("migraciones aplicadas")
		return nil
	},
}

var downCmd = &cobra.Command{
	Use:   "down [pasos]",
	Short: "Revierte migraciones (por defecto 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("pasos inválidos: %q", args[0])
			}
			steps = n
		}
		cfg, log, err := setup()
		if err != nil {
			return err
		}
		if err := postgres.MigrateDown(cfg.DB.ConnectionString(), steps); err != nil {
			return err
		}
		log.Info().Int("steps", steps).Msg("migraciones revertidas")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
	rootCmd.AddCommand(downCmd)
}

func setup() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
