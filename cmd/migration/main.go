package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oliveira-navegacao/erp-fluvial/internal/config"
	"github.com/oliveira-navegacao/erp-fluvial/internal/infrastructure/database"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/spf13/cobra"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "migration",
		Short:        "Aplica ou desfaz as migrações do banco de dados",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "Arquivo .env com as variáveis de ambiente")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Aplica todas as migrações pendentes",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				return m.Up()
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Desfaz a última migração aplicada",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				return m.Down()
			}),
		},
		&cobra.Command{
			Use:   "version",
			Short: "Mostra a versão atual do schema",
			RunE: withMigrator(func(cmd *cobra.Command, m *database.Migrator) error {
				v, dirty, err := m.Version()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "versão %d (dirty=%t)\n", v, dirty)
				return nil
			}),
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func withMigrator(run func(cmd *cobra.Command, m *database.Migrator) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		cfg, warnings := config.Load(envFile)
		if cfg == nil {
			return errors.Join(warnings...)
		}
		log := logger.NewLogger(logger.Options{Level: cfg.Log.Level, Pretty: true})

		m, err := database.NewMigrator(cfg.Database.ConnectionString(), log)
		if err != nil {
			return err
		}
		defer func() {
			if err := m.Close(); err != nil {
				log.Warn("Erro ao fechar migrate", "error", err)
			}
		}()

		return run(cmd, m)
	}
}
