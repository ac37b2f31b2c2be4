package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/oliveira-navegacao/erp-fluvial/internal/adapter/repository"
	"github.com/oliveira-navegacao/erp-fluvial/internal/config"
	"github.com/oliveira-navegacao/erp-fluvial/internal/domain/user"
	"github.com/oliveira-navegacao/erp-fluvial/internal/infrastructure/database"
	"github.com/oliveira-navegacao/erp-fluvial/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	username string
	name     string
	password string
	role     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "admin",
		Short:        "Tarefas administrativas do ERP Fluvial",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "Arquivo .env com as variáveis de ambiente")

	createUser := &cobra.Command{
		Use:   "create-user",
		Short: "Cria um usuário, normalmente o primeiro administrador",
		RunE:  runCreateUser,
	}
	createUser.Flags().StringVarP(&username, "username", "u", "", "Nome de usuário")
	createUser.Flags().StringVarP(&name, "name", "n", "", "Nome completo")
	createUser.Flags().StringVarP(&password, "password", "p", "", "Senha, ao menos 6 caracteres")
	createUser.Flags().StringVarP(&role, "role", "r", string(user.RoleAdmin), "Papel: admin ou operador")
	_ = createUser.MarkFlagRequired("username")
	_ = createUser.MarkFlagRequired("name")
	_ = createUser.MarkFlagRequired("password")

	rootCmd.AddCommand(createUser)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func runCreateUser(cmd *cobra.Command, _ []string) error {
	cfg, warnings := config.Load(envFile)
	if cfg == nil {
		return errors.Join(warnings...)
	}
	log := logger.NewLogger(logger.Options{Level: cfg.Log.Level, Pretty: true})

	u, err := user.NewUser(username, name, password, user.Role(role), "")
	if err != nil {
		return err
	}

	db, err := database.NewPostgresDB(cmd.Context(), cfg.Database, log)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repository.NewUserRepository(db).Create(cmd.Context(), u); err != nil {
		return err
	}

	log.Info("Usuário criado", "id", u.ID, "username", u.Username, "role", u.Role)
	return nil
}
