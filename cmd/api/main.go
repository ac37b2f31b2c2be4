package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var envFile string

func main() {
	rootCmd := &cobra.Command{
		Use:          "api",
		Short:        "Servidor HTTP do ERP Fluvial",
		SilenceUsage: true,
		RunE:         runServer,
	}
	rootCmd.PersistentFlags().StringVarP(&envFile, "env", "e", ".env", "Arquivo .env com as variáveis de ambiente")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Mostra a versão da API",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Erro: %v\n", err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	app, err := NewApp(cmd.Context(), envFile)
	if err != nil {
		return err
	}
	defer app.Close()

	return app.Start()
}
