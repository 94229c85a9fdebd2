//go:generate swag init -g cmd/api/main.go -o docs --parseDependency

// @title						Receituário API
// @version					1.0
// @description				Documentos clínicos con firma digital gov.br.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "receituario-api",
		Short:        "API de receitas, atestados y solicitudes de exame con firma gov.br",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
