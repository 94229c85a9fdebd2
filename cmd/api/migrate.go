package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/receituario-api/internal/infrastructure/postgres"
	"github.com/jhoicas/receituario-api/pkg/config"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migraciones de PostgreSQL (DB_DRIVER=postgres)",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Aplicar migraciones pendientes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				count, err := postgres.NewMigrator(pool).Up(ctx)
				if err != nil {
					return fmt.Errorf("migración fallida: %w", err)
				}
				cmd.Printf("%d migración(es) aplicada(s).\n", count)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Estado de las migraciones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
				statuses, err := postgres.NewMigrator(pool).Status(ctx)
				if err != nil {
					return fmt.Errorf("estado de migraciones: %w", err)
				}
				cmd.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
				for _, s := range statuses {
					status, appliedAt := "pending", ""
					if s.Applied {
						status = "applied"
						if s.AppliedAt != nil {
							appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
						}
					}
					cmd.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
				}
				return nil
			})
		},
	})

	return cmd
}

func withPool(ctx context.Context, fn func(context.Context, *pgxpool.Pool) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.DB.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate requiere DB_DRIVER=postgres (actual: %s)", cfg.DB.Driver)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	return fn(ctx, pool)
}
