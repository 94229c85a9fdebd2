package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/spf13/cobra"

	"github.com/jhoicas/receituario-api/docs"
	"github.com/jhoicas/receituario-api/internal/application/auth"
	"github.com/jhoicas/receituario-api/internal/application/documents"
	"github.com/jhoicas/receituario-api/internal/application/ports"
	"github.com/jhoicas/receituario-api/internal/application/signature"
	"github.com/jhoicas/receituario-api/internal/domain/repository"
	"github.com/jhoicas/receituario-api/internal/infrastructure/govbr"
	"github.com/jhoicas/receituario-api/internal/infrastructure/memory"
	infmongo "github.com/jhoicas/receituario-api/internal/infrastructure/mongo"
	infrapdf "github.com/jhoicas/receituario-api/internal/infrastructure/pdf"
	"github.com/jhoicas/receituario-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/receituario-api/internal/interfaces/http"
	"github.com/jhoicas/receituario-api/pkg/config"
	"github.com/jhoicas/receituario-api/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Levantar el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

// stores repositorios del backend elegido y su cierre.
type stores struct {
	users repository.UserRepository
	docs  repository.DocumentRepository
	close func()
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	switch cfg.DB.Driver {
	case config.DriverMongo:
		client, db, err := infmongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		if err := infmongo.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		return &stores{
			users: infmongo.NewUserRepository(db),
			docs:  infmongo.NewDocumentRepository(db),
			close: func() { _ = client.Disconnect(context.Background()) },
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{
			users: memory.NewUserRepository(s),
			docs:  memory.NewDocumentRepository(s),
			close: func() {},
		}, nil

	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		applied, err := postgres.NewMigrator(pool).Up(ctx)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		if applied > 0 {
			log.Info().Int("applied", applied).Msg("migraciones aplicadas")
		}
		return &stores{
			users: postgres.NewUserRepository(pool),
			docs:  postgres.NewDocumentRepository(pool),
			close: pool.Close,
		}, nil
	}
}

// swaggerFile devuelve SWAGGER_FILE si existe; si no, vuelca la especificación OpenAPI registrada en un temporal.
func swaggerFile(path string) (string, error) {
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	out := filepath.Join(os.TempDir(), "receituario-swagger.json")
	if err := os.WriteFile(out, []byte(docs.SwaggerInfo.ReadDoc()), 0o600); err != nil {
		return "", fmt.Errorf("escribir swagger: %w", err)
	}
	return out, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Str("govbr_mode", cfg.GovBR.Mode).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET requerido")
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("conexión al almacenamiento")
		return err
	}
	defer st.close()

	// Proveedor de firma: sandbox local o API gov.br.
	var (
		provider ports.SignatureProvider
		sandbox  *govbr.SandboxProvider
	)
	if cfg.GovBR.Mode == config.GovBRModeSandbox {
		sandbox = govbr.NewSandboxProvider(cfg.App.URL)
		provider = sandbox
		log.Warn().Msg("GOVBR_MODE=sandbox: las firmas se simulan en /sandbox/sign/:token")
	} else {
		provider = govbr.NewClient(cfg.GovBR.APIURL, cfg.GovBR.APIKey, cfg.GovBR.Timeout())
	}

	renderer := infrapdf.NewMarotoRenderer()
	authUC := auth.NewAuthUseCase(st.users, auth.Config{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	documentUC := documents.NewDocumentUseCase(st.docs, renderer)
	coordinator := signature.NewCoordinator(
		st.docs, renderer, provider, cfg.App.CallbackURL(), log.Component("signature"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(log.Zerolog()),
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	specPath, err := swaggerFile(cfg.HTTP.SwaggerFile)
	if err != nil {
		log.Warn().Err(err).Msg("swagger UI deshabilitado")
	} else {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: specPath,
			Path:     "docs",
			Title:    "Receituário API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	deps := httpRouter.RouterDeps{
		AuthUC:      authUC,
		DocumentUC:  documentUC,
		Coordinator: coordinator,
	}
	if sandbox != nil {
		deps.Sandbox = sandbox
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}
