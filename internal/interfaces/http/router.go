package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/receituario-api/internal/application/auth"
	"github.com/jhoicas/receituario-api/internal/application/documents"
	"github.com/jhoicas/receituario-api/internal/application/signature"
	"github.com/jhoicas/receituario-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	DocumentUC  *documents.DocumentUseCase
	Coordinator *signature.Coordinator
	// Sandbox solo con GOVBR_MODE=sandbox; nil en producción.
	Sandbox sandboxSigner
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	requireAuth := AuthMiddleware(deps.AuthUC)

	// Auth (público salvo /me)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", requireAuth, authHandler.Me)

	// Admin
	admin := api.Group("/admin", requireAuth, RequireRole(entity.RoleAdmin))
	admin.Get("/users", authHandler.ListUsers)

	// Documents (protegido). /templates antes de /:id.
	docHandler := NewDocumentHandler(deps.DocumentUC)
	docs := api.Group("/documents", requireAuth)
	docs.Get("/", docHandler.List)
	docs.Post("/", docHandler.Create)
	docs.Get("/templates/:type", docHandler.Template)
	docs.Get("/:id", docHandler.GetByID)
	docs.Get("/:id/pdf", docHandler.PDF)

	// Signature: el callback es público (lo invoca el proveedor).
	sigHandler := NewSignatureHandler(deps.Coordinator)
	sig := api.Group("/signature")
	sig.Post("/callback", sigHandler.Callback)
	sig.Post("/:id/request", requireAuth, sigHandler.Request)
	sig.Get("/:id/verify", requireAuth, sigHandler.Verify)

	if deps.Sandbox != nil {
		app.Get("/sandbox/sign/:token", SandboxSign(deps.Sandbox, deps.Coordinator))
	}
}
