package storefront

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/goliatone/go-storefront/imagekit"
)

// APIPrefix is the path prefix every route hangs off.
const APIPrefix = "/api"

// Server assembles the controllers and owns the fiber app.
type Server struct {
	Logger       Logger
	Repo         RepositoryManager
	Sessions     *SessionManager
	Images       *imagekit.Client
	AllowOrigins string

	auth       *AuthController
	admin      *AdminController
	categories *CategoryController
	products   *ProductController
	uploads    *UploadController
}

type ServerOption func(*Server) *Server

func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		Logger:       defLogger{},
		AllowOrigins: "http://localhost:3000",
	}

	for _, opt := range opts {
		s = opt(s)
	}

	if s.Repo == nil {
		panic("Missing RepositoryManager in server...")
	}

	if s.Sessions == nil {
		panic("Missing SessionManager in server...")
	}

	if s.Images == nil {
		s.Images = imagekit.New(imagekit.Config{})
	}

	s.auth = NewAuthController(
		WithAuthSessionManager(s.Sessions),
		WithAuthLogger(s.Logger),
	)
	s.admin = NewAdminController(
		WithAdminRepository(s.Repo),
		WithAdminLogger(s.Logger),
	)
	s.categories = NewCategoryController(
		WithCategoryRepository(s.Repo),
		WithCategoryLogger(s.Logger),
	)
	s.products = NewProductController(
		WithProductRepository(s.Repo),
		WithProductLogger(s.Logger),
	)
	s.uploads = NewUploadController(
		WithUploadClient(s.Images),
		WithUploadLogger(s.Logger),
	)

	return s
}

func WithServerLogger(logger Logger) ServerOption {
	return func(s *Server) *Server {
		s.Logger = logger
		return s
	}
}

func WithServerRepository(repo RepositoryManager) ServerOption {
	return func(s *Server) *Server {
		s.Repo = repo
		return s
	}
}

func WithServerSessionManager(manager *SessionManager) ServerOption {
	return func(s *Server) *Server {
		s.Sessions = manager
		return s
	}
}

func WithServerImageClient(client *imagekit.Client) ServerOption {
	return func(s *Server) *Server {
		s.Images = client
		return s
	}
}

func WithServerAllowOrigins(origins string) ServerOption {
	return func(s *Server) *Server {
		s.AllowOrigins = origins
		return s
	}
}

// App builds a fiber app with the API mounted and the error handler wired.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "go-storefront",
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.AllowOrigins,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Session-ID",
	}))

	s.RegisterRoutes(app)

	return app
}

// RegisterRoutes mounts every endpoint under the API prefix. Catalog reads
// are public; catalog writes, user management, and uploads require an admin
// session.
func (s *Server) RegisterRoutes(app *fiber.App) {
	requireUser := RequireUser(s.Sessions)
	requireAdmin := RequireAdmin(s.Sessions)

	api := app.Group(APIPrefix)

	api.Post("/auth/session", s.auth.Login)
	api.Get("/auth/me", requireUser, s.auth.CurrentUser)
	api.Post("/auth/logout", s.auth.Logout)

	api.Get("/admin/users", requireAdmin, s.admin.ListUsers)
	api.Put("/admin/users/:email", requireAdmin, s.admin.SetUserAdmin)

	api.Get("/categories", s.categories.List)
	api.Get("/categories/:id", s.categories.Get)
	api.Post("/categories", requireAdmin, s.categories.Create)
	api.Put("/categories/:id", requireAdmin, s.categories.Update)
	api.Delete("/categories/:id", requireAdmin, s.categories.Delete)

	api.Get("/products", s.products.List)
	api.Get("/products/:id", s.products.Get)
	api.Post("/products", requireAdmin, s.products.Create)
	api.Put("/products/:id", requireAdmin, s.products.Update)
	api.Delete("/products/:id", requireAdmin, s.products.Delete)

	api.Post("/upload/image", requireAdmin, s.uploads.UploadImage)
	api.Get("/imagekit/config", s.uploads.Config)
}
