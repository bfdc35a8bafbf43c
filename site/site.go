// Package site is the public blog deployment: a small post API consumed by
// the marketing front end, with a JWT gate in front of every write.
package site

import (
	"context"
	"log"
	"time"

	"inkwell/config"
	"inkwell/middleware"
	"inkwell/models"
	"inkwell/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Server holds the site deployment's dependencies.
type Server struct {
	config *config.Config
	db     *gorm.DB
	users  repository.UserRepository
	posts  repository.PostRepository
	tags   repository.TagRepository
}

// New creates a site server around an already-connected database handle.
func New(cfg *config.Config, db *gorm.DB) *Server {
	return &Server{
		config: cfg,
		db:     db,
		users:  repository.NewUserRepository(db),
		posts:  repository.NewPostRepository(db),
		tags:   repository.NewTagRepository(db),
	}
}

// SetupRoutes configures all routes. The write gate covers the whole posts
// group: GET requests pass through untouched, everything else must present a
// bearer token signed with the shared secret.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	api.Post("/login", s.Login)

	posts := api.Group("/posts", middleware.WriteGate(s.config.JWTSecret))
	posts.Get("/", s.GetPosts)
	posts.Get("/:id", s.GetPost)
	posts.Post("/", s.CreatePost)
	posts.Put("/:id", s.UpdatePost)
	posts.Delete("/:id", s.DeletePost)
}

// App builds the Fiber application with middleware and routes installed.
func (s *Server) App() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "Inkwell Site",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})

	app.Use(requestid.New())
	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "http://localhost:3000",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	s.SetupRoutes(app)
	return app
}

// Start starts the site server.
func (s *Server) Start() error {
	app := s.App()
	log.Printf("Site starting on port %s...", s.config.SitePort)
	return app.Listen(":" + s.config.SitePort)
}

// Shutdown releases the site's database connection.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}
	return nil
}

var now = time.Now
