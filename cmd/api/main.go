package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/reimoyisuki/ToDoList/docs"
	"github.com/reimoyisuki/ToDoList/internal/auth"
	"github.com/reimoyisuki/ToDoList/internal/config"
	"github.com/reimoyisuki/ToDoList/internal/database"
	"github.com/reimoyisuki/ToDoList/internal/group"
	"github.com/reimoyisuki/ToDoList/internal/message"
	"github.com/reimoyisuki/ToDoList/internal/todo"
	"github.com/reimoyisuki/ToDoList/internal/user"
	mw "github.com/reimoyisuki/ToDoList/pkg/middleware"
)

// @title        ToDoList API
// @version      1.0
// @description  Group collaboration backend: users, groups, todos and group chat.
// @BasePath     /api/v1
func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Initialize database connection
	db, err := database.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Println("Connected to database successfully")

	// Token manager shared by the auth service and the auth middleware
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	// User feature
	userRepo := user.NewRepository(db)
	userService := user.NewService(userRepo)
	userHandler := user.NewHandler(userService)

	// Auth feature
	authService := auth.NewService(userRepo, tokens)
	authHandler := auth.NewHandler(authService)

	// Group feature
	groupRepo := group.NewRepository(db)
	groupService := group.NewService(groupRepo, userRepo)
	groupHandler := group.NewHandler(groupService)

	// Todo feature
	todoRepo := todo.NewRepository(db)
	todoService := todo.NewService(todoRepo, groupRepo, userRepo)
	todoHandler := todo.NewHandler(todoService)

	// Message feature
	messageRepo := message.NewRepository(db)
	messageService := message.NewService(messageRepo, groupRepo)
	messageHandler := message.NewHandler(messageService)

	// Repair any membership divergence left behind by earlier writers
	if repaired, err := groupService.Reconcile(context.Background()); err != nil {
		log.Printf("Membership reconciliation failed: %v", err)
	} else if repaired > 0 {
		log.Printf("Membership reconciliation repaired %d references", repaired)
	}

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes())

		// Everything else requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(mw.Auth(tokens))
			r.Use(mw.Activity(userRepo))

			r.Post("/logout", authHandler.Logout)
			r.Mount("/users", userHandler.Routes())
			r.Mount("/groups", groupHandler.Routes())
			r.Mount("/todos", todoHandler.Routes())
			r.Mount("/messages", messageHandler.Routes())
		})
	})

	// Start server
	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
