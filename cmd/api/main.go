package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/rbaskam/goblog/internal/config"
	"github.com/rbaskam/goblog/internal/db"
	"github.com/rbaskam/goblog/internal/handlers"
	"github.com/rbaskam/goblog/internal/middleware"
	"github.com/rbaskam/goblog/internal/session"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dbConn, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer dbConn.Close()

	if err := db.MigrationsUp(dbConn); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	redisConn, err := session.Connect(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis connect: %v", err)
	}
	defer redisConn.Close()

	sessions := session.NewStore(redisConn, cfg.SessionTTL)
	h := handlers.NewHandler(dbConn, sessions, cfg)
	authmw := middleware.NewAuth(sessions, cfg.AccessSecret)

	r := chi.NewRouter()

	// Public
	r.Post("/register", h.Auth.Register)
	r.Post("/login", h.Auth.Login)
	r.Get("/login", h.Auth.LoginForm)

	// Protected
	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAuth)

		r.Get("/me", h.Auth.Me)
		r.Post("/logout", h.Auth.Logout)

		r.Get("/posts", h.Posts.GetPosts)
		r.Get("/posts/create", h.Posts.CreatePostForm)
		r.Post("/posts", h.Posts.CreatePost)
		r.Get("/posts/{id}", h.Posts.GetPostByID)
		r.Put("/posts/{id}", h.Posts.UpdatePost)
		r.Delete("/posts/{id}", h.Posts.DeletePost)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
