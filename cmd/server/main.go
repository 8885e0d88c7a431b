package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	stdhttp "net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	handler "github.com/what2play/api/internal/adapters/handler/http"
	"github.com/what2play/api/internal/adapters/catalog/igdb"
	repo "github.com/what2play/api/internal/adapters/repository/postgres"
	"github.com/what2play/api/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := sql.Open("postgres", dbConnString())
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	pollRepo := repo.NewPollRepository(db)
	gameRepo := repo.NewPollGameRepository(db)
	voteRepo := repo.NewVoteRepository(db)

	catalog := igdb.NewClient(os.Getenv("TWITCH_CLIENT_ID"), os.Getenv("TWITCH_CLIENT_SECRET"))

	authSvc := services.NewAuthService(userRepo, authRepo)
	userSvc := services.NewUserService(userRepo)
	pollSvc := services.NewPollService(pollRepo, gameRepo, userRepo)
	voteSvc := services.NewVoteService(gameRepo, voteRepo)
	historySvc := services.NewHistoryService(pollRepo, voteRepo)

	authHandler := handler.NewAuthHandler(authSvc, userSvc, os.Getenv("COOKIE_DOMAIN"))
	pollHandler := handler.NewPollHandler(pollSvc)
	voteHandler := handler.NewVoteHandler(voteSvc)
	historyHandler := handler.NewHistoryHandler(historySvc)
	gameHandler := handler.NewGameHandler(catalog)

	router := handler.NewHandler(
		authHandler, pollHandler, voteHandler, historyHandler, gameHandler,
		authSvc, allowedOrigins(),
	)

	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = "0.0.0.0:8080"
	}
	server := &stdhttp.Server{Addr: addr, Handler: router}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	fmt.Println("Gracefully shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal(err)
	}
}

func allowedOrigins() []string {
	raw := os.Getenv("CORS_ALLOWED_ORIGINS")
	if raw == "" {
		return []string{"*"}
	}
	origins := strings.Split(raw, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	return origins
}

func dbConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_HOST"),
		os.Getenv("POSTGRES_PORT"),
		os.Getenv("POSTGRES_DB"),
	)
}
