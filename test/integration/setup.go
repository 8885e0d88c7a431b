package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	handler "github.com/what2play/api/internal/adapters/handler/http"
	repo "github.com/what2play/api/internal/adapters/repository/postgres"
	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/services"
)

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *http.Client
	Catalog     *stubCatalog
	DBContainer testcontainers.Container
}

// stubCatalog swaps in for the IGDB client so catalog endpoints can be
// exercised without the real upstream.
type stubCatalog struct {
	games []domain.CatalogGame
	err   error
}

func (s *stubCatalog) Search(ctx context.Context, query string, limit int) ([]domain.CatalogGame, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.games, nil
}

func (s *stubCatalog) Random(ctx context.Context, limit int) ([]domain.CatalogGame, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.games, nil
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		content, err := os.ReadFile(filepath.Join(dirPath, entry.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	os.Setenv("JWT_SECRET", "test-secret")

	ctx := context.Background()
	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	require.NoError(t, applyMigrations(db))

	userRepo := repo.NewUserRepository(db)
	authRepo := repo.NewAuthRepository(db)
	pollRepo := repo.NewPollRepository(db)
	gameRepo := repo.NewPollGameRepository(db)
	voteRepo := repo.NewVoteRepository(db)

	catalog := &stubCatalog{}

	authSvc := services.NewAuthService(userRepo, authRepo)
	userSvc := services.NewUserService(userRepo)
	pollSvc := services.NewPollService(pollRepo, gameRepo, userRepo)
	voteSvc := services.NewVoteService(gameRepo, voteRepo)
	historySvc := services.NewHistoryService(pollRepo, voteRepo)

	router := handler.NewHandler(
		handler.NewAuthHandler(authSvc, userSvc, ""),
		handler.NewPollHandler(pollSvc),
		handler.NewVoteHandler(voteSvc),
		handler.NewHistoryHandler(historySvc),
		handler.NewGameHandler(catalog),
		authSvc,
		[]string{"*"},
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Catalog:     catalog,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	app.Server.Close()
	app.DB.Close()
	if err := app.DBContainer.Terminate(context.Background()); err != nil {
		t.Logf("failed to terminate container: %v", err)
	}
}

// signup registers a user through the API and returns the user id plus
// the session cookies from the response.
func (app *TestApp) signup(t *testing.T, username, password string) (string, []*http.Cookie) {
	t.Helper()

	resp := app.postJSON(t, "/api/auth/signup", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var payload struct {
		User struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	require.NotEmpty(t, payload.User.ID)

	return payload.User.ID, resp.Cookies()
}

func (app *TestApp) postJSON(t *testing.T, path string, body interface{}, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(http.MethodPost, app.Server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func (app *TestApp) get(t *testing.T, path string, cookies []*http.Cookie) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, app.Server.URL+path, nil)
	require.NoError(t, err)
	for _, c := range cookies {
		req.AddCookie(c)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func accessCookie(t *testing.T, cookies []*http.Cookie) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == "access_token" {
			return c
		}
	}
	t.Fatal("access_token cookie not set")
	return nil
}

func refreshCookie(t *testing.T, cookies []*http.Cookie) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == "refresh_token" {
			return c
		}
	}
	t.Fatal("refresh_token cookie not set")
	return nil
}
