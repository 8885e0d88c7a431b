package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/what2play/api/internal/core/domain"
	"github.com/what2play/api/internal/core/ports"
)

const (
	defaultAPIURL   = "https://api.igdb.com/v4"
	defaultTokenURL = "https://id.twitch.tv/oauth2/token"

	// Refresh the cached app token once it is within this window of expiry.
	tokenExpiryBuffer = 5 * time.Minute

	// Offset range for the random-games sample; IGDB's top-rated slice.
	randomOffsetRange = 150
)

// Client talks to IGDB v4 using a Twitch client-credentials token. The
// token is cached process-wide; concurrent refreshes may race, which is
// fine since any valid token works.
type Client struct {
	clientID     string
	clientSecret string
	apiURL       string
	tokenURL     string
	httpClient   *http.Client

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewClient(clientID, clientSecret string) ports.CatalogClient {
	return &Client{
		clientID:     clientID,
		clientSecret: clientSecret,
		apiURL:       defaultAPIURL,
		tokenURL:     defaultTokenURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.CatalogGame, error) {
	// APIcalypse strings are double-quoted; strip quotes from user input.
	q := strings.ReplaceAll(query, `"`, "")
	body := fmt.Sprintf(`search "%s"; fields id, name, cover.url, first_release_date, summary; limit %d;`, q, limit)
	return c.games(ctx, body)
}

func (c *Client) Random(ctx context.Context, limit int) ([]domain.CatalogGame, error) {
	offset := rand.Intn(randomOffsetRange)
	body := fmt.Sprintf(`fields id, name, cover.url, first_release_date, summary; where rating != null & cover != null; sort rating desc; limit %d; offset %d;`, limit, offset)
	return c.games(ctx, body)
}

type igdbGame struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Cover *struct {
		URL string `json:"url"`
	} `json:"cover"`
	FirstReleaseDate int64  `json:"first_release_date"`
	Summary          string `json:"summary"`
}

func (c *Client) games(ctx context.Context, body string) ([]domain.CatalogGame, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+"/games", strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Client-ID", c.clientID)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrCatalogUnavailable, resp.StatusCode, string(raw))
	}

	var games []igdbGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrCatalogUnavailable, err)
	}

	results := make([]domain.CatalogGame, 0, len(games))
	for _, g := range games {
		results = append(results, domain.CatalogGame{
			IGDBID:      g.ID,
			Title:       g.Name,
			CoverURL:    coverURL(g.Cover),
			ReleaseYear: releaseYear(g.FirstReleaseDate),
			Summary:     optional(g.Summary),
		})
	}
	return results, nil
}

// accessToken returns the cached Twitch token, fetching a new one when
// missing or within the expiry buffer. Refreshing happens outside the
// lock; the stale-check is the only guard.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	token, expiry := c.token, c.tokenExpiry
	c.mu.Unlock()

	if token != "" && time.Now().Before(expiry.Add(-tokenExpiryBuffer)) {
		return token, nil
	}

	params := url.Values{}
	params.Set("client_id", c.clientID)
	params.Set("client_secret", c.clientSecret)
	params.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request failed: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: token request returned status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: failed to decode token response: %v", domain.ErrCatalogUnavailable, err)
	}

	c.mu.Lock()
	c.token = payload.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	c.mu.Unlock()

	return payload.AccessToken, nil
}

// coverURL upgrades IGDB thumbnail URLs to the big cover variant and
// prefixes the scheme IGDB omits.
func coverURL(cover *struct {
	URL string `json:"url"`
}) *string {
	if cover == nil || cover.URL == "" {
		return nil
	}
	u := "https:" + strings.Replace(cover.URL, "t_thumb", "t_cover_big", 1)
	return &u
}

func releaseYear(unixSeconds int64) *int {
	if unixSeconds <= 0 {
		return nil
	}
	year := time.Unix(unixSeconds, 0).UTC().Year()
	return &year
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
