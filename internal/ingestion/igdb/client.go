package igdb

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL  = "https://api.igdb.com/v4"
	DefaultTokenURL = "https://id.twitch.tv/oauth2/token"

	// IGDB allows 4 requests per second per client
	rateLimit = 4
	rateBurst = 4

	maxRetries   = 3
	initialDelay = 1 * time.Second
	maxDelay     = 16 * time.Second

	// refresh the token a little before Twitch expires it
	tokenSlack = time.Minute

	gameFields = "name,summary,cover.url,release_dates.date,platforms.name,genres.name," +
		"involved_companies.developer,involved_companies.publisher," +
		"involved_companies.company.name,involved_companies.company.description," +
		"involved_companies.company.url,involved_companies.company.start_date," +
		"involved_companies.company.logo.url"
)

var ErrNoCredentials = errors.New("igdb: client id and secret are required")

// Searcher is what the importer and the populate pages need from a catalog.
type Searcher interface {
	Search(ctx context.Context, term string, limit int) ([]GameRecord, error)
}

type Options struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	TokenURL     string
	HTTPClient   *http.Client
	Logger       *slog.Logger
	// RetryDelay overrides the first backoff step; tests set it low.
	RetryDelay time.Duration
}

// Client talks to IGDB v4 with rate limiting, retry and Twitch token refresh.
type Client struct {
	clientID     string
	clientSecret string
	baseURL      string
	tokenURL     string
	httpClient   *http.Client
	rateLimiter  *rate.Limiter
	logger       *slog.Logger
	retryDelay   time.Duration

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewClient(opts Options) (*Client, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, ErrNoCredentials
	}
	c := &Client{
		clientID:     opts.ClientID,
		clientSecret: opts.ClientSecret,
		baseURL:      strings.TrimRight(opts.BaseURL, "/"),
		tokenURL:     opts.TokenURL,
		httpClient:   opts.HTTPClient,
		rateLimiter:  rate.NewLimiter(rate.Limit(rateLimit), rateBurst),
		logger:       opts.Logger,
		retryDelay:   opts.RetryDelay,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.tokenURL == "" {
		c.tokenURL = DefaultTokenURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.retryDelay <= 0 {
		c.retryDelay = initialDelay
	}
	return c, nil
}

// Search queries /games. An empty term browses the most rated games that have a cover.
func (c *Client) Search(ctx context.Context, term string, limit int) ([]GameRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 500 {
		limit = 500
	}

	var games []apiGame
	if err := c.doRequest(ctx, "/games", BuildGamesQuery(term, limit), &games); err != nil {
		return nil, fmt.Errorf("failed to search games: %w", err)
	}

	records := make([]GameRecord, 0, len(games))
	for _, g := range games {
		if g.Name == "" {
			continue
		}
		records = append(records, g.toRecord())
	}
	return records, nil
}

// BuildGamesQuery renders the apicalypse body for a /games search.
func BuildGamesQuery(term string, limit int) string {
	var b strings.Builder
	b.WriteString("fields " + gameFields + ";")
	term = strings.TrimSpace(term)
	if term != "" {
		b.WriteString(" search " + strconv.Quote(term) + ";")
	} else {
		// search and sort cannot be combined
		b.WriteString(" where cover != null & involved_companies != null;")
		b.WriteString(" sort total_rating_count desc;")
	}
	fmt.Fprintf(&b, " limit %d;", limit)
	return b.String()
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.expiresAt) {
		return c.token, nil
	}

	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("token request: HTTP %d: %s", resp.StatusCode, body)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("failed to parse token response: %w", err)
	}
	if tok.AccessToken == "" {
		return "", errors.New("token response carried no access_token")
	}

	c.token = tok.AccessToken
	c.expiresAt = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - tokenSlack)
	return c.token, nil
}

func (c *Client) dropToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// doRequest posts an apicalypse body with rate limiting and retry on 429/5xx.
func (c *Client) doRequest(ctx context.Context, endpoint, body string, result any) error {
	var lastErr error
	delay := c.retryDelay
	reauthed := false

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		token, err := c.accessToken(ctx)
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewBufferString(body))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Client-ID", c.clientID)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "text/plain")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			if attempt < maxRetries {
				c.logger.Warn("[IGDB] request failed, retrying",
					"attempt", attempt+1, "max", maxRetries, "delay", delay, "error", err)
				if err := sleep(ctx, delay); err != nil {
					return err
				}
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, err)
		}

		if resp.StatusCode == http.StatusUnauthorized && !reauthed {
			resp.Body.Close()
			c.dropToken()
			reauthed = true
			attempt--
			continue
		}

		if resp.StatusCode != http.StatusOK {
			bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			lastErr = fmt.Errorf("HTTP %d: %s", resp.StatusCode, bodyBytes)

			if shouldRetry(resp.StatusCode) && attempt < maxRetries {
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if secs, err := strconv.Atoi(retryAfter); err == nil {
						delay = time.Duration(secs) * time.Second
					}
				}
				c.logger.Warn("[IGDB] retrying",
					"status", resp.StatusCode, "attempt", attempt+1, "max", maxRetries, "delay", delay)
				if err := sleep(ctx, delay); err != nil {
					return err
				}
				delay = minDuration(delay*2, maxDelay)
				continue
			}
			return lastErr
		}

		err = json.NewDecoder(resp.Body).Decode(result)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		return nil
	}

	return fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, lastErr)
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// shouldRetry determines if an HTTP status code warrants a retry
func shouldRetry(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= 500
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
