package blv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/nutrimcp/backend/internal/domain"
)

// DefaultBaseURL is the public endpoint of the Swiss Food Composition Database API
const DefaultBaseURL = "https://api.webapp.prod.blv.foodcase-services.com/BLV_WebApp_WS/webresources/BLV-api"

const (
	defaultSearchLimit = 20
	maxErrorBodyLen    = 256
)

// Config holds the client settings
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
	// MaxRetries is the number of extra attempts for transport failures and 5xx responses.
	MaxRetries     uint
	InitialBackoff time.Duration
}

// Client handles communication with the Swiss nutrition database API
type Client struct {
	httpClient     *http.Client
	baseURL        string
	rateLimiter    *rate.Limiter
	maxRetries     uint
	initialBackoff time.Duration
	logger         zerolog.Logger
}

var _ domain.NutritionDataSource = (*Client)(nil)

// NewClient creates a new nutrition database client
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 10
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 20
	}
	if cfg.InitialBackoff <= 0 {
		cfg.InitialBackoff = 500 * time.Millisecond
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		maxRetries:     cfg.MaxRetries,
		initialBackoff: cfg.InitialBackoff,
		logger:         logger.With().Str("component", "blv").Logger(),
	}
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "nutrimcp/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	return resp, nil
}

// getJSON fetches path and decodes the JSON body into out. Transport errors and
// 5xx responses are retried with exponential backoff; 404 maps to ErrNotFound.
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	attempt := 0
	fetch := func() ([]byte, error) {
		attempt++
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, backoff.Permanent(fmt.Errorf("rate limiter error: %w", err))
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			c.logger.Warn().Err(err).Str("path", path).Int("attempt", attempt).Msg("request failed")
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("%w: reading response: %w", domain.ErrUpstream, err)
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			return body, nil
		case resp.StatusCode == http.StatusNotFound:
			return nil, backoff.Permanent(fmt.Errorf("%w: %s", domain.ErrNotFound, path))
		case resp.StatusCode >= 500:
			c.logger.Warn().Str("path", path).Int("status", resp.StatusCode).Int("attempt", attempt).Msg("upstream server error")
			return nil, apiError(resp.StatusCode, body)
		default:
			return nil, backoff.Permanent(apiError(resp.StatusCode, body))
		}
	}

	expBackoff := backoff.NewExponentialBackOff()
	expBackoff.InitialInterval = c.initialBackoff

	body, err := backoff.Retry(ctx, fetch,
		backoff.WithBackOff(expBackoff),
		backoff.WithMaxTries(c.maxRetries+1),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
			return fmt.Errorf("%w: %w", domain.ErrUpstream, ctxErr)
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		c.logger.Error().Err(err).Str("path", path).Msg("failed to decode response")
		return fmt.Errorf("%w: failed to decode response: %w", domain.ErrUpstream, err)
	}

	c.logger.Debug().Str("path", path).Int("attempts", attempt).Msg("request completed")
	return nil
}

// apiError builds an upstream error from a non-200 response, preferring the
// API's own message field over the raw body.
func apiError(status int, body []byte) error {
	message := gjson.GetBytes(body, "message").String()
	if message == "" {
		message = strings.TrimSpace(string(body))
		if len(message) > maxErrorBodyLen {
			message = message[:maxErrorBodyLen]
		}
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return fmt.Errorf("%w: Swiss Nutrition API error (%d): %s", domain.ErrUpstream, status, message)
}

func langParams(lang domain.Language) url.Values {
	if lang == "" {
		lang = domain.DefaultLanguage
	}
	return url.Values{"lang": {string(lang)}}
}

// ListComponentSets returns every component set
func (c *Client) ListComponentSets(ctx context.Context, lang domain.Language) ([]domain.ComponentSet, error) {
	var sets []domain.ComponentSet
	if err := c.getJSON(ctx, "/sets", langParams(lang), &sets); err != nil {
		return nil, err
	}
	return sets, nil
}

// ListComponents returns every component
func (c *Client) ListComponents(ctx context.Context, lang domain.Language) ([]domain.Component, error) {
	var components []domain.Component
	if err := c.getJSON(ctx, "/components", langParams(lang), &components); err != nil {
		return nil, err
	}
	return components, nil
}

// TranslateFoodIdentifier returns the DBID of the food with the given public ID
func (c *Client) TranslateFoodIdentifier(ctx context.Context, publicID int) (int, error) {
	var dbid int
	if err := c.getJSON(ctx, "/fooddbid/"+strconv.Itoa(publicID), nil, &dbid); err != nil {
		return 0, err
	}
	return dbid, nil
}

// GetFood returns a food by DBID
func (c *Client) GetFood(ctx context.Context, dbid int, lang domain.Language) (*domain.Food, error) {
	var food domain.Food
	if err := c.getJSON(ctx, "/food/"+strconv.Itoa(dbid), langParams(lang), &food); err != nil {
		return nil, err
	}
	return &food, nil
}

// GetNutrientValues returns the values of a food for one component set
func (c *Client) GetNutrientValues(ctx context.Context, dbid, componentSetID int, lang domain.Language) ([]domain.NutrientValue, error) {
	params := langParams(lang)
	params.Set("DBID", strconv.Itoa(dbid))
	params.Set("componentsetid", strconv.Itoa(componentSetID))

	var dtos []valueDTO
	if err := c.getJSON(ctx, "/values", params, &dtos); err != nil {
		return nil, err
	}
	values, err := mapValues(dtos)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUpstream, err)
	}
	return values, nil
}

// GetIngredients returns the ingredients of a recipe
func (c *Client) GetIngredients(ctx context.Context, dbid int, lang domain.Language) ([]domain.RecipeIngredient, error) {
	params := langParams(lang)
	params.Set("DBID", strconv.Itoa(dbid))

	var ingredients []domain.RecipeIngredient
	if err := c.getJSON(ctx, "/ingredients", params, &ingredients); err != nil {
		return nil, err
	}
	return ingredients, nil
}

// SearchFoods searches foods by name and filters
func (c *Client) SearchFoods(ctx context.Context, req domain.SearchRequest) ([]domain.FoodSummary, error) {
	var foods []domain.FoodSummary
	if err := c.getJSON(ctx, "/foods", searchParams(req), &foods); err != nil {
		return nil, err
	}
	return foods, nil
}

// CategorizedFoods counts the foods matching a search per category
func (c *Client) CategorizedFoods(ctx context.Context, req domain.SearchRequest) ([]domain.CategoryCount, error) {
	var counts []domain.CategoryCount
	if err := c.getJSON(ctx, "/categorizedfoods", searchParams(req), &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// TopCategories returns the top level categories
func (c *Client) TopCategories(ctx context.Context, lang domain.Language) ([]domain.TopCategory, error) {
	var categories []domain.TopCategory
	if err := c.getJSON(ctx, "/topcategories", langParams(lang), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Subcategories returns the subcategories of a top level category
func (c *Client) Subcategories(ctx context.Context, categoryID int, lang domain.Language) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.getJSON(ctx, "/subcategories/"+strconv.Itoa(categoryID), langParams(lang), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// DatabaseVersion returns the release of the upstream database
func (c *Client) DatabaseVersion(ctx context.Context) (*domain.DatabaseVersion, error) {
	var version domain.DatabaseVersion
	if err := c.getJSON(ctx, "/versiondb", nil, &version); err != nil {
		return nil, err
	}
	return &version, nil
}

func searchParams(req domain.SearchRequest) url.Values {
	params := langParams(req.Language)
	if req.Query != "" {
		params.Set("search", req.Query)
	}
	if req.Generic != nil {
		params.Set("type", strconv.FormatBool(*req.Generic))
	}
	if req.Category > 0 {
		params.Set("category", strconv.Itoa(req.Category))
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(max(req.Offset, 0)))
	return params
}
