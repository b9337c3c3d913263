package api

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"predecessor-tracker/internal/config"
	"predecessor-tracker/internal/constants"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Client executes GraphQL queries against the Predecessor API. When OAuth2
// client credentials are configured it transparently acquires and caches a
// bearer token, refreshing it shortly before expiry.
type Client struct {
	apiURL string
	logger zerolog.Logger
	client *fasthttp.Client

	oauthTokenURL     string
	oauthClientID     string
	oauthClientSecret string

	tokenMu        sync.Mutex
	accessToken    string
	tokenExpiresAt time.Time
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func NewClient(cfg *config.Config, logger zerolog.Logger) *Client {
	return &Client{
		apiURL:            cfg.APIURL,
		logger:            logger.With().Str("component", "api").Logger(),
		oauthTokenURL:     cfg.OAuthTokenURL,
		oauthClientID:     cfg.OAuthClientID,
		oauthClientSecret: cfg.OAuthClientSecret,
		client: &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         constants.ExternalAPITimeout,
			WriteTimeout:        constants.ExternalAPITimeout,
			MaxIdleConnDuration: 1 * time.Minute,
		},
	}
}

func (c *Client) hasAuth() bool {
	return c.oauthTokenURL != "" && c.oauthClientID != "" && c.oauthClientSecret != ""
}

// getAccessToken returns a valid bearer token, fetching a new one when the
// cached token is within the refresh margin of expiry.
func (c *Client) getAccessToken(ctx context.Context) (string, error) {
	if !c.hasAuth() {
		return "", nil
	}

	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiresAt.Add(-constants.TokenRefreshMargin)) {
		return c.accessToken, nil
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	credentials := base64.StdEncoding.EncodeToString([]byte(c.oauthClientID + ":" + c.oauthClientSecret))

	req.SetRequestURI(c.oauthTokenURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+credentials)
	req.SetBodyString("grant_type=client_credentials")

	if err := c.do(ctx, req, resp); err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	if resp.StatusCode() != fasthttp.StatusOK {
		return "", fmt.Errorf("token request failed: %d", resp.StatusCode())
	}

	var token tokenResponse
	if err := json.Unmarshal(resp.Body(), &token); err != nil {
		return "", fmt.Errorf("token response: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token response missing access_token")
	}

	ttl := constants.DefaultTokenTTL
	if token.ExpiresIn > 0 {
		ttl = time.Duration(token.ExpiresIn) * time.Second
	}
	c.accessToken = token.AccessToken
	c.tokenExpiresAt = time.Now().Add(ttl)

	c.logger.Debug().Dur("ttl", ttl).Msg("access token refreshed")
	return c.accessToken, nil
}

// Query executes a GraphQL query and returns the raw data payload. A non-2xx
// status and a response carrying an errors array are both surfaced as plain
// errors; partial data alongside errors is discarded.
func (c *Client) Query(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.apiURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.SetBody(body)

	token, err := c.getAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	if err := c.do(ctx, req, resp); err != nil {
		return nil, fmt.Errorf("graphql request: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return nil, fmt.Errorf("graphql request failed: %d", resp.StatusCode())
	}

	var result graphQLResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("graphql response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("graphql errors: %s", result.Errors[0].Message)
	}

	return result.Data, nil
}

func (c *Client) do(ctx context.Context, req *fasthttp.Request, resp *fasthttp.Response) error {
	if deadline, ok := ctx.Deadline(); ok {
		return c.client.DoDeadline(req, resp, deadline)
	}
	return c.client.Do(req, resp)
}

func queryInto[T any](ctx context.Context, c *Client, query string, variables map[string]any) (*T, error) {
	data, err := c.Query(ctx, query, variables)
	if err != nil {
		return nil, err
	}
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode graphql data: %w", err)
	}
	return &result, nil
}
