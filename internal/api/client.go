package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/clothsy/storefront/internal/config"
	"github.com/clothsy/storefront/internal/errors"
	"github.com/clothsy/storefront/internal/metrics"
	"github.com/clothsy/storefront/internal/token"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Client is the storefront's view of the remote REST API, grouped by
// resource the way the pages consume it. It holds no state of its own beyond
// the persisted token it attaches to requests.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	tokens     *token.Store

	Auth       AuthAPI
	Users      UsersAPI
	Products   ProductsAPI
	Categories CategoriesAPI
	Cart       CartAPI
	Wishlist   WishlistAPI
}

func New(cfg *config.API, tokens *token.Store) (*Client, error) {

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, errors.InternalError("Invalid API base URL").WithError(err)
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(metrics.Transport(nil)),
		},
		baseURL: base,
		tokens:  tokens,
	}

	c.Auth = AuthAPI{client: c}
	c.Users = UsersAPI{client: c}
	c.Products = ProductsAPI{client: c}
	c.Categories = CategoriesAPI{client: c}
	c.Cart = CartAPI{client: c}
	c.Wishlist = WishlistAPI{client: c}

	return c, nil
}

// errorEnvelope is the API's error body: {"error": "..."}
type errorEnvelope struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method string, query url.Values, body, out any, segments ...string) error {

	u := c.baseURL.JoinPath(segments...)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return errors.InternalError("Failed to encode request body").WithError(err)
		}

		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return errors.InternalError("Failed to build request").WithError(err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	// the session token travels as a cookie, same as the browser client
	if value, ok := c.tokens.Load(); ok {
		req.AddCookie(&http.Cookie{Name: token.CookieName, Value: value})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.NetworkError("Unable to reach the store").WithError(err)
	}

	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return errors.NetworkError("Failed to read response").WithError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp.StatusCode, data)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.DecodeError("Unexpected response from the store").WithError(err)
		}
	}

	return nil
}

// apiError maps a non-2xx response onto an AppError. Message holds the
// server-provided envelope text and nothing else; a body without an envelope
// leaves it empty so toasts keep the caller's fallback. The status text lands
// in Detail for logs.
func apiError(statusCode int, body []byte) *errors.AppError {

	var message string

	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		message = envelope.Error
	}

	var appErr *errors.AppError

	switch statusCode {
	case http.StatusUnauthorized:
		appErr = errors.UnauthenticatedError(message)
	case http.StatusForbidden:
		appErr = errors.ForbiddenError(message)
	case http.StatusNotFound:
		appErr = errors.NotFoundError(message)
	case http.StatusBadRequest:
		appErr = errors.BadRequestError(message)
	default:
		appErr = errors.APIError(message, statusCode)
	}

	return appErr.WithDetail(http.StatusText(statusCode))
}
