package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/config"
	appErrors "github.com/clothsy/storefront/internal/errors"
	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, handler http.Handler) (*api.Client, *token.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"), 7*24*time.Hour)

	client, err := api.New(&config.API{BaseURL: server.URL, Timeout: 5 * time.Second}, tokens)
	require.NoError(t, err)

	return client, tokens
}

func TestRequestShape(t *testing.T) {

	var captured *http.Request

	client, tokens := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))

	require.NoError(t, tokens.Save("session-token"))

	_, err := client.Cart.Get(context.Background())
	require.NoError(t, err)

	require.NotNil(t, captured)
	assert.Equal(t, "/cart", captured.URL.Path)
	assert.NotEmpty(t, captured.Header.Get("X-Request-ID"))

	cookie, err := captured.Cookie(token.CookieName)
	require.NoError(t, err)
	assert.Equal(t, "session-token", cookie.Value)
}

func TestNoCookieWithoutToken(t *testing.T) {

	var captured *http.Request

	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = r.Clone(context.Background())
		_, _ = w.Write([]byte(`[]`))
	}))

	_, err := client.Categories.List(context.Background(), "")
	require.NoError(t, err)

	require.NotNil(t, captured)
	_, err = captured.Cookie(token.CookieName)
	assert.Error(t, err, "no token stored means no cookie sent")
}

func TestProductFilterEncoding(t *testing.T) {

	var query string

	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))

	_, err := client.Products.List(context.Background(), models.ProductFilter{
		Gender:     "MEN",
		Limit:      20,
		IsFeatured: true,
	})
	require.NoError(t, err)

	assert.Contains(t, query, "gender=MEN")
	assert.Contains(t, query, "limit=20")
	assert.Contains(t, query, "isFeatured=true")
}

func TestErrorMapping(t *testing.T) {

	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantMsg    string
		wantStatus int
	}{
		{
			name:       "server message in the envelope",
			status:     http.StatusUnauthorized,
			body:       `{"error":"Invalid email or password"}`,
			wantCode:   appErrors.ErrCodeUnauthenticated,
			wantMsg:    "Invalid email or password",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       `{"error":"Product not found"}`,
			wantCode:   appErrors.ErrCodeNotFound,
			wantMsg:    "Product not found",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "missing envelope leaves the message empty",
			status:     http.StatusInternalServerError,
			body:       `not json`,
			wantCode:   appErrors.ErrCodeAPIError,
			wantMsg:    "",
			wantStatus: http.StatusInternalServerError,
		},
		{
			name:       "bad request",
			status:     http.StatusBadRequest,
			body:       `{"error":"Quantity out of stock"}`,
			wantCode:   appErrors.ErrCodeBadRequest,
			wantMsg:    "Quantity out of stock",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			_, err := client.Cart.Get(context.Background())
			require.Error(t, err)

			appErr, ok := appErrors.IsAppError(err)
			require.True(t, ok)
			assert.Equal(t, tc.wantCode, appErr.Code)
			assert.Equal(t, tc.wantMsg, appErr.Message)
			assert.Equal(t, tc.wantStatus, appErr.StatusCode)
			assert.Equal(t, http.StatusText(tc.wantStatus), appErr.Detail)
		})
	}
}

func TestUserMessageUsesEnvelopeOnly(t *testing.T) {

	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{
			name:   "envelope message reaches the toast",
			status: http.StatusUnauthorized,
			body:   `{"error":"Invalid email or password"}`,
			want:   "Invalid email or password",
		},
		{
			name:   "envelope-less body keeps the operation fallback",
			status: http.StatusInternalServerError,
			body:   `<html>oops</html>`,
			want:   "Failed to load your bag",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))

			_, err := client.Cart.Get(context.Background())
			require.Error(t, err)

			assert.Equal(t, tc.want, appErrors.UserMessage(err, "Failed to load your bag"))
		})
	}
}

func TestNetworkError(t *testing.T) {

	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"), time.Hour)

	client, err := api.New(&config.API{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, tokens)
	require.NoError(t, err)

	_, err = client.Cart.Get(context.Background())
	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeNetworkError, appErr.Code)
}

func TestDecodeError(t *testing.T) {

	client, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not valid json`))
	}))

	_, err := client.Cart.Get(context.Background())
	require.Error(t, err)

	appErr, ok := appErrors.IsAppError(err)
	require.True(t, ok)
	assert.Equal(t, appErrors.ErrCodeDecodeError, appErr.Code)
}
