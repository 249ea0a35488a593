package api

import (
	"context"
	"net/http"

	"github.com/clothsy/storefront/internal/models"
)

// AuthAPI covers login, registration and the profile endpoint.
type AuthAPI struct {
	client *Client
}

func (a AuthAPI) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {

	var resp models.AuthResponse
	if err := a.client.do(ctx, http.MethodPost, nil, req, &resp, "auth", "login"); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (a AuthAPI) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {

	var resp models.AuthResponse
	if err := a.client.do(ctx, http.MethodPost, nil, req, &resp, "auth", "register"); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (a AuthAPI) Profile(ctx context.Context) (*models.User, error) {

	var resp models.ProfileResponse
	if err := a.client.do(ctx, http.MethodGet, nil, nil, &resp, "auth", "profile"); err != nil {
		return nil, err
	}

	return &resp.User, nil
}

// UsersAPI covers account-level operations beyond authentication.
type UsersAPI struct {
	client *Client
}

// BecomeSeller upgrades the current account's role. The response carries the
// updated user record.
func (u UsersAPI) BecomeSeller(ctx context.Context) (*models.User, error) {

	var resp models.ProfileResponse
	if err := u.client.do(ctx, http.MethodPost, nil, nil, &resp, "users", "become-seller"); err != nil {
		return nil, err
	}

	return &resp.User, nil
}
