package health

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/clothsy/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	healthHTTP "github.com/hellofresh/health-go/v5/checks/http"
)

func NewHealthHandler(cfg *config.Config) (*health.Health, error) {

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(
			health.Config{
				Name:      "api",
				Timeout:   3 * time.Second,
				SkipOnErr: false,
				Check: healthHTTP.New(healthHTTP.Config{
					URL: cfg.API.BaseURL + "/health",
				}),
			},
			health.Config{
				Name:      "token-store",
				Timeout:   time.Second,
				SkipOnErr: true,
				Check: func(_ context.Context) error {
					dir := filepath.Dir(cfg.Session.TokenPath())
					if err := os.MkdirAll(dir, 0o700); err != nil {
						return fmt.Errorf("token directory unavailable: %w", err)
					}
					return nil
				},
			},
		),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
