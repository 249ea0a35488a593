package service_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/config"
	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/testutils"
	"github.com/clothsy/storefront/internal/token"
	"github.com/stretchr/testify/require"
)

type stack struct {
	fake     *testutils.FakeAPI
	tokens   *token.Store
	client   *api.Client
	notifier *testutils.NotifyRecorder
}

func newStack(t *testing.T) *stack {
	t.Helper()

	fake := testutils.NewFakeAPI(t)
	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"), 7*24*time.Hour)

	client, err := api.New(&config.API{BaseURL: fake.Server.URL, Timeout: 5 * time.Second}, tokens)
	require.NoError(t, err)

	return &stack{
		fake:     fake,
		tokens:   tokens,
		client:   client,
		notifier: &testutils.NotifyRecorder{},
	}
}

func floatPtr(v float64) *float64 {
	return &v
}

func testProduct(id string, price float64) models.Product {
	return models.Product{ID: id, Name: "product " + id, Price: price}
}
