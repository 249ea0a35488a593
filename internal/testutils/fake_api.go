package testutils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/token"
	"github.com/gorilla/mux"
)

// FakeAPI is an in-process storefront backend for service tests. State is
// mutated server-side so tests can prove the client refetches instead of
// patching locally.
type FakeAPI struct {
	Server *httptest.Server

	mu         sync.Mutex
	users      map[string]fakeUser // keyed by email
	tokens     map[string]string   // token -> email
	products   []models.Product
	categories []models.Category
	cart       []models.CartItem
	wishlist   []models.WishlistItem
	nextID     int

	// per-route failure switches, all respond 500 {"error": "boom"}
	FailCartGet    bool
	FailCartWrite  bool
	FailWishlist   bool
	FailProducts   bool
	FailCategories bool

	requests atomic.Int64
}

type fakeUser struct {
	user     models.User
	password string
}

func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()

	f := &FakeAPI{
		users:  make(map[string]fakeUser),
		tokens: make(map[string]string),
	}

	router := mux.NewRouter()
	router.Use(f.countRequests)

	router.HandleFunc("/auth/login", f.handleLogin).Methods(http.MethodPost)
	router.HandleFunc("/auth/register", f.handleRegister).Methods(http.MethodPost)
	router.HandleFunc("/auth/profile", f.handleProfile).Methods(http.MethodGet)
	router.HandleFunc("/users/become-seller", f.handleBecomeSeller).Methods(http.MethodPost)
	router.HandleFunc("/products", f.handleListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products", f.handleCreateProduct).Methods(http.MethodPost)
	router.HandleFunc("/categories", f.handleListCategories).Methods(http.MethodGet)
	router.HandleFunc("/cart", f.handleGetCart).Methods(http.MethodGet)
	router.HandleFunc("/cart", f.handleAddCartItem).Methods(http.MethodPost)
	router.HandleFunc("/cart/{id}", f.handleUpdateCartItem).Methods(http.MethodPut)
	router.HandleFunc("/cart/{id}", f.handleRemoveCartItem).Methods(http.MethodDelete)
	router.HandleFunc("/wishlist", f.handleGetWishlist).Methods(http.MethodGet)
	router.HandleFunc("/wishlist", f.handleAddWishlistItem).Methods(http.MethodPost)
	router.HandleFunc("/wishlist/{productID}", f.handleRemoveWishlistItem).Methods(http.MethodDelete)

	f.Server = httptest.NewServer(router)
	t.Cleanup(f.Server.Close)

	return f
}

// Requests is the total number of API calls the fake has seen.
func (f *FakeAPI) Requests() int64 {
	return f.requests.Load()
}

// SeedUser registers an account and returns a token valid for it.
func (f *FakeAPI) SeedUser(user models.User, password string) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.users[user.Email] = fakeUser{user: user, password: password}
	tok := "tok-" + user.Email
	f.tokens[tok] = user.Email

	return tok
}

func (f *FakeAPI) SeedProducts(products ...models.Product) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.products = append(f.products, products...)
}

func (f *FakeAPI) SeedCategories(categories ...models.Category) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.categories = append(f.categories, categories...)
}

// SeedCartItem plants a line directly into the server-side cart.
func (f *FakeAPI) SeedCartItem(item models.CartItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.cart = append(f.cart, item)
}

// CartItems returns a copy of the server-side cart, the "independent fetch"
// the store snapshot must equal.
func (f *FakeAPI) CartItems() []models.CartItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]models.CartItem, len(f.cart))
	copy(items, f.cart)

	return items
}

func (f *FakeAPI) WishlistItems() []models.WishlistItem {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]models.WishlistItem, len(f.wishlist))
	copy(items, f.wishlist)

	return items
}

func (f *FakeAPI) Products() []models.Product {
	f.mu.Lock()
	defer f.mu.Unlock()

	products := make([]models.Product, len(f.products))
	copy(products, f.products)

	return products
}

func (f *FakeAPI) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests.Add(1)
		next.ServeHTTP(w, r)
	})
}

func (f *FakeAPI) authedUser(r *http.Request) (models.User, bool) {
	cookie, err := r.Cookie(token.CookieName)
	if err != nil {
		return models.User{}, false
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	email, ok := f.tokens[cookie.Value]
	if !ok {
		return models.User{}, false
	}

	return f.users[email].user, true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (f *FakeAPI) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req models.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	account, ok := f.users[req.Email]
	f.mu.Unlock()

	if !ok || account.password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")

		return
	}

	tok := "tok-" + req.Email

	f.mu.Lock()
	f.tokens[tok] = req.Email
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, models.AuthResponse{Token: tok, User: account.user})
}

func (f *FakeAPI) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req models.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.users[req.Email]; exists {
		writeError(w, http.StatusConflict, "Email already registered")

		return
	}

	f.nextID++
	user := models.User{
		ID:    fmt.Sprintf("u%d", f.nextID),
		Name:  req.Name,
		Email: req.Email,
		Role:  models.RoleUser,
	}
	f.users[req.Email] = fakeUser{user: user, password: req.Password}

	tok := "tok-" + req.Email
	f.tokens[tok] = req.Email

	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: tok, User: user})
}

func (f *FakeAPI) handleProfile(w http.ResponseWriter, r *http.Request) {

	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	writeJSON(w, http.StatusOK, models.ProfileResponse{User: user})
}

func (f *FakeAPI) handleBecomeSeller(w http.ResponseWriter, r *http.Request) {

	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	f.mu.Lock()
	account := f.users[user.Email]
	account.user.Role = models.RoleSeller
	f.users[user.Email] = account
	updated := account.user
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ProfileResponse{User: updated})
}

func (f *FakeAPI) handleListProducts(w http.ResponseWriter, r *http.Request) {

	if f.FailProducts {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	query := r.URL.Query()

	f.mu.Lock()
	defer f.mu.Unlock()

	var matched []models.Product

	for _, p := range f.products {
		if query.Get("isFeatured") == "true" && !p.IsFeatured {
			continue
		}

		if gender := query.Get("gender"); gender != "" && p.Gender != gender {
			continue
		}

		matched = append(matched, p)
	}

	if limit := query.Get("limit"); limit != "" {
		var n int
		_, _ = fmt.Sscanf(limit, "%d", &n)

		if n > 0 && len(matched) > n {
			matched = matched[:n]
		}
	}

	writeJSON(w, http.StatusOK, models.ProductListResponse{Products: matched, Total: len(matched)})
}

func (f *FakeAPI) handleCreateProduct(w http.ResponseWriter, r *http.Request) {

	user, ok := f.authedUser(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	if user.Role != models.RoleSeller {
		writeError(w, http.StatusForbidden, "Only sellers can create products")

		return
	}

	var req models.CreateProductRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	product := models.Product{
		ID:         fmt.Sprintf("p%d", f.nextID),
		Name:       req.Name,
		Price:      req.Price,
		Stock:      req.Stock,
		CategoryID: req.CategoryID,
		Brand:      req.Brand,
		Gender:     req.Gender,
		ImageURL:   req.ImageDataURL,
		SellerID:   user.ID,
	}
	f.products = append(f.products, product)

	writeJSON(w, http.StatusCreated, product)
}

func (f *FakeAPI) handleListCategories(w http.ResponseWriter, r *http.Request) {

	if f.FailCategories {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	gender := r.URL.Query().Get("gender")

	f.mu.Lock()
	defer f.mu.Unlock()

	matched := []models.Category{}

	for _, c := range f.categories {
		if gender != "" && c.Gender != "" && c.Gender != gender {
			continue
		}

		matched = append(matched, c)
	}

	writeJSON(w, http.StatusOK, matched)
}

func (f *FakeAPI) handleGetCart(w http.ResponseWriter, r *http.Request) {

	if f.FailCartGet {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	writeJSON(w, http.StatusOK, models.CartResponse{Items: f.CartItems()})
}

func (f *FakeAPI) handleAddCartItem(w http.ResponseWriter, r *http.Request) {

	if f.FailCartWrite {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	var req models.AddCartItemRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	var product models.Product

	for _, p := range f.products {
		if p.ID == req.ProductID {
			product = p

			break
		}
	}

	if product.ID == "" {
		writeError(w, http.StatusNotFound, "Product not found")

		return
	}

	// merging with an existing line is the server's call, not the client's
	for i := range f.cart {
		if f.cart[i].ProductID == req.ProductID && f.cart[i].Size == req.Size && f.cart[i].Color == req.Color {
			f.cart[i].Quantity += req.Quantity
			writeJSON(w, http.StatusOK, f.cart[i])

			return
		}
	}

	f.nextID++
	item := models.CartItem{
		ID:        fmt.Sprintf("ci%d", f.nextID),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		Product:   product,
	}
	f.cart = append(f.cart, item)

	writeJSON(w, http.StatusCreated, item)
}

func (f *FakeAPI) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {

	if f.FailCartWrite {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	var req models.UpdateCartItemRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	itemID := mux.Vars(r)["id"]

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.cart {
		if f.cart[i].ID == itemID {
			f.cart[i].Quantity = req.Quantity
			writeJSON(w, http.StatusOK, f.cart[i])

			return
		}
	}

	writeError(w, http.StatusNotFound, "Item not found")
}

func (f *FakeAPI) handleRemoveCartItem(w http.ResponseWriter, r *http.Request) {

	if f.FailCartWrite {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	itemID := mux.Vars(r)["id"]

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.cart {
		if f.cart[i].ID == itemID {
			f.cart = append(f.cart[:i], f.cart[i+1:]...)
			w.WriteHeader(http.StatusNoContent)

			return
		}
	}

	writeError(w, http.StatusNotFound, "Item not found")
}

func (f *FakeAPI) handleGetWishlist(w http.ResponseWriter, r *http.Request) {

	if f.FailWishlist {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	writeJSON(w, http.StatusOK, f.WishlistItems())
}

func (f *FakeAPI) handleAddWishlistItem(w http.ResponseWriter, r *http.Request) {

	if f.FailWishlist {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	var req models.AddWishlistItemRequest
	_ = json.NewDecoder(r.Body).Decode(&req)

	f.mu.Lock()
	defer f.mu.Unlock()

	var product models.Product

	for _, p := range f.products {
		if p.ID == req.ProductID {
			product = p

			break
		}
	}

	f.nextID++
	item := models.WishlistItem{
		ID:        fmt.Sprintf("wi%d", f.nextID),
		ProductID: req.ProductID,
		Product:   product,
	}
	f.wishlist = append(f.wishlist, item)

	writeJSON(w, http.StatusCreated, item)
}

func (f *FakeAPI) handleRemoveWishlistItem(w http.ResponseWriter, r *http.Request) {

	if f.FailWishlist {
		writeError(w, http.StatusInternalServerError, "boom")

		return
	}

	if _, ok := f.authedUser(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid token")

		return
	}

	productID := mux.Vars(r)["productID"]

	f.mu.Lock()
	defer f.mu.Unlock()

	for i := range f.wishlist {
		if f.wishlist[i].ProductID == productID {
			f.wishlist = append(f.wishlist[:i], f.wishlist[i+1:]...)
			w.WriteHeader(http.StatusNoContent)

			return
		}
	}

	writeError(w, http.StatusNotFound, "Item not found")
}
