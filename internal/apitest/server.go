// Package apitest is an in-memory storefront API used by tests. It
// implements every endpoint the client consumes, with the same payload
// shapes and error bodies as the real backend, so client and store tests can
// run against a full round trip instead of canned responses.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/storelab/shopfront/internal/domain"
)

type user struct {
	email        string
	fullName     string
	passwordHash []byte
}

type cartLine struct {
	id        int64
	productID int64
	quantity  int
}

// Server holds all state behind the fake API. Safe for concurrent use.
type Server struct {
	mu          sync.RWMutex
	nextID      int64
	products    map[int64]domain.Product
	users       map[string]user     // keyed by email
	tokens      map[string]string   // token -> email
	carts       map[string][]cartLine
	orders      map[string][]domain.Order
	idempotency map[string]int64 // "email\x00key" -> order id

	router chi.Router
}

// NewServer creates an empty fake API.
func NewServer() *Server {
	s := &Server{
		nextID:      1,
		products:    make(map[int64]domain.Product),
		users:       make(map[string]user),
		tokens:      make(map[string]string),
		carts:       make(map[string][]cartLine),
		orders:      make(map[string][]domain.Order),
		idempotency: make(map[string]int64),
	}

	r := chi.NewRouter()
	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)
	r.Get("/products", s.handleListProducts)
	r.Get("/products/{id}", s.handleGetProduct)
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Get("/cart", s.handleGetCart)
		r.Post("/cart/items", s.handleUpsertItem)
		r.Delete("/cart/items/{id}", s.handleRemoveItem)
		r.Delete("/cart", s.handleClearCart)
		r.Post("/checkout", s.handleCheckout)
		r.Get("/orders", s.handleListOrders)
		r.Get("/orders/{id}", s.handleGetOrder)
	})
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SeedProduct adds a catalog entry and returns its id.
func (s *Server) SeedProduct(p domain.Product) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
		s.nextID++
	} else if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	s.products[p.ID] = p
	return p.ID
}

// SeedUser registers an account directly, bypassing the HTTP surface.
func (s *Server) SeedUser(email, password, fullName string) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(fmt.Sprintf("apitest: hash password: %v", err))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[email] = user{email: email, fullName: fullName, passwordHash: hash}
}

// RevokeToken invalidates a previously issued token, simulating server-side
// expiry.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// ---------------------------------------------------------------------------
// Response helpers
// ---------------------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// writeValidation emits the validation-error list shape the client's error
// extraction is tested against.
func writeValidation(w http.ResponseWriter, msgs ...string) {
	details := make([]map[string]string, 0, len(msgs))
	for _, m := range msgs {
		details = append(details, map[string]string{"msg": m})
	}
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"detail": details})
}

// ---------------------------------------------------------------------------
// Auth
// ---------------------------------------------------------------------------

func (s *Server) issueToken(email string) string {
	token := uuid.NewString()
	s.tokens[token] = email
	return token
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var problems []string
	if !strings.Contains(req.Email, "@") {
		problems = append(problems, "value is not a valid email address")
	}
	if len(req.Password) < 8 {
		problems = append(problems, "password must be at least 8 characters")
	}
	if len(problems) > 0 {
		writeValidation(w, problems...)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[req.Email]; exists {
		writeDetail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, "hashing failed")
		return
	}
	s.users[req.Email] = user{email: req.Email, fullName: req.FullName, passwordHash: hash}
	writeJSON(w, http.StatusCreated, domain.TokenResponse{AccessToken: s.issueToken(req.Email), TokenType: "bearer"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	writeJSON(w, http.StatusOK, domain.TokenResponse{AccessToken: s.issueToken(req.Email), TokenType: "bearer"})
}

type contextKey string

const emailKey contextKey = "email"

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		s.mu.RLock()
		email, found := s.tokens[token]
		s.mu.RUnlock()
		if !found {
			writeDetail(w, http.StatusUnauthorized, "Not authenticated")
			return
		}
		next.ServeHTTP(w, r.WithContext(withEmail(r.Context(), email)))
	})
}

// ---------------------------------------------------------------------------
// Catalog
// ---------------------------------------------------------------------------

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// ---------------------------------------------------------------------------
// Cart
// ---------------------------------------------------------------------------

// renderCart materializes the cart view with embedded products and a
// server-computed subtotal. Callers must hold at least a read lock.
func (s *Server) renderCart(email string) domain.Cart {
	cart := domain.Cart{Items: []domain.CartItem{}}
	var cents int64
	for _, line := range s.carts[email] {
		p := s.products[line.productID]
		cart.Items = append(cart.Items, domain.CartItem{
			ID:        line.id,
			Product:   p,
			Quantity:  line.quantity,
			UnitPrice: p.Price,
		})
		cents += parseCents(p.Price) * int64(line.quantity)
	}
	cart.Subtotal = formatCents(cents)
	return cart
}

func (s *Server) handleGetCart(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	writeJSON(w, http.StatusOK, s.renderCart(emailFrom(r.Context())))
}

func (s *Server) handleUpsertItem(w http.ResponseWriter, r *http.Request) {
	var req domain.UpsertItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Quantity < 1 {
		writeValidation(w, "quantity must be greater than or equal to 1")
		return
	}

	email := emailFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[req.ProductID]; !ok {
		writeDetail(w, http.StatusNotFound, "Product not found")
		return
	}

	lines := s.carts[email]
	updated := false
	for i := range lines {
		if lines[i].productID == req.ProductID {
			lines[i].quantity = req.Quantity
			updated = true
			break
		}
	}
	if !updated {
		lines = append(lines, cartLine{id: s.nextID, productID: req.ProductID, quantity: req.Quantity})
		s.nextID++
	}
	s.carts[email] = lines
	writeJSON(w, http.StatusOK, s.renderCart(email))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Cart item not found")
		return
	}

	email := emailFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := s.carts[email]
	for i := range lines {
		if lines[i].id == id {
			s.carts[email] = append(lines[:i], lines[i+1:]...)
			writeJSON(w, http.StatusOK, s.renderCart(email))
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Cart item not found")
}

func (s *Server) handleClearCart(w http.ResponseWriter, r *http.Request) {
	email := emailFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, email)
	writeJSON(w, http.StatusOK, s.renderCart(email))
}

// ---------------------------------------------------------------------------
// Checkout and orders
// ---------------------------------------------------------------------------

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeDetail(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	email := emailFrom(r.Context())
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.IdempotencyKey != "" {
		if orderID, seen := s.idempotency[email+"\x00"+req.IdempotencyKey]; seen {
			for _, o := range s.orders[email] {
				if o.ID == orderID {
					writeJSON(w, http.StatusOK, o)
					return
				}
			}
		}
	}

	cart := s.renderCart(email)
	if len(cart.Items) == 0 {
		writeDetail(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:          s.nextID,
		Status:      domain.OrderStatusConfirmed,
		TotalAmount: cart.Subtotal,
		Currency:    cart.Items[0].Product.Currency,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	for _, item := range cart.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	s.orders[email] = append(s.orders[email], order)
	delete(s.carts, email)
	if req.IdempotencyKey != "" {
		s.idempotency[email+"\x00"+req.IdempotencyKey] = order.ID
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleListOrders(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	orders := s.orders[emailFrom(r.Context())]
	list := make([]domain.Order, len(orders))
	copy(list, orders)
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Order not found")
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.orders[emailFrom(r.Context())] {
		if o.ID == id {
			writeJSON(w, http.StatusOK, o)
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Order not found")
}
