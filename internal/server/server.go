package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jask/storefront/internal/database/repository"
	"github.com/jask/storefront/internal/domain"
)

var (
	// ErrProductNotFound is returned for an unknown product id.
	ErrProductNotFound = errors.New("product not found")
	// ErrInvalidOrder is wrapped by every order rejection.
	ErrInvalidOrder = errors.New("invalid order")
)

// OrderError is an order rejection with a reason for the client.
type OrderError struct{ Reason string }

func (e *OrderError) Error() string { return e.Reason }

func (e *OrderError) Unwrap() error { return ErrInvalidOrder }

func reject(format string, args ...any) error {
	return &OrderError{Reason: fmt.Sprintf(format, args...)}
}

// Products is the catalog storage.
type Products interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (domain.Product, error)
	GetMany(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

// Orders is the order storage.
type Orders interface {
	Create(ctx context.Context, o repository.Order) error
}

// OrderNotifier is told about every stored order.
type OrderNotifier interface {
	OrderPlaced(ctx context.Context, o repository.Order) error
}

// Server is the catalog and order HTTP API.
type Server struct {
	products Products
	orders   Orders
	notifier OrderNotifier
	logger   *slog.Logger
	newID    func() string
}

// New builds a Server. notifier may be nil.
func New(products Products, orders Orders, notifier OrderNotifier, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		products: products,
		orders:   orders,
		notifier: notifier,
		logger:   logger,
		newID:    uuid.NewString,
	}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api/weblarek", func(r chi.Router) {
		r.Get("/product/", s.listProducts)
		r.Get("/product/{id}", s.getProduct)
		r.Post("/order/", s.createOrder)
		r.Post("/order", s.createOrder)
	})

	// health
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("api listening", "addr", addr)

	select {
	case err := <-errc:
		return errors.Wrap(err, "listen")
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// productJSON sends the price as a JSON number or null.
type productJSON struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Image       string       `json:"image"`
	Category    string       `json:"category"`
	Price       *json.Number `json:"price"`
}

func toJSON(p domain.Product) productJSON {
	out := productJSON{ID: p.ID, Title: p.Title, Description: p.Description, Image: p.Image, Category: p.Category}
	if p.Priced() {
		n := json.Number(p.Price.Decimal.String())
		out.Price = &n
	}
	return out
}

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.products.List(r.Context())
	if err != nil {
		s.internalError(w, errors.Wrap(err, "list products"))
		return
	}
	items := make([]productJSON, 0, len(products))
	for _, p := range products {
		items = append(items, toJSON(p))
	}
	writeJSON(w, http.StatusOK, struct {
		Total int           `json:"total"`
		Items []productJSON `json:"items"`
	}{Total: len(items), Items: items})
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := s.product(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrProductNotFound) {
		writeError(w, http.StatusNotFound, "NotFound")
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSON(p))
}

func (s *Server) product(ctx context.Context, id string) (domain.Product, error) {
	p, err := s.products.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Product{}, errors.Wrap(ErrProductNotFound, id)
	}
	if err != nil {
		return domain.Product{}, errors.Wrapf(err, "get product %s", id)
	}
	return p, nil
}

type orderRequest struct {
	Payment string          `json:"payment"`
	Email   string          `json:"email"`
	Phone   string          `json:"phone"`
	Address string          `json:"address"`
	Total   decimal.Decimal `json:"total"`
	Items   []string        `json:"items"`
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed order body")
		return
	}

	order, err := s.PlaceOrder(r.Context(), req.toOrder())
	var oe *OrderError
	if errors.As(err, &oe) {
		s.logger.Info("order rejected", "reason", oe.Reason)
		writeError(w, http.StatusBadRequest, oe.Reason)
		return
	}
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, struct {
		ID    string      `json:"id"`
		Total json.Number `json:"total"`
	}{ID: order.ID, Total: json.Number(order.Total.String())})
}

func (req orderRequest) toOrder() repository.Order {
	return repository.Order{
		Customer: domain.Customer{
			Payment: domain.Payment(strings.TrimSpace(req.Payment)),
			Email:   strings.TrimSpace(req.Email),
			Phone:   strings.TrimSpace(req.Phone),
			Address: strings.TrimSpace(req.Address),
		},
		Total: req.Total,
		Items: req.Items,
	}
}

// PlaceOrder validates o against the catalog, stores it under a new id and
// notifies. Rejections are *OrderError.
func (s *Server) PlaceOrder(ctx context.Context, o repository.Order) (repository.Order, error) {
	if err := s.validate(ctx, o); err != nil {
		return repository.Order{}, err
	}
	o.ID = s.newID()
	o.CreatedAt = time.Now().UTC()
	if err := s.orders.Create(ctx, o); err != nil {
		return repository.Order{}, errors.Wrap(err, "store order")
	}
	s.logger.Info("order placed", "id", o.ID, "items", len(o.Items), "total", o.Total.String())
	if s.notifier != nil {
		if err := s.notifier.OrderPlaced(ctx, o); err != nil {
			s.logger.Warn("order notification failed", "id", o.ID, "err", err)
		}
	}
	return o, nil
}

func (s *Server) validate(ctx context.Context, o repository.Order) error {
	c := o.Customer
	switch {
	case !c.Payment.Valid():
		return reject("invalid payment method %q", c.Payment)
	case c.Email == "":
		return reject("email is required")
	case c.Phone == "":
		return reject("phone is required")
	case c.Address == "":
		return reject("address is required")
	case len(o.Items) == 0:
		return reject("no items selected")
	}

	found, err := s.products.GetMany(ctx, o.Items)
	if err != nil {
		return errors.Wrap(err, "load order items")
	}
	sum := decimal.Zero
	for _, id := range o.Items {
		p, ok := found[id]
		if !ok {
			return reject("product %s not found", id)
		}
		if !p.Priced() {
			return reject("product %s is not for sale", id)
		}
		sum = sum.Add(p.Price.Decimal)
	}
	if !sum.Equal(o.Total) {
		return reject("wrong order total: got %s, want %s", o.Total, sum)
	}
	return nil
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed", "err", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
