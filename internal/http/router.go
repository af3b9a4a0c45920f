package http

import (
	"context"
	"net/http"
	"time"

	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/ratelimit"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the HTTP server with all dependencies
type Server struct {
	handler *Handler
	logger  logger.Service
	server  *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	addr string,
	handler *Handler,
	logger logger.Service,
	rateLimiter ratelimit.Service,
	readTimeout, writeTimeout time.Duration,
) *Server {
	router := NewRouter(handler, logger, rateLimiter)

	return &Server{
		handler: handler,
		logger:  logger,
		server: &http.Server{
			Addr:         addr,
			Handler:      router,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
	}
}

// NewRouter wires the middleware chain and every route
func NewRouter(handler *Handler, logger logger.Service, rateLimiter ratelimit.Service) *mux.Router {
	router := mux.NewRouter()

	// Order matters: logging -> metrics -> rate limiting -> cors -> recovery
	router.Use(loggingMiddleware(logger))
	router.Use(metricsMiddleware())
	router.Use(rateLimitingMiddleware(rateLimiter, logger))
	router.Use(corsMiddleware())
	router.Use(recoveryMiddleware(logger))

	registerRoutes(router, handler)

	return router
}

// registerRoutes sets up all API routes
func registerRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/health", h.HealthCheck).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/departments", h.CreateDepartment).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/departments", h.ListDepartments).Methods(http.MethodGet)
	router.HandleFunc("/departments/{id:[0-9]+}", h.GetDepartment).Methods(http.MethodGet)
	router.HandleFunc("/departments/{id:[0-9]+}", h.DeleteDepartment).Methods(http.MethodDelete, http.MethodOptions)

	router.HandleFunc("/categories", h.CreateCategory).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/categories", h.ListCategories).Methods(http.MethodGet)
	router.HandleFunc("/categories/by-department/{department_id:[0-9]+}", h.ListCategoriesByDepartment).Methods(http.MethodGet)
	router.HandleFunc("/categories/{id:[0-9]+}", h.GetCategory).Methods(http.MethodGet)
	router.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods(http.MethodDelete, http.MethodOptions)

	summary := router.PathPrefix("/products/summary").Subrouter()
	summary.HandleFunc("/avg-price-by-department", h.AvgPriceByDepartment).Methods(http.MethodGet)
	summary.HandleFunc("/total-stock-by-category", h.TotalStockByCategory).Methods(http.MethodGet)
	summary.HandleFunc("/count-by-department", h.CountProductsByDepartment).Methods(http.MethodGet)
	summary.HandleFunc("/total-value-by-department", h.TotalValueByDepartment).Methods(http.MethodGet)

	router.HandleFunc("/products", h.CreateProduct).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/products", h.ListProducts).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", h.GetProduct).Methods(http.MethodGet)
	router.HandleFunc("/products/{id:[0-9]+}", h.UpdateProduct).Methods(http.MethodPut, http.MethodOptions)
	router.HandleFunc("/products/{id:[0-9]+}", h.DeleteProduct).Methods(http.MethodDelete)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"message":"Product Catalog API","version":"1.0.0","endpoints":["/health","/metrics","/departments","/categories","/products","/products/summary"]}`))
	}).Methods(http.MethodGet)
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.LogInfo(context.Background(), logger.OpServerStart, "Starting HTTP server", map[string]interface{}{
		"addr": s.server.Addr,
	})

	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.LogInfo(ctx, logger.OpServerShutdown, "Shutting down HTTP server", nil)
	return s.server.Shutdown(ctx)
}
