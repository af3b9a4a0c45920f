package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"Product_Catalog/internal/catalogService"
	"Product_Catalog/internal/logger"
	"Product_Catalog/internal/models"

	"github.com/gorilla/mux"
)

// Handler contains the HTTP handlers for the API
type Handler struct {
	catalogService catalogService.CatalogService
	logger         logger.Service
}

// NewHandler creates a new HTTP handler
func NewHandler(
	catalogService catalogService.CatalogService,
	logger logger.Service,
) *Handler {
	return &Handler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// writeJSONResponse writes a JSON response with standard headers including X-Request-ID
func (h *Handler) writeJSONResponse(w http.ResponseWriter, r *http.Request, statusCode int, data interface{}) error {
	logEvent := logger.GetLogEvent(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", logEvent.ProcessID)
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(data)
}

// writeNoContent answers a successful delete
func (h *Handler) writeNoContent(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Request-ID", logger.GetLogEvent(r.Context()).ProcessID)
	w.WriteHeader(http.StatusNoContent)
}

// respond writes data, or the status mapped from err
func (h *Handler) respond(w http.ResponseWriter, r *http.Request, operation string, statusCode int, data interface{}, err error) {
	if err != nil {
		h.writeServiceError(w, r, operation, err)
		return
	}

	if err := h.writeJSONResponse(w, r, statusCode, data); err != nil {
		h.logger.LogError(r.Context(), operation, "", "Failed to encode response", err, models.LogSeverityLow, nil)
	}
}

// writeServiceError maps service errors to statuses; internals are not echoed to clients
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	statusCode := h.getStatusCodeForError(err)

	message := err.Error()
	if statusCode >= http.StatusInternalServerError {
		h.logger.LogError(r.Context(), operation, "", "Request failed", err, models.LogSeverityHigh, nil)
		message = "An unexpected error occurred"
	}

	h.writeErrorResponse(w, r, statusCode, http.StatusText(statusCode), message)
}

// writeErrorResponse writes a standardized error response
func (h *Handler) writeErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, error, message string) {
	response := ErrorResponse{
		Error:     error,
		Message:   message,
		Timestamp: time.Now().UTC(),
	}

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(r.Context(), "response_encoding", "", "Failed to encode error response", err, models.LogSeverityLow, nil)
	}
}

// getStatusCodeForError determines the appropriate HTTP status code for an error
func (h *Handler) getStatusCodeForError(err error) int {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidReference):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

// decodeBody reads a JSON request body into dst
func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	return true
}

// pathID reads a numeric path variable; the router only matches digits
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)[name], 10, 64)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid "+name, err.Error())
		return 0, false
	}
	return id, true
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   "1.0.0",
	}
	statusCode := http.StatusOK

	if err := h.catalogService.Ping(ctx); err != nil {
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Store is unreachable", err, models.LogSeverityHigh, nil)
		response.Status = "unhealthy"
		statusCode = http.StatusServiceUnavailable
	}

	if err := h.writeJSONResponse(w, r, statusCode, response); err != nil {
		h.logger.LogError(ctx, logger.OpHealthCheck, "", "Failed to encode health response", err, models.LogSeverityLow, nil)
		return
	}

	h.logger.LogInfo(ctx, logger.OpHealthCheck, "Health check performed", map[string]interface{}{
		"status": response.Status,
	})
}

// CreateDepartment handles POST /departments
func (h *Handler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var in models.DepartmentCreate
	if !h.decodeBody(w, r, &in) {
		return
	}
	d, err := h.catalogService.CreateDepartment(r.Context(), in)
	h.respond(w, r, logger.OpCreateDepartment, http.StatusCreated, d, err)
}

// ListDepartments handles GET /departments
func (h *Handler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.catalogService.ListDepartments(r.Context())
	h.respond(w, r, "list_departments", http.StatusOK, departments, err)
}

// GetDepartment handles GET /departments/{id}
func (h *Handler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	d, err := h.catalogService.GetDepartment(r.Context(), id)
	h.respond(w, r, "get_department", http.StatusOK, d, err)
}

// DeleteDepartment handles DELETE /departments/{id}
func (h *Handler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := h.catalogService.DeleteDepartment(r.Context(), id)
	h.respondDeleted(w, r, logger.OpDeleteDepartment, "department", id, deleted, err)
}

// CreateCategory handles POST /categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var in models.CategoryCreate
	if !h.decodeBody(w, r, &in) {
		return
	}
	c, err := h.catalogService.CreateCategory(r.Context(), in)
	h.respond(w, r, logger.OpCreateCategory, http.StatusCreated, c, err)
}

// ListCategories handles GET /categories
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.ListCategories(r.Context(), nil)
	h.respond(w, r, "list_categories", http.StatusOK, categories, err)
}

// ListCategoriesByDepartment handles GET /categories/by-department/{department_id}
func (h *Handler) ListCategoriesByDepartment(w http.ResponseWriter, r *http.Request) {
	departmentID, ok := h.pathID(w, r, "department_id")
	if !ok {
		return
	}
	categories, err := h.catalogService.ListCategories(r.Context(), &departmentID)
	h.respond(w, r, "list_categories", http.StatusOK, categories, err)
}

// GetCategory handles GET /categories/{id}
func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	c, err := h.catalogService.GetCategory(r.Context(), id)
	h.respond(w, r, "get_category", http.StatusOK, c, err)
}

// DeleteCategory handles DELETE /categories/{id}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := h.catalogService.DeleteCategory(r.Context(), id)
	h.respondDeleted(w, r, logger.OpDeleteCategory, "category", id, deleted, err)
}

// CreateProduct handles POST /products
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var in models.ProductCreate
	if !h.decodeBody(w, r, &in) {
		return
	}
	p, err := h.catalogService.CreateProduct(r.Context(), in)
	h.respond(w, r, logger.OpCreateProduct, http.StatusCreated, p, err)
}

// ListProducts handles GET /products
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q, err := parseProductQuery(r)
	if err != nil {
		h.writeErrorResponse(w, r, http.StatusBadRequest, "invalid query parameter", err.Error())
		return
	}
	products, err := h.catalogService.ListProducts(r.Context(), q)
	h.respond(w, r, logger.OpListProducts, http.StatusOK, products, err)
}

// GetProduct handles GET /products/{id}
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	p, err := h.catalogService.GetProduct(r.Context(), id)
	h.respond(w, r, logger.OpGetProduct, http.StatusOK, p, err)
}

// UpdateProduct handles PUT /products/{id}; only fields present in the body change
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var in models.ProductUpdate
	if !h.decodeBody(w, r, &in) {
		return
	}
	p, err := h.catalogService.UpdateProduct(r.Context(), id, in)
	h.respond(w, r, logger.OpUpdateProduct, http.StatusOK, p, err)
}

// DeleteProduct handles DELETE /products/{id}
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	deleted, err := h.catalogService.DeleteProduct(r.Context(), id)
	h.respondDeleted(w, r, logger.OpDeleteProduct, "product", id, deleted, err)
}

func (h *Handler) respondDeleted(w http.ResponseWriter, r *http.Request, operation, entity string, id int64, deleted bool, err error) {
	if err != nil {
		h.writeServiceError(w, r, operation, err)
		return
	}
	if !deleted {
		h.writeErrorResponse(w, r, http.StatusNotFound, http.StatusText(http.StatusNotFound), fmt.Sprintf("%s %d: does not exist", entity, id))
		return
	}
	h.writeNoContent(w, r)
}

// AvgPriceByDepartment handles GET /products/summary/avg-price-by-department
func (h *Handler) AvgPriceByDepartment(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.AvgPriceByDepartment(r.Context())
	h.respond(w, r, logger.OpSummaryReport, http.StatusOK, rows, err)
}

// TotalStockByCategory handles GET /products/summary/total-stock-by-category
func (h *Handler) TotalStockByCategory(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.TotalStockByCategory(r.Context())
	h.respond(w, r, logger.OpSummaryReport, http.StatusOK, rows, err)
}

// CountProductsByDepartment handles GET /products/summary/count-by-department
func (h *Handler) CountProductsByDepartment(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.CountProductsByDepartment(r.Context())
	h.respond(w, r, logger.OpSummaryReport, http.StatusOK, rows, err)
}

// TotalValueByDepartment handles GET /products/summary/total-value-by-department
func (h *Handler) TotalValueByDepartment(w http.ResponseWriter, r *http.Request) {
	rows, err := h.catalogService.TotalValueByDepartment(r.Context())
	h.respond(w, r, logger.OpSummaryReport, http.StatusOK, rows, err)
}
