package tab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"comanda-system/internal/logger"
	"comanda-system/internal/models"
	"comanda-system/internal/services/catalog"
	"comanda-system/internal/services/ordering"
	"comanda-system/internal/services/qrlink"
)

// HealthChecker reports whether the backing services are reachable
type HealthChecker func(ctx context.Context) bool

// Handler exposes the customer and staff HTTP surface of the tab service
type Handler struct {
	ordering *ordering.Service
	catalog  *catalog.Service
	baseURL  string
	health   HealthChecker
	logger   *logger.Logger
}

// NewHandler creates a new tab service handler
func NewHandler(orderingSvc *ordering.Service, catalogSvc *catalog.Service, baseURL string, health HealthChecker, log *logger.Logger) *Handler {
	return &Handler{
		ordering: orderingSvc,
		catalog:  catalogSvc,
		baseURL:  baseURL,
		health:   health,
		logger:   log,
	}
}

// Routes builds the router for the tab service
func (h *Handler) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(h.withLogging)

	r.Get("/health", h.HealthCheck)

	// Customer surface, routed by the cid/mesa deep-link parameters.
	r.Get("/menu", h.GetMenu)
	r.Post("/orders", h.PlaceOrder)
	r.Get("/tab", h.GetTab)

	// Staff surface.
	r.Get("/tables", h.GetPendingTables)
	r.Post("/tables/{mesa}/settle", h.SettleTable)
	r.Get("/tables/{mesa}/qr", h.GetTableQR)
	r.Get("/products", h.ListProducts)
	r.Post("/products", h.AddProduct)
	r.Put("/products/{id}", h.UpdateProduct)
	r.Post("/demo/reset", h.ResetDemo)

	return r
}

// lineView is the JSON shape of one order line
type lineView struct {
	ID          int64  `json:"id"`
	TableID     string `json:"mesa"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
}

// productView is the JSON shape of one catalog entry
type productView struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

// tableTabView is one table's open tab
type tableTabView struct {
	TableID string     `json:"mesa"`
	Lines   []lineView `json:"lines"`
	Total   string     `json:"total"`
}

func toLineView(line models.OrderLine) lineView {
	return lineView{
		ID:          line.ID,
		TableID:     line.TableID,
		ProductName: line.ProductName,
		Price:       line.UnitPrice.StringFixed(2),
		Status:      string(line.Status),
		CreatedAt:   line.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toLineViews(lines []models.OrderLine) []lineView {
	views := make([]lineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, toLineView(line))
	}
	return views
}

// GetMenu handles GET /menu?cid= requests
func (h *Handler) GetMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}

	products, err := h.catalog.ListProducts(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list products", requestID, err, map[string]interface{}{
			"company_id": tenantID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{ID: p.ID, Name: p.Name, Price: p.Price.StringFixed(2)})
	}
	h.writeJSON(w, http.StatusOK, views, requestID)
}

// PlaceOrder handles POST /orders?cid=&mesa= requests
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}
	tableID, ok := h.tableID(w, r.URL.Query().Get(qrlink.ParamTable), requestID)
	if !ok {
		return
	}

	var req models.PlaceOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	if err := req.Validate(); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	line, err := h.ordering.PlaceOrder(ctx, tenantID, tableID, req.ProductID, requestID)
	if err != nil {
		if errors.Is(err, ordering.ErrProductNotFound) {
			h.writeErrorResponse(w, http.StatusNotFound, "Product not found", requestID)
			return
		}
		h.logger.Error("order_failed", "Failed to place order", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"mesa":       tableID,
			"product_id": req.ProductID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, toLineView(*line), requestID)
}

// GetTab handles GET /tab?cid=&mesa= requests, the customer's own tab
func (h *Handler) GetTab(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}
	tableID, ok := h.tableID(w, r.URL.Query().Get(qrlink.ParamTable), requestID)
	if !ok {
		return
	}

	lines, err := h.ordering.TableTab(r.Context(), tenantID, tableID)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to load tab", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"mesa":       tableID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, tableTabView{
		TableID: tableID,
		Lines:   toLineViews(lines),
		Total:   ordering.TabTotal(lines).StringFixed(2),
	}, requestID)
}

// GetPendingTables handles GET /tables?cid= requests, the staff monitor view
func (h *Handler) GetPendingTables(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}

	tables, err := h.ordering.PendingByTable(r.Context(), tenantID)
	if err != nil {
		h.logger.Error("db_query_failed", "Failed to list pending tables", requestID, err, map[string]interface{}{
			"company_id": tenantID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	views := make([]tableTabView, 0, len(tables))
	for tableID, lines := range tables {
		views = append(views, tableTabView{
			TableID: tableID,
			Lines:   toLineViews(lines),
			Total:   ordering.TabTotal(lines).StringFixed(2),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].TableID < views[j].TableID })

	h.writeJSON(w, http.StatusOK, views, requestID)
}

// SettleTable handles POST /tables/{mesa}/settle?cid= requests
func (h *Handler) SettleTable(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}
	tableID, ok := h.tableID(w, chi.URLParam(r, "mesa"), requestID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := h.ordering.SettleTable(ctx, tenantID, tableID, requestID)
	if err != nil {
		h.logger.Error("settle_failed", "Failed to settle table", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"mesa":       tableID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"mesa":          tableID,
		"settled_count": result.SettledCount,
		"total":         result.Total.StringFixed(2),
		"receipt":       result.Receipt,
	}, requestID)
}

// GetTableQR handles GET /tables/{mesa}/qr?cid= requests. The response is a
// downloadable PNG named after the table.
func (h *Handler) GetTableQR(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}
	tableID, ok := h.tableID(w, chi.URLParam(r, "mesa"), requestID)
	if !ok {
		return
	}

	png, err := qrlink.EncodePNG(h.baseURL, tenantID, tableID)
	if err != nil {
		h.logger.Error("qr_encode_failed", "Failed to encode QR code", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"mesa":       tableID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", qrlink.FileName(tableID)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		h.logger.Error("response_write_failed", "Failed to write QR image", requestID, err, nil)
	}
}

// ListProducts handles GET /products?cid= requests (staff catalog view)
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.GetMenu(w, r)
}

// AddProduct handles POST /products?cid= requests
func (h *Handler) AddProduct(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}

	var req models.AddProductRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	price, err := req.Validate()
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	product, err := h.catalog.AddProduct(r.Context(), tenantID, req.Name, price, requestID)
	if err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusCreated, productView{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price.StringFixed(2),
	}, requestID)
}

// UpdateProduct handles PUT /products/{id}?cid= requests. Open tabs keep
// the price their lines were ordered at.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}
	productID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || productID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "product id must be a positive integer", requestID)
		return
	}

	var req models.AddProductRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return
	}
	price, err := req.Validate()
	if err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return
	}

	if err := h.catalog.UpdatePrice(r.Context(), tenantID, productID, price); err != nil {
		h.logger.Error("product_update_failed", "Failed to update product", requestID, err, map[string]interface{}{
			"company_id": tenantID,
			"product_id": productID,
		})
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, productView{
		ID:    productID,
		Name:  req.Name,
		Price: price.StringFixed(2),
	}, requestID)
}

// ResetDemo handles POST /demo/reset?cid= requests
func (h *Handler) ResetDemo(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()

	tenantID, ok := h.tenantID(w, r, requestID)
	if !ok {
		return
	}

	seed := models.DefaultDemoSeed()
	if err := h.catalog.ResetDemoData(r.Context(), tenantID, models.DemoTenantName, seed, requestID); err != nil {
		h.writeErrorResponse(w, http.StatusInternalServerError, "Internal server error", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"seeded": len(seed),
	}, requestID)
}

// HealthCheck handles GET /health requests
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	healthy := h.health == nil || h.health(ctx)

	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "tab-service",
		"healthy":   healthy,
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		response["status"] = "unhealthy"
	}
	h.writeJSON(w, status, response, "")
}

// tenantID reads the cid routing parameter, writing a 400 when it is
// missing or malformed
func (h *Handler) tenantID(w http.ResponseWriter, r *http.Request, requestID string) (int64, bool) {
	raw := r.URL.Query().Get(qrlink.ParamTenant)
	if raw == "" {
		h.writeErrorResponse(w, http.StatusBadRequest, "cid parameter is required", requestID)
		return 0, false
	}
	tenantID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || tenantID <= 0 {
		h.writeErrorResponse(w, http.StatusBadRequest, "cid parameter must be a positive integer", requestID)
		return 0, false
	}
	return tenantID, true
}

// tableID validates the mesa routing parameter, writing a 400 when invalid
func (h *Handler) tableID(w http.ResponseWriter, raw, requestID string) (string, bool) {
	if err := models.ValidateTableID(raw); err != nil {
		h.writeErrorResponse(w, http.StatusBadRequest, err.Error(), requestID)
		return "", false
	}
	return raw, true
}

// writeJSON writes a JSON response
func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("response_encoding_failed", "Failed to encode response", requestID, err, nil)
	}
}

// writeErrorResponse writes an error response in JSON format
func (h *Handler) writeErrorResponse(w http.ResponseWriter, statusCode int, message, requestID string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	}
	json.NewEncoder(w).Encode(errorResponse)
}

// withLogging logs each request with timing
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		h.logger.Debug("http_request", fmt.Sprintf("%s %s", r.Method, r.URL.Path), "", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": r.RemoteAddr,
		})
	})
}
