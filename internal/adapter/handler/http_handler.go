package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/remanmarket/erp-core/internal/core/domain"
	"github.com/remanmarket/erp-core/internal/core/service"
)

// HTTPHandler exposes the store operation set as a JSON API. It stands in
// for the view layer: it only reads snapshots and calls mutating
// operations, never touching store-owned records directly.
type HTTPHandler struct {
	inventory     *service.InventoryService
	cart          *service.Cart
	orders        *service.OrderService
	notifications *service.NotificationLog
	preferences   *service.Preferences
}

func NewHTTPHandler(
	inventory *service.InventoryService,
	cart *service.Cart,
	orders *service.OrderService,
	notifications *service.NotificationLog,
	preferences *service.Preferences,
) *HTTPHandler {
	return &HTTPHandler{
		inventory:     inventory,
		cart:          cart,
		orders:        orders,
		notifications: notifications,
		preferences:   preferences,
	}
}

// Register mounts all routes on mux.
func (h *HTTPHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthCheck)
	mux.HandleFunc("/api/inventory", h.Inventory)
	mux.HandleFunc("/api/inventory/status", h.InventoryStatus)
	mux.HandleFunc("/api/cart", h.Cart)
	mux.HandleFunc("/api/cart/items", h.CartItems)
	mux.HandleFunc("/api/cart/items/", h.CartItemByID)
	mux.HandleFunc("/api/checkout", h.Checkout)
	mux.HandleFunc("/api/orders", h.Orders)
	mux.HandleFunc("/api/orders/", h.OrderByID)
	mux.HandleFunc("/api/orders/status-change", h.RequestStatusChange)
	mux.HandleFunc("/api/orders/status", h.ApplyStatusChange)
	mux.HandleFunc("/api/orders/remove-item", h.RemoveLineItem)
	mux.HandleFunc("/api/notifications", h.Notifications)
	mux.HandleFunc("/api/notifications/read", h.MarkNotificationRead)
	mux.HandleFunc("/api/notifications/read-all", h.MarkAllNotificationsRead)
	mux.HandleFunc("/api/preferences/", h.PreferenceByKey)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *HTTPHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		q := r.URL.Query()
		filter := domain.ItemFilter{
			Query:       q.Get("q"),
			Type:        q.Get("type"),
			Possibility: q.Get("possibility"),
			Location:    q.Get("location"),
			Source:      q.Get("source"),
			Status:      domain.ItemStatus(q.Get("status")),
		}
		items, err := h.inventory.List(r.Context(), filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})

	case http.MethodPost:
		var req struct {
			Name        string  `json:"name"`
			Type        string  `json:"type"`
			Make        string  `json:"make"`
			Family      string  `json:"family"`
			Subcategory string  `json:"subcategory"`
			Possibility string  `json:"possibility"`
			EstPrice    float64 `json:"est_price"`
			Location    string  `json:"location"`
			Source      string  `json:"source"`
			Comment     string  `json:"comment"`
			Remark      string  `json:"remark"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		item, err := h.inventory.Add(r.Context(), domain.InventoryItem{
			Name:        req.Name,
			Type:        req.Type,
			Make:        req.Make,
			Family:      req.Family,
			Subcategory: req.Subcategory,
			Possibility: req.Possibility,
			EstPrice:    decimal.NewFromFloat(req.EstPrice),
			Location:    req.Location,
			Source:      req.Source,
			Comment:     req.Comment,
			Remark:      req.Remark,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, item)

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *HTTPHandler) InventoryStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		IDs    []string `json:"ids"`
		Status string   `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.IDs) == 0 || req.Status == "" {
		writeMessage(w, http.StatusBadRequest, "missing required fields")
		return
	}

	if err := h.inventory.SetStatus(r.Context(), req.IDs, domain.ItemStatus(req.Status)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"updated": len(req.IDs)})
}

func (h *HTTPHandler) Cart(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, map[string]any{
			"lines": h.cart.Lines(),
			"total": h.cart.Total(),
		})
	case http.MethodDelete:
		h.cart.Clear()
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *HTTPHandler) CartItems(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		InventoryID string `json:"inventory_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.InventoryID == "" {
		writeMessage(w, http.StatusBadRequest, "missing inventory_id")
		return
	}

	item, err := h.inventory.Get(r.Context(), req.InventoryID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := h.cart.Add(r.Context(), domain.CartLineFromItem(item)); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"lines": h.cart.Lines()})
}

func (h *HTTPHandler) CartItemByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/cart/items/")
	if id == "" {
		writeMessage(w, http.StatusBadRequest, "missing cart line id")
		return
	}
	if err := h.cart.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type orderResponse struct {
	domain.Order
	Progression string `json:"progression"`
}

func toOrderResponse(o domain.Order) orderResponse {
	return orderResponse{
		Order:       o,
		Progression: domain.StatusProgression(o.Status, o.CancellationReasons),
	}
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		StaffName  string `json:"staff_name"`
		StaffEmail string `json:"staff_email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.Checkout(r.Context(), h.cart, domain.Staff{
		Name:  req.StaffName,
		Email: req.StaffEmail,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrderResponse(order))
}

func (h *HTTPHandler) Orders(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		orders, err := h.orders.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		out := make([]orderResponse, 0, len(orders))
		for _, o := range orders {
			out = append(out, toOrderResponse(o))
		}
		writeJSON(w, http.StatusOK, map[string]any{"orders": out})

	case http.MethodDelete:
		if err := h.orders.ClearAll(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (h *HTTPHandler) OrderByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/api/orders/")
	if id == "" || strings.Contains(id, "/") {
		writeMessage(w, http.StatusBadRequest, "invalid order id")
		return
	}
	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *HTTPHandler) RequestStatusChange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		OrderID   string `json:"order_id"`
		NewStatus string `json:"new_status"`
		Role      string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	change, err := h.orders.RequestStatusChange(r.Context(), req.OrderID,
		domain.OrderStatus(req.NewStatus), domain.Role(req.Role))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, change)
}

func (h *HTTPHandler) ApplyStatusChange(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		OrderID   string   `json:"order_id"`
		NewStatus string   `json:"new_status"`
		Reasons   []string `json:"reasons"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.ApplyStatusChange(r.Context(), req.OrderID,
		domain.OrderStatus(req.NewStatus), req.Reasons)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *HTTPHandler) RemoveLineItem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		OrderID string `json:"order_id"`
		Index   int    `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.orders.RemoveLineItem(r.Context(), req.OrderID, req.Index)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderResponse(order))
}

func (h *HTTPHandler) Notifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"notifications": h.notifications.MostRecent(limit),
		"unread_count":  h.notifications.UnreadCount(),
	})
}

func (h *HTTPHandler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.notifications.MarkRead(req.ID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"unread_count": h.notifications.UnreadCount()})
}

func (h *HTTPHandler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	h.notifications.MarkAllRead()
	writeJSON(w, http.StatusOK, map[string]any{"unread_count": h.notifications.UnreadCount()})
}

func (h *HTTPHandler) PreferenceByKey(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimPrefix(r.URL.Path, "/api/preferences/")
	if key == "" {
		writeMessage(w, http.StatusBadRequest, "missing preference key")
		return
	}

	switch r.Method {
	case http.MethodGet:
		value, err := h.preferences.Flag(r.Context(), key)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": value})

	case http.MethodPut:
		var req struct {
			Value bool `json:"value"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.preferences.SetFlag(r.Context(), key, req.Value); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"key": key, "value": req.Value})

	default:
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusConflict
	case errors.Is(err, service.ErrInvalidState):
		status = http.StatusUnprocessableEntity
	}
	writeMessage(w, status, err.Error())
}
