package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/proshop/backend/app/helpers"
	"github.com/proshop/backend/app/services"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type OrderHandler struct {
	orderSvc  *services.OrderService
	render    *render.Render
	validator *validator.Validate
}

func NewOrderHandler(orderSvc *services.OrderService, rnd *render.Render, v *validator.Validate) *OrderHandler {
	return &OrderHandler{orderSvc: orderSvc, render: rnd, validator: v}
}

type orderItemPayload struct {
	Product string `json:"product" validate:"required"`
	Qty     int    `json:"qty" validate:"required,gt=0"`
}

type shippingAddressPayload struct {
	Address    string `json:"address" validate:"required"`
	City       string `json:"city" validate:"required"`
	PostalCode string `json:"postalCode" validate:"required"`
	Country    string `json:"country" validate:"required"`
}

type placeOrderPayload struct {
	OrderItems      []orderItemPayload     `json:"orderItems" validate:"dive"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
	TaxPrice        decimal.Decimal        `json:"taxPrice"`
	ShippingPrice   decimal.Decimal        `json:"shippingPrice"`
	TotalPrice      decimal.Decimal        `json:"totalPrice"`
	ShippingAddress shippingAddressPayload `json:"shippingAddress" validate:"required"`
}

// PlaceOrder handles POST /api/orders (authenticated).
func (h *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromRequest(r)

	var payload placeOrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		detail(h.render, w, http.StatusBadRequest, "Invalid request body")
		return
	}
	// The empty-items case is a domain error with its own message, so the
	// validator only covers field-level requirements.
	if len(payload.OrderItems) > 0 {
		if err := h.validator.Struct(payload); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) {
				_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"detail": "Validation failed", "errors": helpers.FormatValidationErrors(verrs)})
				return
			}
			detail(h.render, w, http.StatusBadRequest, "Validation failed")
			return
		}
	}

	items := make([]services.OrderItemInput, 0, len(payload.OrderItems))
	for _, item := range payload.OrderItems {
		items = append(items, services.OrderItemInput{ProductID: item.Product, Qty: item.Qty})
	}

	order, err := h.orderSvc.PlaceOrder(r.Context(), user.ID, services.PlaceOrderInput{
		OrderItems:    items,
		PaymentMethod: payload.PaymentMethod,
		TaxPrice:      payload.TaxPrice,
		ShippingPrice: payload.ShippingPrice,
		TotalPrice:    payload.TotalPrice,
		ShippingAddress: services.ShippingAddressInput{
			Address:    payload.ShippingAddress.Address,
			City:       payload.ShippingAddress.City,
			PostalCode: payload.ShippingAddress.PostalCode,
			Country:    payload.ShippingAddress.Country,
		},
	})
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

// MyOrders handles GET /api/orders/myorders (authenticated).
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromRequest(r)

	orders, err := h.orderSvc.MyOrders(r.Context(), user.ID)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

// Orders handles GET /api/orders (admin).
func (h *OrderHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderSvc.AllOrders(r.Context())
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, orders)
}

// OrderDetail handles GET /api/orders/{id}: owner or admin only.
func (h *OrderHandler) OrderDetail(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	user := helpers.UserFromRequest(r)

	order, err := h.orderSvc.GetOrderForUser(r.Context(), id, user)
	if err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	_ = h.render.JSON(w, http.StatusOK, order)
}

// Pay handles PUT /api/orders/{id}/pay. Any authenticated caller may mark an
// order paid; ownership is deliberately not checked here.
func (h *OrderHandler) Pay(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := h.orderSvc.MarkPaid(r.Context(), id); err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	detail(h.render, w, http.StatusOK, "Order was paid")
}

// Deliver handles PUT /api/orders/{id}/deliver (admin).
func (h *OrderHandler) Deliver(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if _, err := h.orderSvc.MarkDelivered(r.Context(), id); err != nil {
		writeDomainError(h.render, w, err)
		return
	}
	detail(h.render, w, http.StatusOK, "Order was delivered")
}
