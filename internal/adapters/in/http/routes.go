package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// ListOrdersParams defines parameters for ListOrders.
type ListOrdersParams struct {
	Status *string `form:"status,omitempty" json:"status,omitempty"`
	Sort   *string `form:"sort,omitempty" json:"sort,omitempty"`
	Page   *int    `form:"page,omitempty" json:"page,omitempty"`
	Limit  *int    `form:"limit,omitempty" json:"limit,omitempty"`
}

// ListFeedbackParams defines parameters for ListAllFeedback and ListMyFeedback.
type ListFeedbackParams struct {
	Page  *int `form:"page,omitempty" json:"page,omitempty"`
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /health)
	GetHealth(ctx echo.Context) error

	// (GET /api/v1/cart)
	GetCart(ctx echo.Context) error
	// (DELETE /api/v1/cart)
	ClearCart(ctx echo.Context) error
	// (POST /api/v1/cart/items)
	AddToCart(ctx echo.Context) error
	// (PUT /api/v1/cart/items/{packageId})
	UpdateCartItem(ctx echo.Context, packageID uuid.UUID) error
	// (DELETE /api/v1/cart/items/{packageId})
	RemoveFromCart(ctx echo.Context, packageID uuid.UUID) error

	// (POST /api/v1/orders)
	Checkout(ctx echo.Context) error
	// (GET /api/v1/orders)
	ListOrders(ctx echo.Context, params ListOrdersParams) error
	// (GET /api/v1/orders/{orderId})
	GetOrder(ctx echo.Context, orderID uuid.UUID) error
	// (GET /api/v1/orders/{orderId}/history)
	GetOrderHistory(ctx echo.Context, orderID uuid.UUID) error
	// (PUT /api/v1/orders/{orderId}/status)
	UpdateOrderStatus(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/cancel)
	CancelOrder(ctx echo.Context, orderID uuid.UUID) error
	// (PUT /api/v1/orders/{orderId}/worker)
	AssignWorker(ctx echo.Context, orderID uuid.UUID) error
	// (PUT /api/v1/orders/{orderId}/deliverer)
	AssignDeliverer(ctx echo.Context, orderID uuid.UUID) error

	// (POST /api/v1/orders/{orderId}/payments/card)
	PayByCard(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/orders/{orderId}/payments/cod)
	RequestCashOnDelivery(ctx echo.Context, orderID uuid.UUID) error
	// (GET /api/v1/orders/{orderId}/payment)
	GetPaymentByOrder(ctx echo.Context, orderID uuid.UUID) error
	// (POST /api/v1/payments/{paymentId}/settle)
	SettleCashOnDelivery(ctx echo.Context, paymentID uuid.UUID) error

	// (POST /api/v1/feedback)
	SubmitFeedback(ctx echo.Context) error
	// (GET /api/v1/feedback)
	ListAllFeedback(ctx echo.Context, params ListFeedbackParams) error
	// (GET /api/v1/feedback/mine)
	ListMyFeedback(ctx echo.Context, params ListFeedbackParams) error
	// (GET /api/v1/feedback/{feedbackId})
	GetFeedback(ctx echo.Context, feedbackID uuid.UUID) error
	// (PUT /api/v1/feedback/{feedbackId})
	UpdateFeedback(ctx echo.Context, feedbackID uuid.UUID) error
	// (DELETE /api/v1/feedback/{feedbackId})
	DeleteFeedback(ctx echo.Context, feedbackID uuid.UUID) error
	// (PUT /api/v1/feedback/{feedbackId}/response)
	RespondToFeedback(ctx echo.Context, feedbackID uuid.UUID) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func bindPathID(ctx echo.Context, name string) (uuid.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return id, nil
}

func bindQueryParam(ctx echo.Context, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), dest); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter %s: %s", name, err))
	}
	return nil
}

func (w *ServerInterfaceWrapper) withPathID(name string, next func(echo.Context, uuid.UUID) error) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id, err := bindPathID(ctx, name)
		if err != nil {
			return err
		}
		return next(ctx, id)
	}
}

// ListOrders converts echo context to params.
func (w *ServerInterfaceWrapper) ListOrders(ctx echo.Context) error {
	var params ListOrdersParams
	if err := bindQueryParam(ctx, "status", &params.Status); err != nil {
		return err
	}
	if err := bindQueryParam(ctx, "sort", &params.Sort); err != nil {
		return err
	}
	if err := bindQueryParam(ctx, "page", &params.Page); err != nil {
		return err
	}
	if err := bindQueryParam(ctx, "limit", &params.Limit); err != nil {
		return err
	}
	return w.Handler.ListOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) feedbackParams(ctx echo.Context) (ListFeedbackParams, error) {
	var params ListFeedbackParams
	if err := bindQueryParam(ctx, "page", &params.Page); err != nil {
		return params, err
	}
	if err := bindQueryParam(ctx, "limit", &params.Limit); err != nil {
		return params, err
	}
	return params, nil
}

// ListAllFeedback converts echo context to params.
func (w *ServerInterfaceWrapper) ListAllFeedback(ctx echo.Context) error {
	params, err := w.feedbackParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListAllFeedback(ctx, params)
}

// ListMyFeedback converts echo context to params.
func (w *ServerInterfaceWrapper) ListMyFeedback(ctx echo.Context) error {
	params, err := w.feedbackParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.ListMyFeedback(ctx, params)
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each API route to router. Paths are relative to
// the /api/v1 prefix of the router.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	w := ServerInterfaceWrapper{Handler: si}

	router.GET("/cart", si.GetCart)
	router.DELETE("/cart", si.ClearCart)
	router.POST("/cart/items", si.AddToCart)
	router.PUT("/cart/items/:packageId", w.withPathID("packageId", si.UpdateCartItem))
	router.DELETE("/cart/items/:packageId", w.withPathID("packageId", si.RemoveFromCart))

	router.POST("/orders", si.Checkout)
	router.GET("/orders", w.ListOrders)
	router.GET("/orders/:orderId", w.withPathID("orderId", si.GetOrder))
	router.GET("/orders/:orderId/history", w.withPathID("orderId", si.GetOrderHistory))
	router.PUT("/orders/:orderId/status", w.withPathID("orderId", si.UpdateOrderStatus))
	router.POST("/orders/:orderId/cancel", w.withPathID("orderId", si.CancelOrder))
	router.PUT("/orders/:orderId/worker", w.withPathID("orderId", si.AssignWorker))
	router.PUT("/orders/:orderId/deliverer", w.withPathID("orderId", si.AssignDeliverer))

	router.POST("/orders/:orderId/payments/card", w.withPathID("orderId", si.PayByCard))
	router.POST("/orders/:orderId/payments/cod", w.withPathID("orderId", si.RequestCashOnDelivery))
	router.GET("/orders/:orderId/payment", w.withPathID("orderId", si.GetPaymentByOrder))
	router.POST("/payments/:paymentId/settle", w.withPathID("paymentId", si.SettleCashOnDelivery))

	router.POST("/feedback", si.SubmitFeedback)
	router.GET("/feedback", w.ListAllFeedback)
	router.GET("/feedback/mine", w.ListMyFeedback)
	router.GET("/feedback/:feedbackId", w.withPathID("feedbackId", si.GetFeedback))
	router.PUT("/feedback/:feedbackId", w.withPathID("feedbackId", si.UpdateFeedback))
	router.DELETE("/feedback/:feedbackId", w.withPathID("feedbackId", si.DeleteFeedback))
	router.PUT("/feedback/:feedbackId/response", w.withPathID("feedbackId", si.RespondToFeedback))
}
