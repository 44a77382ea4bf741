package http

import (
	"net/http"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

var _ ServerInterface = (*Server)(nil)

// Server implements ServerInterface by translating requests into commands
// and queries. Authorization happens in the use cases, not here.
type Server struct {
	// Command handlers
	addToCart      commands.AddToCartCommandHandler
	updateCartItem commands.UpdateCartItemCommandHandler
	removeFromCart commands.RemoveFromCartCommandHandler
	checkout       commands.CheckoutCommandHandler
	advanceStatus  commands.AdvanceOrderStatusCommandHandler
	cancelOrder    commands.CancelOrderCommandHandler
	assignStaff    commands.AssignStaffCommandHandler
	payOrder       commands.PayOrderCommandHandler
	requestCOD     commands.RequestCashOnDeliveryCommandHandler
	settleCOD      commands.SettleCashOnDeliveryCommandHandler
	submitFeedback commands.SubmitFeedbackCommandHandler
	manageFeedback commands.ManageFeedbackCommandHandler

	// Query handlers
	getCart         queries.GetCartQueryHandler
	getOrder        queries.GetOrderQueryHandler
	listOrders      queries.ListOrdersQueryHandler
	getPayment      queries.GetPaymentByOrderQueryHandler
	feedbackQueries queries.FeedbackQueryHandler
}

// Handlers groups the use cases the server delegates to.
type Handlers struct {
	AddToCart       commands.AddToCartCommandHandler
	UpdateCartItem  commands.UpdateCartItemCommandHandler
	RemoveFromCart  commands.RemoveFromCartCommandHandler
	Checkout        commands.CheckoutCommandHandler
	AdvanceStatus   commands.AdvanceOrderStatusCommandHandler
	CancelOrder     commands.CancelOrderCommandHandler
	AssignStaff     commands.AssignStaffCommandHandler
	PayOrder        commands.PayOrderCommandHandler
	RequestCOD      commands.RequestCashOnDeliveryCommandHandler
	SettleCOD       commands.SettleCashOnDeliveryCommandHandler
	SubmitFeedback  commands.SubmitFeedbackCommandHandler
	ManageFeedback  commands.ManageFeedbackCommandHandler
	GetCart         queries.GetCartQueryHandler
	GetOrder        queries.GetOrderQueryHandler
	ListOrders      queries.ListOrdersQueryHandler
	GetPayment      queries.GetPaymentByOrderQueryHandler
	FeedbackQueries queries.FeedbackQueryHandler
}

func NewServer(h Handlers) *Server {
	return &Server{
		addToCart:       h.AddToCart,
		updateCartItem:  h.UpdateCartItem,
		removeFromCart:  h.RemoveFromCart,
		checkout:        h.Checkout,
		advanceStatus:   h.AdvanceStatus,
		cancelOrder:     h.CancelOrder,
		assignStaff:     h.AssignStaff,
		payOrder:        h.PayOrder,
		requestCOD:      h.RequestCOD,
		settleCOD:       h.SettleCOD,
		submitFeedback:  h.SubmitFeedback,
		manageFeedback:  h.ManageFeedback,
		getCart:         h.GetCart,
		getOrder:        h.GetOrder,
		listOrders:      h.ListOrders,
		getPayment:      h.GetPayment,
		feedbackQueries: h.FeedbackQueries,
	}
}

func toKernelID(name string, id uuid.UUID) (kernel.UUID, error) {
	kid, err := kernel.UUIDFromBytes(id[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kid, nil
}

func parseKernelID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if err = id.Validate(); err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func bindBody(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return nil
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(c echo.Context) error {
	query, err := queries.NewGetCartQuery(actorFrom(c))
	if err != nil {
		return err
	}
	return s.renderCart(c, query)
}

func (s *Server) renderCart(c echo.Context, query queries.GetCartQuery) error {
	view, err := s.getCart.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toCartResponse(view))
}

// renderCartOf answers cart mutations with the priced cart of actor.
func (s *Server) renderCartOf(c echo.Context, actor identity.Actor) error {
	query, err := queries.NewGetCartQuery(actor)
	if err != nil {
		return err
	}
	return s.renderCart(c, query)
}

// AddToCart handles POST /api/v1/cart/items.
func (s *Server) AddToCart(c echo.Context) error {
	var body AddCartItemRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	packageID, err := parseKernelID("packageId", body.PackageID)
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewAddToCartCommand(actor, packageID, body.Quantity)
	if err != nil {
		return err
	}
	if _, err = s.addToCart.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderCartOf(c, actor)
}

// UpdateCartItem handles PUT /api/v1/cart/items/{packageId}.
func (s *Server) UpdateCartItem(c echo.Context, packageID uuid.UUID) error {
	var body UpdateCartItemRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	id, err := toKernelID("packageId", packageID)
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewUpdateCartItemCommand(actor, id, body.Quantity)
	if err != nil {
		return err
	}
	if _, err = s.updateCartItem.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderCartOf(c, actor)
}

// RemoveFromCart handles DELETE /api/v1/cart/items/{packageId}.
func (s *Server) RemoveFromCart(c echo.Context, packageID uuid.UUID) error {
	id, err := toKernelID("packageId", packageID)
	if err != nil {
		return err
	}

	actor := actorFrom(c)
	cmd, err := commands.NewRemoveFromCartCommand(actor, id)
	if err != nil {
		return err
	}
	if _, err = s.removeFromCart.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderCartOf(c, actor)
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(c echo.Context) error {
	actor := actorFrom(c)
	cmd, err := commands.NewClearCartCommand(actor)
	if err != nil {
		return err
	}
	if _, err = s.removeFromCart.HandleClear(c.Request().Context(), cmd); err != nil {
		return err
	}
	return s.renderCartOf(c, actor)
}

// Checkout handles POST /api/v1/orders.
func (s *Server) Checkout(c echo.Context) error {
	var body CheckoutRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}

	address, err := kernel.NewAddress(
		body.Address.Street, body.Address.City, body.Address.State, body.Address.ZipCode, body.Address.Country,
	)
	if err != nil {
		return err
	}
	delivery, err := order.NewDeliveryInfo(body.PickupDate, body.DeliveryDate, address, body.SpecialInstructions)
	if err != nil {
		return err
	}
	var method order.PaymentMethod
	if body.PaymentMethod != "" {
		if method, err = order.ParsePaymentMethod(body.PaymentMethod); err != nil {
			return err
		}
	}

	cmd, err := commands.NewCheckoutCommand(actorFrom(c), kernel.NewUUID(), delivery, method)
	if err != nil {
		return err
	}
	o, err := s.checkout.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toOrderResponse(o))
}

// ListOrders handles GET /api/v1/orders.
func (s *Server) ListOrders(c echo.Context, params ListOrdersParams) error {
	query, err := queries.NewListOrdersQuery(
		actorFrom(c), deref(params.Status), deref(params.Sort), deref(params.Page), deref(params.Limit),
	)
	if err != nil {
		return err
	}

	result, err := s.listOrders.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := OrderListResponse{
		Orders:     make([]OrderResponse, 0, len(result.Orders)),
		Pagination: toPaginationResponse(result.Pagination),
	}
	for _, o := range result.Orders {
		resp.Orders = append(resp.Orders, toSummaryResponse(o))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(c echo.Context, orderID uuid.UUID) error {
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(actorFrom(c), id)
	if err != nil {
		return err
	}

	view, err := s.getOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderViewResponse(view))
}

// GetOrderHistory handles GET /api/v1/orders/{orderId}/history.
func (s *Server) GetOrderHistory(c echo.Context, orderID uuid.UUID) error {
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderHistoryQuery(actorFrom(c), id)
	if err != nil {
		return err
	}

	history, err := s.getOrder.HandleHistory(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toHistoryResponse(history))
}

// UpdateOrderStatus handles PUT /api/v1/orders/{orderId}/status.
func (s *Server) UpdateOrderStatus(c echo.Context, orderID uuid.UUID) error {
	var body UpdateStatusRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAdvanceOrderStatusCommand(actorFrom(c), id, body.Status)
	if err != nil {
		return err
	}
	o, err := s.advanceStatus.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(c echo.Context, orderID uuid.UUID) error {
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewCancelOrderCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	o, err := s.cancelOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// AssignWorker handles PUT /api/v1/orders/{orderId}/worker.
func (s *Server) AssignWorker(c echo.Context, orderID uuid.UUID) error {
	return s.assign(c, orderID, identity.RoleWorker)
}

// AssignDeliverer handles PUT /api/v1/orders/{orderId}/deliverer.
func (s *Server) AssignDeliverer(c echo.Context, orderID uuid.UUID) error {
	return s.assign(c, orderID, identity.RoleDeliverer)
}

func (s *Server) assign(c echo.Context, orderID uuid.UUID, role identity.Role) error {
	var body AssignStaffRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}
	staffID, err := parseKernelID("staffId", body.StaffID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewAssignStaffCommand(actorFrom(c), id, staffID, role)
	if err != nil {
		return err
	}
	o, err := s.assignStaff.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOrderResponse(o))
}

// PayByCard handles POST /api/v1/orders/{orderId}/payments/card.
func (s *Server) PayByCard(c echo.Context, orderID uuid.UUID) error {
	var body CardPaymentRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}
	var method order.PaymentMethod
	if body.PaymentMethod != "" {
		if method, err = order.ParsePaymentMethod(body.PaymentMethod); err != nil {
			return err
		}
	}

	cmd, err := commands.NewPayOrderCommand(actorFrom(c), id, kernel.NewUUID(), method, body.PaymentMethodID)
	if err != nil {
		return err
	}
	result, err := s.payOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPaymentResponse(result.Payment))
}

// RequestCashOnDelivery handles POST /api/v1/orders/{orderId}/payments/cod.
func (s *Server) RequestCashOnDelivery(c echo.Context, orderID uuid.UUID) error {
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRequestCashOnDeliveryCommand(actorFrom(c), id, kernel.NewUUID())
	if err != nil {
		return err
	}
	result, err := s.requestCOD.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toPaymentResponse(result.Payment))
}

// GetPaymentByOrder handles GET /api/v1/orders/{orderId}/payment.
func (s *Server) GetPaymentByOrder(c echo.Context, orderID uuid.UUID) error {
	id, err := toKernelID("orderId", orderID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetPaymentByOrderQuery(actorFrom(c), id)
	if err != nil {
		return err
	}

	view, err := s.getPayment.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPaymentViewResponse(view))
}

// SettleCashOnDelivery handles POST /api/v1/payments/{paymentId}/settle.
func (s *Server) SettleCashOnDelivery(c echo.Context, paymentID uuid.UUID) error {
	id, err := toKernelID("paymentId", paymentID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSettleCashOnDeliveryCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	result, err := s.settleCOD.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPaymentResponse(result.Payment))
}

// SubmitFeedback handles POST /api/v1/feedback.
func (s *Server) SubmitFeedback(c echo.Context) error {
	var body FeedbackRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	orderID, err := parseKernelID("orderId", body.OrderID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewSubmitFeedbackCommand(actorFrom(c), kernel.NewUUID(), orderID, body.input())
	if err != nil {
		return err
	}
	f, err := s.submitFeedback.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toFeedbackResponse(f))
}

// ListAllFeedback handles GET /api/v1/feedback.
func (s *Server) ListAllFeedback(c echo.Context, params ListFeedbackParams) error {
	query, err := queries.NewListAllFeedbackQuery(actorFrom(c), deref(params.Page), deref(params.Limit))
	if err != nil {
		return err
	}
	return s.renderFeedbackList(c, query)
}

// ListMyFeedback handles GET /api/v1/feedback/mine.
func (s *Server) ListMyFeedback(c echo.Context, params ListFeedbackParams) error {
	query, err := queries.NewListMyFeedbackQuery(actorFrom(c), deref(params.Page), deref(params.Limit))
	if err != nil {
		return err
	}
	return s.renderFeedbackList(c, query)
}

func (s *Server) renderFeedbackList(c echo.Context, query queries.ListFeedbackQuery) error {
	result, err := s.feedbackQueries.HandleList(c.Request().Context(), query)
	if err != nil {
		return err
	}

	resp := FeedbackListResponse{
		Feedback:   make([]FeedbackResponse, 0, len(result.Feedback)),
		Pagination: toPaginationResponse(result.Pagination),
	}
	for _, f := range result.Feedback {
		resp.Feedback = append(resp.Feedback, toFeedbackViewResponse(f))
	}
	return c.JSON(http.StatusOK, resp)
}

// GetFeedback handles GET /api/v1/feedback/{feedbackId}.
func (s *Server) GetFeedback(c echo.Context, feedbackID uuid.UUID) error {
	id, err := toKernelID("feedbackId", feedbackID)
	if err != nil {
		return err
	}
	query, err := queries.NewGetFeedbackQuery(actorFrom(c), id)
	if err != nil {
		return err
	}

	view, err := s.feedbackQueries.HandleGet(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackViewResponse(view))
}

// UpdateFeedback handles PUT /api/v1/feedback/{feedbackId}.
func (s *Server) UpdateFeedback(c echo.Context, feedbackID uuid.UUID) error {
	var body FeedbackRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	id, err := toKernelID("feedbackId", feedbackID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateFeedbackCommand(actorFrom(c), id, body.input())
	if err != nil {
		return err
	}
	f, err := s.manageFeedback.HandleUpdate(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackResponse(f))
}

// DeleteFeedback handles DELETE /api/v1/feedback/{feedbackId}.
func (s *Server) DeleteFeedback(c echo.Context, feedbackID uuid.UUID) error {
	id, err := toKernelID("feedbackId", feedbackID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteFeedbackCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	if err = s.manageFeedback.HandleDelete(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RespondToFeedback handles PUT /api/v1/feedback/{feedbackId}/response.
func (s *Server) RespondToFeedback(c echo.Context, feedbackID uuid.UUID) error {
	var body RespondRequest
	if err := bindBody(c, &body); err != nil {
		return err
	}
	id, err := toKernelID("feedbackId", feedbackID)
	if err != nil {
		return err
	}

	cmd, err := commands.NewRespondToFeedbackCommand(actorFrom(c), id, body.Comment)
	if err != nil {
		return err
	}
	f, err := s.manageFeedback.HandleRespond(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toFeedbackResponse(f))
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
