package http

import (
	"time"

	"laundry/internal/core/application/usecases/commands"
	"laundry/internal/core/application/usecases/queries"
	"laundry/internal/core/domain/model/feedback"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/model/payment"
)

// Requests. Shapes are enforced by the openapi validator before binding.

type AddCartItemRequest struct {
	PackageID string `json:"packageId"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type AddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country,omitempty"`
}

type CheckoutRequest struct {
	PickupDate          time.Time  `json:"pickupDate"`
	DeliveryDate        time.Time  `json:"deliveryDate"`
	Address             AddressDTO `json:"address"`
	SpecialInstructions string     `json:"specialInstructions"`
	PaymentMethod       string     `json:"paymentMethod"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type AssignStaffRequest struct {
	StaffID string `json:"staffId"`
}

type CardPaymentRequest struct {
	PaymentMethodID string `json:"paymentMethodId"`
	PaymentMethod   string `json:"paymentMethod"`
}

type FeedbackRequest struct {
	OrderID        string `json:"orderId,omitempty"`
	Rating         int    `json:"rating"`
	Comment        string `json:"comment"`
	ServiceQuality *int   `json:"serviceQuality,omitempty"`
	Punctuality    *int   `json:"punctuality,omitempty"`
	StaffBehavior  *int   `json:"staffBehavior,omitempty"`
	IsPublic       *bool  `json:"isPublic,omitempty"`
}

func (r FeedbackRequest) input() commands.FeedbackInput {
	return commands.FeedbackInput{
		Rating:         r.Rating,
		Comment:        r.Comment,
		ServiceQuality: r.ServiceQuality,
		Punctuality:    r.Punctuality,
		StaffBehavior:  r.StaffBehavior,
		IsPublic:       r.IsPublic,
	}
}

type RespondRequest struct {
	Comment string `json:"comment"`
}

// Responses.

type CartItemResponse struct {
	PackageID string  `json:"packageId"`
	Name      string  `json:"name,omitempty"`
	Quantity  int     `json:"quantity"`
	UnitPrice *string `json:"unitPrice"`
	LineTotal *string `json:"lineTotal"`
	Available bool    `json:"available"`
}

type CartResponse struct {
	UserID      string             `json:"userId"`
	Items       []CartItemResponse `json:"items"`
	TotalAmount string             `json:"totalAmount"`
}

func toCartResponse(v queries.GetCartQueryResponse) CartResponse {
	items := make([]CartItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		resp := CartItemResponse{
			PackageID: item.PackageID.String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Available: item.Available,
		}
		if item.Available {
			unit, line := item.UnitPrice.String(), item.LineTotal.String()
			resp.UnitPrice, resp.LineTotal = &unit, &line
		}
		items = append(items, resp)
	}
	return CartResponse{UserID: v.UserID.String(), Items: items, TotalAmount: v.TotalAmount.String()}
}

type OrderItemResponse struct {
	PackageID string `json:"packageId"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
	LineTotal string `json:"lineTotal"`
}

type HistoryEntryResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	UpdatedBy string    `json:"updatedBy"`
}

type OrderResponse struct {
	ID                  string                 `json:"id"`
	UserID              string                 `json:"userId"`
	Items               []OrderItemResponse    `json:"items,omitempty"`
	TotalAmount         string                 `json:"totalAmount"`
	Status              string                 `json:"status"`
	PaymentStatus       string                 `json:"paymentStatus"`
	PaymentMethod       string                 `json:"paymentMethod"`
	PaymentID           *string                `json:"paymentId,omitempty"`
	AssignedWorker      *string                `json:"assignedWorker,omitempty"`
	AssignedDeliverer   *string                `json:"assignedDeliverer,omitempty"`
	PickupDate          time.Time              `json:"pickupDate"`
	DeliveryDate        time.Time              `json:"deliveryDate"`
	Address             *AddressDTO            `json:"address,omitempty"`
	SpecialInstructions string                 `json:"specialInstructions,omitempty"`
	StatusHistory       []HistoryEntryResponse `json:"statusHistory,omitempty"`
	CreatedAt           time.Time              `json:"createdAt"`
	UpdatedAt           time.Time              `json:"updatedAt"`
}

func optionalID(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toHistoryResponse(entries []queries.HistoryEntryView) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, HistoryEntryResponse{Status: e.Status.String(), Timestamp: e.At, UpdatedBy: e.ActorID.String()})
	}
	return out
}

func toSummaryResponse(s queries.OrderSummary) OrderResponse {
	return OrderResponse{
		ID:                s.ID.String(),
		UserID:            s.UserID.String(),
		TotalAmount:       s.TotalAmount.String(),
		Status:            s.Status.String(),
		PaymentStatus:     s.PaymentStatus.String(),
		PaymentMethod:     s.PaymentMethod.String(),
		AssignedWorker:    optionalID(s.AssignedWorker),
		AssignedDeliverer: optionalID(s.AssignedDeliverer),
		PickupDate:        s.PickupAt,
		DeliveryDate:      s.DeliverAt,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
}

func toOrderViewResponse(v queries.OrderView) OrderResponse {
	resp := toSummaryResponse(v.OrderSummary)
	resp.PaymentID = optionalID(v.PaymentID)
	resp.SpecialInstructions = v.Instructions
	resp.Address = &AddressDTO{
		Street:  v.Address.Street,
		City:    v.Address.City,
		State:   v.Address.State,
		ZipCode: v.Address.ZipCode,
		Country: v.Address.Country,
	}
	resp.StatusHistory = toHistoryResponse(v.History)
	resp.Items = make([]OrderItemResponse, 0, len(v.Items))
	for _, item := range v.Items {
		resp.Items = append(resp.Items, OrderItemResponse{
			PackageID: item.PackageID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice.String(),
			LineTotal: item.LineTotal.String(),
		})
	}
	return resp
}

// toOrderResponse renders an aggregate returned by a command.
func toOrderResponse(o *order.Order) OrderResponse {
	delivery := o.Delivery()
	address := delivery.Address()

	resp := OrderResponse{
		ID:                  o.ID().String(),
		UserID:              o.UserID().String(),
		TotalAmount:         o.Total().String(),
		Status:              o.Status().String(),
		PaymentStatus:       o.PaymentStatus().String(),
		PaymentMethod:       o.PaymentMethod().String(),
		PaymentID:           optionalID(o.PaymentID()),
		AssignedWorker:      optionalID(o.AssignedWorker()),
		AssignedDeliverer:   optionalID(o.AssignedDeliverer()),
		PickupDate:          delivery.PickupAt(),
		DeliveryDate:        delivery.DeliverAt(),
		SpecialInstructions: delivery.Instructions(),
		Address: &AddressDTO{
			Street:  address.Street(),
			City:    address.City(),
			State:   address.State(),
			ZipCode: address.ZipCode(),
			Country: address.Country(),
		},
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}

	for _, item := range o.Items() {
		resp.Items = append(resp.Items, OrderItemResponse{
			PackageID: item.PackageID().String(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice().String(),
			LineTotal: item.LineTotal().String(),
		})
	}
	for _, h := range o.History() {
		resp.StatusHistory = append(resp.StatusHistory, HistoryEntryResponse{
			Status:    h.Status().String(),
			Timestamp: h.At(),
			UpdatedBy: h.ActorID().String(),
		})
	}
	return resp
}

type PaginationResponse struct {
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	Total    int64 `json:"total"`
	Pages    int   `json:"pages"`
	NextPage *int  `json:"nextPage"`
	PrevPage *int  `json:"prevPage"`
}

func toPaginationResponse(p queries.Pagination) PaginationResponse {
	return PaginationResponse{
		Page:     p.Page,
		Limit:    p.Limit,
		Total:    p.Total,
		Pages:    p.Pages,
		NextPage: p.NextPage,
		PrevPage: p.PrevPage,
	}
}

type OrderListResponse struct {
	Orders     []OrderResponse    `json:"orders"`
	Pagination PaginationResponse `json:"pagination"`
}

type PaymentResponse struct {
	ID             string    `json:"id"`
	OrderID        string    `json:"orderId"`
	UserID         string    `json:"userId"`
	Amount         string    `json:"amount"`
	PaymentMethod  string    `json:"paymentMethod"`
	Status         string    `json:"status"`
	TransactionID  string    `json:"transactionId,omitempty"`
	PaymentGateway string    `json:"paymentGateway,omitempty"`
	CardLast4      string    `json:"cardLast4,omitempty"`
	CardBrand      string    `json:"cardBrand,omitempty"`
	ExpiryMonth    string    `json:"expiryMonth,omitempty"`
	ExpiryYear     string    `json:"expiryYear,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func toPaymentResponse(p *payment.Payment) PaymentResponse {
	details := p.Details()
	return PaymentResponse{
		ID:             p.ID().String(),
		OrderID:        p.OrderID().String(),
		UserID:         p.UserID().String(),
		Amount:         p.Amount().String(),
		PaymentMethod:  p.Method().String(),
		Status:         p.Status().String(),
		TransactionID:  p.Reference(),
		PaymentGateway: p.Gateway(),
		CardLast4:      details.Last4,
		CardBrand:      details.Brand,
		ExpiryMonth:    details.ExpiryMonth,
		ExpiryYear:     details.ExpiryYear,
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
}

func toPaymentViewResponse(v queries.PaymentView) PaymentResponse {
	return PaymentResponse{
		ID:             v.ID.String(),
		OrderID:        v.OrderID.String(),
		UserID:         v.UserID.String(),
		Amount:         v.Amount.String(),
		PaymentMethod:  v.Method.String(),
		Status:         v.Status.String(),
		TransactionID:  v.Reference,
		PaymentGateway: v.Gateway,
		CardLast4:      v.CardLast4,
		CardBrand:      v.CardBrand,
		ExpiryMonth:    v.ExpiryMonth,
		ExpiryYear:     v.ExpiryYear,
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
}

type FeedbackAdminResponse struct {
	Comment     string    `json:"comment"`
	RespondedAt time.Time `json:"respondedAt"`
	RespondedBy string    `json:"respondedBy"`
}

type FeedbackResponse struct {
	ID             string                 `json:"id"`
	UserID         string                 `json:"userId"`
	OrderID        string                 `json:"orderId"`
	Rating         int                    `json:"rating"`
	Comment        string                 `json:"comment,omitempty"`
	ServiceQuality *int                   `json:"serviceQuality,omitempty"`
	Punctuality    *int                   `json:"punctuality,omitempty"`
	StaffBehavior  *int                   `json:"staffBehavior,omitempty"`
	IsPublic       bool                   `json:"isPublic"`
	AdminResponse  *FeedbackAdminResponse `json:"adminResponse,omitempty"`
	OrderStatus    string                 `json:"orderStatus,omitempty"`
	OrderTotal     string                 `json:"orderTotal,omitempty"`
	CreatedAt      time.Time              `json:"createdAt"`
	UpdatedAt      time.Time              `json:"updatedAt"`
}

func optionalRating(r *feedback.Rating) *int {
	if r == nil {
		return nil
	}
	v := r.Int()
	return &v
}

func toFeedbackResponse(f *feedback.Feedback) FeedbackResponse {
	content := f.Content()
	resp := FeedbackResponse{
		ID:             f.ID().String(),
		UserID:         f.UserID().String(),
		OrderID:        f.OrderID().String(),
		Rating:         content.Rating.Int(),
		Comment:        content.Comment,
		ServiceQuality: optionalRating(content.ServiceQuality),
		Punctuality:    optionalRating(content.Punctuality),
		StaffBehavior:  optionalRating(content.StaffBehavior),
		IsPublic:       content.IsPublic,
		CreatedAt:      f.CreatedAt(),
		UpdatedAt:      f.UpdatedAt(),
	}
	if r := f.AdminResponse(); r != nil {
		resp.AdminResponse = &FeedbackAdminResponse{
			Comment:     r.Comment,
			RespondedAt: r.RespondedAt,
			RespondedBy: r.RespondedBy.String(),
		}
	}
	return resp
}

func toFeedbackViewResponse(v queries.FeedbackView) FeedbackResponse {
	resp := FeedbackResponse{
		ID:             v.ID.String(),
		UserID:         v.UserID.String(),
		OrderID:        v.OrderID.String(),
		Rating:         v.Rating,
		Comment:        v.Comment,
		ServiceQuality: v.ServiceQuality,
		Punctuality:    v.Punctuality,
		StaffBehavior:  v.StaffBehavior,
		IsPublic:       v.IsPublic,
		OrderTotal:     v.OrderTotal.String(),
		CreatedAt:      v.CreatedAt,
		UpdatedAt:      v.UpdatedAt,
	}
	if v.OrderStatus.Validate() == nil {
		resp.OrderStatus = v.OrderStatus.String()
	}
	if v.Response != nil {
		resp.AdminResponse = &FeedbackAdminResponse{
			Comment:     v.Response.Comment,
			RespondedAt: v.Response.RespondedAt,
			RespondedBy: v.Response.RespondedBy.String(),
		}
	}
	return resp
}

type FeedbackListResponse struct {
	Feedback   []FeedbackResponse `json:"feedback"`
	Pagination PaginationResponse `json:"pagination"`
}
