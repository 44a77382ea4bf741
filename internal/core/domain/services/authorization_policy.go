package services

import (
	"laundry/internal/core/domain/model/identity"
	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/pkg/errs"
)

// Action is something an actor may attempt on an order.
type Action string

const (
	ActionRead         Action = "read"
	ActionUpdateStatus Action = "update-status"
	ActionCancel       Action = "cancel"
	ActionAssign       Action = "assign"
	ActionPay          Action = "pay"
	ActionSettleCOD    Action = "settle-cod"
	ActionViewPayment  Action = "view-payment"
)

// OrderFacts is what the policy needs to know about an order.
type OrderFacts struct {
	OwnerID           kernel.UUID
	AssignedWorker    *kernel.UUID
	AssignedDeliverer *kernel.UUID
}

func FactsOf(o *order.Order) OrderFacts {
	return OrderFacts{
		OwnerID:           o.UserID(),
		AssignedWorker:    o.AssignedWorker(),
		AssignedDeliverer: o.AssignedDeliverer(),
	}
}

func (f OrderFacts) ownedBy(id kernel.UUID) bool {
	return f.OwnerID.IsEqual(id)
}

func (f OrderFacts) workedBy(id kernel.UUID) bool {
	return f.AssignedWorker != nil && f.AssignedWorker.IsEqual(id)
}

func (f OrderFacts) deliveredBy(id kernel.UUID) bool {
	return f.AssignedDeliverer != nil && f.AssignedDeliverer.IsEqual(id)
}

// ScopeKind selects which orders a listing may return.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeAll
	ScopeOwned
	ScopeAssignedWorker
	ScopeAssignedDeliverer
)

// ListScope is a query filter, applied before sorting, counting and paging.
type ListScope struct {
	Kind   ScopeKind
	UserID kernel.UUID
}

// rolePolicy is one variant of the policy, keyed by role.
type rolePolicy interface {
	allows(actorID kernel.UUID, action Action, facts OrderFacts) bool
	scope(actorID kernel.UUID) ListScope
}

type adminPolicy struct{}

func (adminPolicy) allows(kernel.UUID, Action, OrderFacts) bool { return true }
func (adminPolicy) scope(kernel.UUID) ListScope                { return ListScope{Kind: ScopeAll} }

// managerPolicy runs operations but neither cancels on a customer's behalf
// nor handles money.
type managerPolicy struct{}

func (managerPolicy) allows(_ kernel.UUID, action Action, _ OrderFacts) bool {
	return action != ActionCancel && action != ActionSettleCOD && action != ActionPay
}

func (managerPolicy) scope(kernel.UUID) ListScope { return ListScope{Kind: ScopeAll} }

type workerPolicy struct{}

func (workerPolicy) allows(actorID kernel.UUID, action Action, facts OrderFacts) bool {
	switch action {
	case ActionRead, ActionUpdateStatus:
		return facts.workedBy(actorID)
	case ActionCancel, ActionAssign, ActionPay, ActionSettleCOD, ActionViewPayment:
	}
	return false
}

func (workerPolicy) scope(actorID kernel.UUID) ListScope {
	return ListScope{Kind: ScopeAssignedWorker, UserID: actorID}
}

type delivererPolicy struct{}

func (delivererPolicy) allows(actorID kernel.UUID, action Action, facts OrderFacts) bool {
	switch action {
	case ActionRead, ActionUpdateStatus, ActionSettleCOD:
		return facts.deliveredBy(actorID)
	case ActionCancel, ActionAssign, ActionPay, ActionViewPayment:
	}
	return false
}

func (delivererPolicy) scope(actorID kernel.UUID) ListScope {
	return ListScope{Kind: ScopeAssignedDeliverer, UserID: actorID}
}

type customerPolicy struct{}

func (customerPolicy) allows(actorID kernel.UUID, action Action, facts OrderFacts) bool {
	switch action {
	case ActionRead, ActionCancel, ActionPay, ActionViewPayment:
		return facts.ownedBy(actorID)
	case ActionUpdateStatus, ActionAssign, ActionSettleCOD:
	}
	return false
}

func (customerPolicy) scope(actorID kernel.UUID) ListScope {
	return ListScope{Kind: ScopeOwned, UserID: actorID}
}

// AuthorizationPolicy maps (actor, resource) to permitted actions.
//
// Rules:
//   - admin: everything except pay
//   - manager: everything except cancel, settle-cod and pay
//   - worker: read and update-status on orders assigned to them as worker
//   - deliverer: read, update-status and settle-cod on orders assigned to them as deliverer
//   - user: read, cancel and view-payment on orders they own
//   - pay: the owner, whatever the role
//
// Feedback moderation (listing all, responding) is admin only; authors may
// read, edit and delete their own feedback, admins may read and delete any.
//
// The zero value denies everything; use NewAuthorizationPolicy.
type AuthorizationPolicy struct {
	variants map[identity.Role]rolePolicy
}

func NewAuthorizationPolicy() AuthorizationPolicy {
	return AuthorizationPolicy{
		variants: map[identity.Role]rolePolicy{
			identity.RoleAdmin:     adminPolicy{},
			identity.RoleManager:   managerPolicy{},
			identity.RoleWorker:    workerPolicy{},
			identity.RoleDeliverer: delivererPolicy{},
			identity.RoleUser:      customerPolicy{},
		},
	}
}

// Allows is the pure decision function. Paying is reserved to the owner
// whatever the owner's role.
func (p AuthorizationPolicy) Allows(actor identity.Actor, action Action, facts OrderFacts) bool {
	variant, ok := p.variants[actor.Role()]
	if !ok || actor.Validate() != nil {
		return false
	}
	if action == ActionPay {
		return facts.ownedBy(actor.ID())
	}
	return variant.allows(actor.ID(), action, facts)
}

// Authorize returns a forbidden error when Allows is false.
func (p AuthorizationPolicy) Authorize(actor identity.Actor, action Action, o *order.Order) error {
	if p.Allows(actor, action, FactsOf(o)) {
		return nil
	}
	return errs.NewForbiddenError(string(action), "order "+o.ID().String())
}

// Scope returns the listing filter for actor. Unknown actors see nothing.
func (p AuthorizationPolicy) Scope(actor identity.Actor) ListScope {
	variant, ok := p.variants[actor.Role()]
	if !ok || actor.Validate() != nil {
		return ListScope{Kind: ScopeNone}
	}
	return variant.scope(actor.ID())
}

// FeedbackAction is something an actor may attempt on a feedback.
type FeedbackAction string

const (
	FeedbackRead    FeedbackAction = "read-feedback"
	FeedbackEdit    FeedbackAction = "edit-feedback"
	FeedbackDelete  FeedbackAction = "delete-feedback"
	FeedbackRespond FeedbackAction = "respond-feedback"
	FeedbackListAll FeedbackAction = "list-feedback"
)

// AuthorizeFeedback checks a feedback action. authorID is ignored for
// FeedbackListAll.
func (p AuthorizationPolicy) AuthorizeFeedback(actor identity.Actor, action FeedbackAction, authorID kernel.UUID) error {
	if actor.Validate() == nil && p.allowsFeedback(actor, action, authorID) {
		return nil
	}
	return errs.NewForbiddenError(string(action), "feedback")
}

func (p AuthorizationPolicy) allowsFeedback(actor identity.Actor, action FeedbackAction, authorID kernel.UUID) bool {
	isAdmin := actor.Role() == identity.RoleAdmin
	isAuthor := actor.Is(authorID)

	switch action {
	case FeedbackRead, FeedbackDelete:
		return isAdmin || isAuthor
	case FeedbackEdit:
		return isAuthor
	case FeedbackRespond, FeedbackListAll:
		return isAdmin
	}
	return false
}
