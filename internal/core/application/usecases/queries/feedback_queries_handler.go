package queries

import (
	"context"
	"database/sql"
	"errors"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/domain/services"
	"laundry/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const feedbackColumns = `
	f.id, f.user_id, f.order_id, f.rating, f.comment,
	f.service_quality, f.punctuality, f.staff_behavior, f.is_public,
	f.response_comment, f.responded_at, f.responded_by,
	COALESCE(o.status, 0), COALESCE(o.total, 0),
	f.created_at, f.updated_at`

// FeedbackQueryHandler serves feedback reads for authors and admins.
type FeedbackQueryHandler struct {
	db     *gorm.DB
	policy services.AuthorizationPolicy
}

func NewFeedbackQueryHandler(db *gorm.DB, policy services.AuthorizationPolicy) FeedbackQueryHandler {
	return FeedbackQueryHandler{db: db, policy: policy}
}

func (h FeedbackQueryHandler) HandleGet(ctx context.Context, query GetFeedbackQuery) (FeedbackView, error) {
	if err := query.Validate(); err != nil {
		return FeedbackView{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT `+feedbackColumns+`
		FROM feedbacks f
		LEFT JOIN orders o ON o.id = f.order_id
		WHERE f.id = ?
	`, query.FeedbackID().Bytes()).Row()

	view, err := scanFeedback(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FeedbackView{}, errs.NewObjectNotFoundError("feedback", query.FeedbackID().String())
		}
		return FeedbackView{}, err
	}

	if err = h.policy.AuthorizeFeedback(query.Actor(), services.FeedbackRead, view.UserID); err != nil {
		return FeedbackView{}, err
	}
	return view, nil
}

func (h FeedbackQueryHandler) HandleList(ctx context.Context, query ListFeedbackQuery) (ListFeedbackQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ListFeedbackQueryResponse{}, err
	}

	actor := query.Actor()
	if query.All() {
		if err := h.policy.AuthorizeFeedback(actor, services.FeedbackListAll, kernel.UUID{}); err != nil {
			return ListFeedbackQueryResponse{}, err
		}
	}

	filtered := func() *gorm.DB {
		tx := h.db.WithContext(ctx).Table("feedbacks AS f")
		if !query.All() {
			tx = tx.Where("f.user_id = ?", actor.ID().Bytes())
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return ListFeedbackQueryResponse{}, err
	}

	page := query.Page()
	rows, err := filtered().
		Select(feedbackColumns).
		Joins("LEFT JOIN orders o ON o.id = f.order_id").
		Order("f.created_at DESC, f.id DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Rows()
	if err != nil {
		return ListFeedbackQueryResponse{}, err
	}
	defer rows.Close()

	views := make([]FeedbackView, 0, page.Limit)
	for rows.Next() {
		view, scanErr := scanFeedback(rows)
		if scanErr != nil {
			return ListFeedbackQueryResponse{}, scanErr
		}
		views = append(views, view)
	}

	if err = rows.Err(); err != nil {
		return ListFeedbackQueryResponse{}, err
	}

	return ListFeedbackQueryResponse{Feedback: views, Pagination: paginate(page, total)}, nil
}

func scanFeedback(row rowScanner) (FeedbackView, error) {
	var (
		view                FeedbackView
		id, userID, orderID uuid.UUID
		serviceQuality      sql.NullInt32
		punctuality         sql.NullInt32
		staffBehavior       sql.NullInt32
		responseComment     sql.NullString
		respondedAt         sql.NullTime
		respondedBy         uuid.NullUUID
		orderStatus         int
		orderTotal          decimal.Decimal
	)

	err := row.Scan(
		&id, &userID, &orderID, &view.Rating, &view.Comment,
		&serviceQuality, &punctuality, &staffBehavior, &view.IsPublic,
		&responseComment, &respondedAt, &respondedBy,
		&orderStatus, &orderTotal,
		&view.CreatedAt, &view.UpdatedAt,
	)
	if err != nil {
		return FeedbackView{}, err
	}

	if view.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return FeedbackView{}, err
	}
	if view.UserID, err = kernel.UUIDFromBytes(userID[:]); err != nil {
		return FeedbackView{}, err
	}
	if view.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
		return FeedbackView{}, err
	}
	if view.OrderTotal, err = kernel.NewMoney(orderTotal); err != nil {
		return FeedbackView{}, err
	}
	view.OrderStatus = order.Status(orderStatus)
	view.ServiceQuality = nullableInt(serviceQuality)
	view.Punctuality = nullableInt(punctuality)
	view.StaffBehavior = nullableInt(staffBehavior)

	if responseComment.Valid {
		view.Response = &FeedbackResponseView{Comment: responseComment.String}
		if respondedAt.Valid {
			view.Response.RespondedAt = respondedAt.Time
		}
		by, byErr := optionalUUID(respondedBy)
		if byErr != nil {
			return FeedbackView{}, byErr
		}
		if by != nil {
			view.Response.RespondedBy = *by
		}
	}
	return view, nil
}

func nullableInt(v sql.NullInt32) *int {
	if !v.Valid {
		return nil
	}
	i := int(v.Int32)
	return &i
}
