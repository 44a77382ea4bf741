// Package gateway is the Stripe client of the card processor. A confirmed
// payment intent is created in one call and either succeeds or is refused.
package gateway

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"laundry/internal/core/ports"
	"laundry/internal/pkg/errs"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
)

const serviceName = "card gateway"

var _ ports.CardGateway = (*Client)(nil)

type Config struct {
	// BaseURL overrides the Stripe API host, e.g. for stripe-mock.
	BaseURL string
	APIKey  string
	Timeout time.Duration
	// Name is recorded on payments as the gateway that captured them.
	Name string
}

type Client struct {
	intents paymentintent.Client
	name    string
	logger  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errs.NewValueIsRequiredError("gateway url")
	}
	if _, err := url.ParseRequestURI(cfg.BaseURL); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause("gateway url", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.Name == "" {
		cfg.Name = "stripe"
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "card-gateway")

	// Retries belong to the caller, which owns the idempotency key.
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		URL:               stripe.String(cfg.BaseURL),
		HTTPClient:        &http.Client{Timeout: cfg.Timeout},
		MaxNetworkRetries: stripe.Int64(0),
		LeveledLogger:     stripeLogger{logger: logger},
	})

	return &Client{
		intents: paymentintent.Client{B: backend, Key: cfg.APIKey},
		name:    cfg.Name,
		logger:  logger,
	}, nil
}

// Charge creates and confirms a payment intent.
func (c *Client) Charge(ctx context.Context, req ports.ChargeRequest) (ports.ChargeResult, error) {
	if req.AmountMinor <= 0 {
		return ports.ChargeResult{}, errs.NewValueIsOutOfRangeError("amount", req.AmountMinor, 1, nil)
	}
	if req.Token == "" {
		return ports.ChargeResult{}, errs.NewValueIsRequiredError("payment token")
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(req.AmountMinor),
		Currency:      stripe.String(req.Currency),
		PaymentMethod: stripe.String(req.Token),
		Confirm:       stripe.Bool(true),
	}
	params.Context = ctx
	params.AddExpand("latest_charge")
	if req.IdempotencyKey != "" {
		params.Description = stripe.String("Payment for order " + req.IdempotencyKey)
		params.SetIdempotencyKey(idempotencyKey(req.IdempotencyKey, req.Token))
	}

	intent, err := c.intents.New(params)
	if err != nil {
		return ports.ChargeResult{}, c.failure(ctx, err)
	}
	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		return ports.ChargeResult{}, errs.NewUpstreamDeclinedError(serviceName, "payment intent is "+string(intent.Status))
	}

	result := ports.ChargeResult{Reference: intent.ID, Gateway: c.name}
	if ch := intent.LatestCharge; ch != nil && ch.PaymentMethodDetails != nil && ch.PaymentMethodDetails.Card != nil {
		card := ch.PaymentMethodDetails.Card
		result.Last4 = card.Last4
		result.Brand = string(card.Brand)
		result.ExpiryMonth = itoaOrEmpty(card.ExpMonth)
		result.ExpiryYear = itoaOrEmpty(card.ExpYear)
	}
	return result, nil
}

// failure classifies a failed call. Card and request errors are the
// processor refusing this charge; everything else means it could not decide.
func (c *Client) failure(ctx context.Context, err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		c.logger.WarnContext(ctx, "charge request failed", "error", err)
		return errs.NewUpstreamUnavailableError(serviceName, err)
	}

	reason := stripeErr.Msg
	if reason == "" {
		reason = http.StatusText(stripeErr.HTTPStatusCode)
	}

	switch status := stripeErr.HTTPStatusCode; {
	case status == http.StatusTooManyRequests,
		status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status >= http.StatusInternalServerError,
		stripeErr.Type == stripe.ErrorTypeAPI:
		c.logger.ErrorContext(ctx, "card gateway unavailable", "status", status, "reason", reason)
		return errs.NewUpstreamUnavailableError(serviceName, fmt.Errorf("%s: %s", stripeErr.Type, reason))
	default:
		c.logger.InfoContext(ctx, "charge declined",
			"status", status, "type", stripeErr.Type, "decline_code", stripeErr.DeclineCode)
		return errs.NewUpstreamDeclinedError(serviceName, reason)
	}
}

// idempotencyKey scopes the caller's key to the card, so a retry with the
// same card replays the first outcome while another card gets a fresh attempt.
func idempotencyKey(key, token string) string {
	sum := sha256.Sum256([]byte(token))
	return key + "-" + hex.EncodeToString(sum[:8])
}

func itoaOrEmpty(v int64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

// stripeLogger routes the Stripe client's own logs into slog.
type stripeLogger struct {
	logger *slog.Logger
}

func (l stripeLogger) Debugf(format string, v ...any) { l.logger.Debug(fmt.Sprintf(format, v...)) }
func (l stripeLogger) Infof(format string, v ...any)  { l.logger.Debug(fmt.Sprintf(format, v...)) }
func (l stripeLogger) Warnf(format string, v ...any)  { l.logger.Warn(fmt.Sprintf(format, v...)) }
func (l stripeLogger) Errorf(format string, v ...any) { l.logger.Warn(fmt.Sprintf(format, v...)) }
