package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/davidwere/sokoni-api/config"
	"github.com/davidwere/sokoni-api/models"
	"github.com/go-resty/resty/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	stripeAPIBase        = "https://api.stripe.com"
	stripeTimeout        = 15 * time.Second
	webhookTolerance     = 5 * time.Minute
	eventIntentSucceeded = "payment_intent.succeeded"
)

// PaymentService talks to Stripe over its REST API and advances order
// payment state through OrderService.MarkPaid. It never flips an order to
// paid on its own.
type PaymentService struct {
	db     *gorm.DB
	cfg    *config.Config
	orders *OrderService
	client *resty.Client
}

func NewPaymentService(db *gorm.DB, cfg *config.Config, orders *OrderService) *PaymentService {
	client := resty.New().
		SetBaseURL(stripeAPIBase).
		SetTimeout(stripeTimeout).
		SetAuthToken(cfg.StripeSecretKey)
	return &PaymentService{db: db, cfg: cfg, orders: orders, client: client}
}

type paymentIntent struct {
	ID           string            `json:"id"`
	Status       string            `json:"status"`
	ClientSecret string            `json:"client_secret"`
	Metadata     map[string]string `json:"metadata"`
}

type stripeErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type stripeEvent struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Data struct {
		Object paymentIntent `json:"object"`
	} `json:"data"`
}

// CreateIntent registers a payment intent with the processor. The order and
// user ids travel as intent metadata so the webhook can correlate the event
// without trusting the client.
func (s *PaymentService) CreateIntent(ctx context.Context, userID uint, req models.CreatePaymentIntentRequest) (models.CreatePaymentIntentResponse, error) {
	if _, err := s.orders.GetByID(ctx, userID, req.OrderID); err != nil {
		if KindOf(err) == KindNotFound {
			return models.CreatePaymentIntentResponse{}, invalidRequest("order not found or does not belong to user")
		}
		return models.CreatePaymentIntentResponse{}, err
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = "usd"
	}

	// Stripe wants the smallest currency unit.
	amountMinor := int64(math.Round(req.Amount * 100))

	var intent paymentIntent
	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"amount":            strconv.FormatInt(amountMinor, 10),
			"currency":          currency,
			"metadata[orderId]": strconv.FormatUint(uint64(req.OrderID), 10),
			"metadata[userId]":  strconv.FormatUint(uint64(userID), 10),
		}).
		SetResult(&intent).
		Post("/v1/payment_intents")
	if err != nil {
		return models.CreatePaymentIntentResponse{}, transient("payment processor unreachable")
	}
	if resp.IsError() {
		return models.CreatePaymentIntentResponse{}, invalidRequest(stripeErrorMessage(resp.Body()))
	}

	return models.CreatePaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	}, nil
}

// Confirm is the client-triggered half of payment reconciliation: it fetches
// the intent from the processor, checks it succeeded, and funnels into the
// guarded MarkPaid transition. A concurrent webhook winning the race is
// treated as success.
func (s *PaymentService) Confirm(ctx context.Context, userID uint, intentID string) (models.OrderResponse, error) {
	var intent paymentIntent
	resp, err := s.client.R().
		SetContext(ctx).
		SetResult(&intent).
		Get("/v1/payment_intents/" + intentID)
	if err != nil {
		return models.OrderResponse{}, transient("payment processor unreachable")
	}
	if resp.IsError() {
		return models.OrderResponse{}, invalidRequest(stripeErrorMessage(resp.Body()))
	}

	if intent.Status != "succeeded" {
		return models.OrderResponse{}, invalidRequest("payment was not successful")
	}

	orderID, err := metadataID(intent.Metadata, "orderId")
	if err != nil {
		return models.OrderResponse{}, invalidRequest("payment intent is missing order metadata")
	}

	order, err := s.orders.MarkPaid(ctx, userID, orderID, intent.ID)
	if err != nil {
		if KindOf(err) == KindInvalidState {
			// Someone else (usually the webhook) already applied the
			// transition; report the paid order rather than an error.
			return s.orders.GetByID(ctx, userID, orderID)
		}
		return models.OrderResponse{}, err
	}
	return order, nil
}

// HandleWebhook verifies the processor's signature, records the event, and
// applies payment_intent.succeeded to the referenced order. Every other
// event type is accepted and ignored.
func (s *PaymentService) HandleWebhook(ctx context.Context, payload []byte, signatureHeader string) error {
	if !verifyWebhookSignature(payload, signatureHeader, s.cfg.StripeWebhookSecret, time.Now()) {
		return invalidRequest("invalid webhook signature")
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return invalidRequest("malformed webhook payload")
	}

	record := models.PaymentEvent{
		EventID: event.ID,
		Type:    event.Type,
		Payload: datatypes.JSON(payload),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		// The audit trail must not block payment reconciliation.
		log.Println("Failed to record payment event:", err)
	}

	if event.Type != eventIntentSucceeded {
		return nil
	}

	orderID, orderErr := metadataID(event.Data.Object.Metadata, "orderId")
	userID, userErr := metadataID(event.Data.Object.Metadata, "userId")
	if orderErr != nil || userErr != nil {
		log.Printf("Webhook event %s has unusable metadata, skipping", event.ID)
		return nil
	}

	_, err := s.orders.MarkPaid(ctx, userID, orderID, event.Data.Object.ID)
	if err != nil {
		switch KindOf(err) {
		case KindInvalidState:
			// Already paid via the confirmation endpoint. Not an error.
			return nil
		case KindNotFound:
			log.Printf("Webhook event %s references unknown order %d", event.ID, orderID)
			return nil
		default:
			return err
		}
	}
	return nil
}

// verifyWebhookSignature checks the t=...,v1=... signature scheme: an
// HMAC-SHA256 of "<timestamp>.<payload>" under the shared webhook secret,
// rejected outside the tolerance window.
func verifyWebhookSignature(payload []byte, header, secret string, now time.Time) bool {
	if header == "" || secret == "" {
		return false
	}

	var timestamp int64
	var signatures []string
	for _, part := range strings.Split(header, ",") {
		pair := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(pair) != 2 {
			continue
		}
		switch pair[0] {
		case "t":
			parsed, err := strconv.ParseInt(pair[1], 10, 64)
			if err != nil {
				return false
			}
			timestamp = parsed
		case "v1":
			signatures = append(signatures, pair[1])
		}
	}
	if timestamp == 0 || len(signatures) == 0 {
		return false
	}

	age := now.Sub(time.Unix(timestamp, 0))
	if age > webhookTolerance || age < -webhookTolerance {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))

	for _, signature := range signatures {
		if hmac.Equal([]byte(signature), []byte(expected)) {
			return true
		}
	}
	return false
}

func metadataID(metadata map[string]string, key string) (uint, error) {
	raw, ok := metadata[key]
	if !ok {
		return 0, fmt.Errorf("metadata key %q missing", key)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("metadata key %q is not a valid id", key)
	}
	return uint(id), nil
}

func stripeErrorMessage(body []byte) string {
	var parsed stripeErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return "stripe error: " + parsed.Error.Message
	}
	return "stripe request failed"
}
