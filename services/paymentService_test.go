package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/davidwere/sokoni-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestPaymentService(t *testing.T, db *gorm.DB, handler http.HandlerFunc) *PaymentService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewPaymentService(db, testConfig(), NewOrderService(db))
	svc.client.SetBaseURL(server.URL)
	return svc
}

func seedPendingOrder(t *testing.T, db *gorm.DB, userID uint, total float64) models.Order {
	t.Helper()
	order := models.Order{
		UserID:        userID,
		Total:         total,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		Items:         []models.OrderItem{{ProductID: 1, ProductName: "Widget", UnitPrice: total, Quantity: 1}},
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func signWebhookPayload(payload []byte, secret string, at time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", at.Unix())
	mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", at.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func succeededEvent(t *testing.T, intentID string, orderID, userID uint) []byte {
	t.Helper()
	payload, err := json.Marshal(map[string]any{
		"id":   "evt_1",
		"type": "payment_intent.succeeded",
		"data": map[string]any{
			"object": map[string]any{
				"id":     intentID,
				"status": "succeeded",
				"metadata": map[string]string{
					"orderId": fmt.Sprint(orderID),
					"userId":  fmt.Sprint(userID),
				},
			},
		},
	})
	require.NoError(t, err)
	return payload
}

func TestCreateIntentSendsMinorUnitsAndMetadata(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 25.5)

	var gotAmount, gotCurrency, gotOrderID, gotUserID string
	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/v1/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotAmount = r.PostFormValue("amount")
		gotCurrency = r.PostFormValue("currency")
		gotOrderID = r.PostFormValue("metadata[orderId]")
		gotUserID = r.PostFormValue("metadata[userId]")

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","status":"requires_payment_method","client_secret":"pi_123_secret"}`)
	})

	response, err := svc.CreateIntent(context.Background(), testUserID, models.CreatePaymentIntentRequest{
		OrderID: order.ID, Amount: 25.5, Currency: "USD",
	})
	require.NoError(t, err)
	assert.Equal(t, "pi_123", response.PaymentIntentID)
	assert.Equal(t, "pi_123_secret", response.ClientSecret)

	assert.Equal(t, "2550", gotAmount)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, fmt.Sprint(order.ID), gotOrderID)
	assert.Equal(t, fmt.Sprint(testUserID), gotUserID)
}

func TestCreateIntentRejectsForeignOrder(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 25.5)

	called := false
	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := svc.CreateIntent(context.Background(), testUserID+1, models.CreatePaymentIntentRequest{
		OrderID: order.ID, Amount: 25.5,
	})
	assert.Equal(t, KindInvalidRequest, KindOf(err))
	assert.False(t, called, "no intent may be created for an unverified order")
}

func TestConfirmRequiresSucceededStatus(t *testing.T) {
	db := openTestDB(t)
	seedPendingOrder(t, db, testUserID, 10)

	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","status":"requires_payment_method","metadata":{}}`)
	})

	_, err := svc.Confirm(context.Background(), testUserID, "pi_123")
	assert.Equal(t, KindInvalidRequest, KindOf(err))
}

func TestConfirmMarksOrderPaid(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 10)

	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/payment_intents/pi_123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"pi_123","status":"succeeded","metadata":{"orderId":"%d","userId":"%d"}}`, order.ID, testUserID)
	})

	confirmed, err := svc.Confirm(context.Background(), testUserID, "pi_123")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPaid, confirmed.PaymentStatus)
	assert.Equal(t, models.OrderStatusConfirmed, confirmed.Status)
}

func TestConfirmAfterWebhookIsSuccess(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 10)

	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"id":"pi_123","status":"succeeded","metadata":{"orderId":"%d","userId":"%d"}}`, order.ID, testUserID)
	})

	// The webhook already applied the transition.
	_, err := svc.orders.MarkPaid(context.Background(), testUserID, order.ID, "pi_123")
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), testUserID, "pi_123")
	require.NoError(t, err, "already-paid must be success-equivalent for the confirming client")
	assert.Equal(t, models.PaymentStatusPaid, confirmed.PaymentStatus)
}

func TestConfirmRejectsMissingMetadata(t *testing.T) {
	db := openTestDB(t)
	seedPendingOrder(t, db, testUserID, 10)

	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pi_123","status":"succeeded","metadata":{}}`)
	})

	_, err := svc.Confirm(context.Background(), testUserID, "pi_123")
	assert.Equal(t, KindInvalidRequest, KindOf(err))
}

func TestWebhookRejectsBadSignature(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 10)
	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {})

	payload := succeededEvent(t, "pi_123", order.ID, testUserID)

	err := svc.HandleWebhook(context.Background(), payload, "t=123,v1=deadbeef")
	assert.Equal(t, KindInvalidRequest, KindOf(err))

	err = svc.HandleWebhook(context.Background(), payload, "")
	assert.Equal(t, KindInvalidRequest, KindOf(err))

	// A stale timestamp outside the tolerance window is also rejected.
	stale := signWebhookPayload(payload, testConfig().StripeWebhookSecret, time.Now().Add(-time.Hour))
	err = svc.HandleWebhook(context.Background(), payload, stale)
	assert.Equal(t, KindInvalidRequest, KindOf(err))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
}

func TestWebhookMarksOrderPaidAndRecordsEvent(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 10)
	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {})

	payload := succeededEvent(t, "pi_123", order.ID, testUserID)
	signature := signWebhookPayload(payload, testConfig().StripeWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, signature))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPaid, stored.PaymentStatus)
	assert.Equal(t, "pi_123", stored.PaymentRef)

	var events []models.PaymentEvent
	require.NoError(t, db.Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, "evt_1", events[0].EventID)
	assert.Equal(t, "payment_intent.succeeded", events[0].Type)
}

func TestWebhookRedeliveryIsAccepted(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 10)
	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {})

	payload := succeededEvent(t, "pi_123", order.ID, testUserID)
	signature := signWebhookPayload(payload, testConfig().StripeWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, signature))
	// The redelivered event finds the order already paid; still a 2xx.
	require.NoError(t, svc.HandleWebhook(context.Background(), payload, signature))
}

func TestWebhookIgnoresOtherEventTypes(t *testing.T) {
	db := openTestDB(t)
	order := seedPendingOrder(t, db, testUserID, 10)
	svc := newTestPaymentService(t, db, func(w http.ResponseWriter, r *http.Request) {})

	payload, err := json.Marshal(map[string]any{
		"id":   "evt_2",
		"type": "charge.refunded",
		"data": map[string]any{"object": map[string]any{"id": "ch_1"}},
	})
	require.NoError(t, err)
	signature := signWebhookPayload(payload, testConfig().StripeWebhookSecret, time.Now())

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, signature))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.PaymentStatusPending, stored.PaymentStatus)
}
