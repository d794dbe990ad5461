package payment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gorilla/mux"
	"github.com/mrashed-dev/doctors-portal-server/cmd/models"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("getting sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Booking{}, &models.Payment{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func newTestRouter(db *gorm.DB, client *Client) *mux.Router {
	router := mux.NewRouter()
	NewPaymentHandler(db, client).RegisterRoutes(router)
	return router
}

func TestCreatePaymentIntent_RelaysClientSecret(t *testing.T) {
	var gotAmount, gotCurrency string
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/payment_intents" {
			t.Errorf("unexpected provider path %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing provider form: %v", err)
		}
		gotAmount = r.PostForm.Get("amount")
		gotCurrency = r.PostForm.Get("currency")
		json.NewEncoder(w).Encode(map[string]string{
			"id":            "pi_test",
			"client_secret": "cs_test_123",
		})
	}))
	defer provider.Close()

	client := &Client{BaseURL: provider.URL, SecretKey: "sk_test", HTTPClient: provider.Client()}
	db := newTestDB(t)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price": 100}`))
	rec := httptest.NewRecorder()
	newTestRouter(db, client).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if gotAmount != "10000" {
		t.Errorf("expected amount in minor units 10000, got %q", gotAmount)
	}
	if gotCurrency != "usd" {
		t.Errorf("expected currency usd, got %q", gotCurrency)
	}

	var result struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if result.ClientSecret != "cs_test_123" {
		t.Errorf("expected relayed client secret, got %q", result.ClientSecret)
	}
}

func TestCreatePaymentIntent_ProviderFailure(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer provider.Close()

	client := &Client{BaseURL: provider.URL, SecretKey: "sk_test", HTTPClient: provider.Client()}
	db := newTestDB(t)

	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price": 100}`))
	rec := httptest.NewRecorder()
	newTestRouter(db, client).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on provider failure, got %d", rec.Code)
	}
}

func TestCreatePayment_MarksExactlyOneBookingPaid(t *testing.T) {
	db := newTestDB(t)

	paidFor := models.Booking{AppointmentDate: "2024-01-01", Email: "a@x.com", Treatment: "Cleaning", Slot: "9am", Price: 60}
	untouched := models.Booking{AppointmentDate: "2024-01-01", Email: "b@x.com", Treatment: "Cleaning", Slot: "10am", Price: 60}
	if err := db.Create(&paidFor).Error; err != nil {
		t.Fatalf("seeding booking: %v", err)
	}
	if err := db.Create(&untouched).Error; err != nil {
		t.Fatalf("seeding booking: %v", err)
	}

	body := `{"bookingId": 1, "email": "a@x.com", "transactionId": "txn_123", "amount": 60}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter(db, NewClient()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var first, second models.Booking
	db.First(&first, paidFor.ID)
	db.First(&second, untouched.ID)

	if !first.Paid || first.TransactionID != "txn_123" {
		t.Errorf("expected booking %d paid with txn_123, got %+v", paidFor.ID, first)
	}
	if second.Paid || second.TransactionID != "" {
		t.Errorf("expected booking %d untouched, got %+v", untouched.ID, second)
	}

	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 payment record, got %d", count)
	}
}

func TestCreatePayment_StaleBookingID(t *testing.T) {
	db := newTestDB(t)

	body := `{"bookingId": 42, "transactionId": "txn_123", "amount": 60}`
	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(body))
	rec := httptest.NewRecorder()
	newTestRouter(db, NewClient()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for a stale booking id, got %d", rec.Code)
	}

	// The payment insert rolls back with the failed booking update.
	var count int64
	db.Model(&models.Payment{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no payment record, got %d", count)
	}
}

func TestCreatePayment_MissingFields(t *testing.T) {
	db := newTestDB(t)

	req := httptest.NewRequest(http.MethodPost, "/payments", strings.NewReader(`{"amount": 60}`))
	rec := httptest.NewRecorder()
	newTestRouter(db, NewClient()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}
