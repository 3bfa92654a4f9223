package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/rentledger-backend/api/middleware"
	"github.com/angelmondragon/rentledger-backend/internal/rent"
	"github.com/angelmondragon/rentledger-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/rentledger-backend/pkg/errors"
	"github.com/angelmondragon/rentledger-backend/pkg/logger"
)

type testRentService struct {
	listFn      func(ctx context.Context, caller string, input rent.ListPropertyInput) (int64, error)
	unlistFn    func(ctx context.Context, caller string, id int64) error
	bookFn      func(ctx context.Context, caller string, id int64, input rent.BookPropertyInput) error
	unbookFn    func(ctx context.Context, caller string, id int64) error
	ownerFn     func(ctx context.Context, caller string, id int64, refundCents int64) error
	propertyFn  func(ctx context.Context, id int64) (models.Property, error)
	counterFn   func(ctx context.Context) (int64, error)
	rentPriceFn func(ctx context.Context, id int64) (int64, error)
}

func (s *testRentService) ListProperty(ctx context.Context, caller string, input rent.ListPropertyInput) (int64, error) {
	if s.listFn != nil {
		return s.listFn(ctx, caller, input)
	}
	return 0, nil
}

func (s *testRentService) UnlistProperty(ctx context.Context, caller string, id int64) error {
	if s.unlistFn != nil {
		return s.unlistFn(ctx, caller, id)
	}
	return nil
}

func (s *testRentService) BookProperty(ctx context.Context, caller string, id int64, input rent.BookPropertyInput) error {
	if s.bookFn != nil {
		return s.bookFn(ctx, caller, id, input)
	}
	return nil
}

func (s *testRentService) UnbookByGuest(ctx context.Context, caller string, id int64) error {
	if s.unbookFn != nil {
		return s.unbookFn(ctx, caller, id)
	}
	return nil
}

func (s *testRentService) UnbookByOwner(ctx context.Context, caller string, id int64, refundCents int64) error {
	if s.ownerFn != nil {
		return s.ownerFn(ctx, caller, id, refundCents)
	}
	return nil
}

func (s *testRentService) Property(ctx context.Context, id int64) (models.Property, error) {
	if s.propertyFn != nil {
		return s.propertyFn(ctx, id)
	}
	return models.Property{}, nil
}

func (s *testRentService) Counter(ctx context.Context) (int64, error) {
	if s.counterFn != nil {
		return s.counterFn(ctx)
	}
	return 0, nil
}

func (s *testRentService) RentPrice(ctx context.Context, id int64) (int64, error) {
	if s.rentPriceFn != nil {
		return s.rentPriceFn(ctx, id)
	}
	return 0, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withProperty(req *http.Request, identity string, id int64) *http.Request {
	req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("propertyId", strconv.FormatInt(id, 10))
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestPropertyCreateSuccess(t *testing.T) {
	var gotCaller string
	var gotInput rent.ListPropertyInput
	svc := &testRentService{
		listFn: func(ctx context.Context, caller string, input rent.ListPropertyInput) (int64, error) {
			gotCaller = caller
			gotInput = input
			return 7, nil
		},
	}

	body := `{"name":"Cabin","address":"1 Forest Way","price_per_day_cents":100,"number_of_rooms":2,"area_sqm":40}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(body))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "owner-1"))

	resp := httptest.NewRecorder()
	PropertyCreate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotCaller != "owner-1" {
		t.Fatalf("unexpected caller %q", gotCaller)
	}
	if gotInput.PricePerDayCents != 100 || gotInput.Name != "Cabin" {
		t.Fatalf("unexpected input %+v", gotInput)
	}

	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["property_id"] != 7 {
		t.Fatalf("unexpected id payload %v", envelope.Data)
	}
}

func TestPropertyCreateRejectsMissingFields(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/properties", strings.NewReader(`{"address":"x"}`))
	req = req.WithContext(middleware.WithIdentity(req.Context(), "owner-1"))

	resp := httptest.NewRecorder()
	PropertyCreate(&testRentService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestPropertyDetailUnknownID(t *testing.T) {
	svc := &testRentService{
		propertyFn: func(ctx context.Context, id int64) (models.Property, error) {
			return models.Property{}, pkgerrors.New(pkgerrors.CodeUnknownProperty, "no property with this id")
		},
	}

	req := withProperty(httptest.NewRequest(http.MethodGet, "/api/v1/properties/42", nil), "anyone", 42)
	resp := httptest.NewRecorder()
	PropertyDetail(svc, testLogger())(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeUnknownProperty) {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestPropertyBookPassesPayload(t *testing.T) {
	var gotInput rent.BookPropertyInput
	svc := &testRentService{
		bookFn: func(ctx context.Context, caller string, id int64, input rent.BookPropertyInput) error {
			if caller != "guest-1" || id != 3 {
				t.Fatalf("unexpected call %q %d", caller, id)
			}
			gotInput = input
			return nil
		},
	}

	body := `{"starts_at_ms":86400000,"ends_at_ms":259200000,"paid_amount_cents":20}`
	req := withProperty(httptest.NewRequest(http.MethodPost, "/api/v1/properties/3/book", strings.NewReader(body)), "guest-1", 3)
	resp := httptest.NewRecorder()
	PropertyBook(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotInput.PaidAmountCents != 20 || gotInput.StartsAtMs != 86400000 {
		t.Fatalf("unexpected input %+v", gotInput)
	}
}

func TestPropertyBookAllowsEpochStart(t *testing.T) {
	var gotInput rent.BookPropertyInput
	svc := &testRentService{
		bookFn: func(ctx context.Context, caller string, id int64, input rent.BookPropertyInput) error {
			gotInput = input
			return nil
		},
	}

	// Zero is a legitimate start instant; only the pricing engine judges the range.
	body := `{"starts_at_ms":0,"ends_at_ms":86400000,"paid_amount_cents":10}`
	req := withProperty(httptest.NewRequest(http.MethodPost, "/api/v1/properties/3/book", strings.NewReader(body)), "guest-1", 3)
	resp := httptest.NewRecorder()
	PropertyBook(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotInput.StartsAtMs != 0 || gotInput.EndsAtMs != 86400000 {
		t.Fatalf("unexpected input %+v", gotInput)
	}
}

func TestPropertyBookMapsWrongPayment(t *testing.T) {
	svc := &testRentService{
		bookFn: func(ctx context.Context, caller string, id int64, input rent.BookPropertyInput) error {
			return pkgerrors.New(pkgerrors.CodeWrongPayment, "payment must equal the quoted rent")
		},
	}

	body := `{"starts_at_ms":86400000,"ends_at_ms":259200000,"paid_amount_cents":19}`
	req := withProperty(httptest.NewRequest(http.MethodPost, "/api/v1/properties/3/book", strings.NewReader(body)), "guest-1", 3)
	resp := httptest.NewRecorder()
	PropertyBook(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestPropertyUnbookByOwnerPassesRefund(t *testing.T) {
	var gotRefund int64
	svc := &testRentService{
		ownerFn: func(ctx context.Context, caller string, id int64, refundCents int64) error {
			gotRefund = refundCents
			return nil
		},
	}

	body := `{"refund_amount_cents":20}`
	req := withProperty(httptest.NewRequest(http.MethodPost, "/api/v1/properties/3/unbook-by-owner", strings.NewReader(body)), "owner-1", 3)
	resp := httptest.NewRecorder()
	PropertyUnbookByOwner(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if gotRefund != 20 {
		t.Fatalf("unexpected refund %d", gotRefund)
	}
}

func TestPropertyRentPrice(t *testing.T) {
	svc := &testRentService{
		rentPriceFn: func(ctx context.Context, id int64) (int64, error) {
			return 40, nil
		},
	}

	req := withProperty(httptest.NewRequest(http.MethodGet, "/api/v1/properties/3/rent-price", nil), "anyone", 3)
	resp := httptest.NewRecorder()
	PropertyRentPrice(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["rent_price_cents"] != 40 {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}

func TestPropertyIDValidation(t *testing.T) {
	req := withProperty(httptest.NewRequest(http.MethodGet, "/api/v1/properties/abc", nil), "anyone", 0)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("propertyId", "abc")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))

	resp := httptest.NewRecorder()
	PropertyDetail(&testRentService{}, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status %d", resp.Code)
	}
}

func TestLedgerCounter(t *testing.T) {
	svc := &testRentService{
		counterFn: func(ctx context.Context) (int64, error) { return 5, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/counter", nil)
	resp := httptest.NewRecorder()
	LedgerCounter(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.Code)
	}
	var envelope struct {
		Data map[string]int64 `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if envelope.Data["counter"] != 5 {
		t.Fatalf("unexpected payload %v", envelope.Data)
	}
}
