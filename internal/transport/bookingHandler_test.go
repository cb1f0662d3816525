package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sathwikhbhat/ticket-booking-system/internal/entity"
	"github.com/sathwikhbhat/ticket-booking-system/internal/service"
)

type fakeBookingService struct {
	resp *entity.BookingResponse
	err  error
}

func (s *fakeBookingService) Submit(ctx context.Context, req *entity.BookingRequest) (*entity.BookingResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	resp := *s.resp
	resp.UserID = req.UserID
	resp.EventID = req.EventID
	resp.TicketCount = req.TicketCount
	return &resp, nil
}

type fakeInventoryService struct{}

func (s *fakeInventoryService) CheckAndQuote(ctx context.Context, eventID, ticketCount int64) (*service.CapacityQuote, error) {
	return &service.CapacityQuote{Approved: true}, nil
}

func (s *fakeInventoryService) GetAllEvents(ctx context.Context) ([]entity.EventInventoryResponse, error) {
	return nil, nil
}

func (s *fakeInventoryService) GetEvent(ctx context.Context, eventID int64) (*entity.EventInventoryResponse, error) {
	return nil, entity.ErrEventNotFound
}

func (s *fakeInventoryService) GetVenue(ctx context.Context, venueID int64) (*entity.VenueInventoryResponse, error) {
	return nil, entity.ErrVenueNotFound
}

func (s *fakeInventoryService) Decrement(ctx context.Context, eventID, ticketCount int64) (bool, int64, error) {
	return false, 0, entity.ErrEventNotFound
}

type fakeSettlementService struct {
	order *entity.Order
	err   error
}

func (s *fakeSettlementService) Settle(ctx context.Context, fact *entity.ReservationAccepted) error {
	return nil
}

func (s *fakeSettlementService) ReconcileStuckOrders(ctx context.Context, grace time.Duration) (int, error) {
	return 0, nil
}

func (s *fakeSettlementService) GetOrderByRequestID(ctx context.Context, requestID string) (*entity.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

func newTestRouter(booking *fakeBookingService, settlement *fakeSettlementService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if settlement == nil {
		settlement = &fakeSettlementService{err: entity.ErrOrderNotFound}
	}
	return InitRoutes(
		NewBookingHandler(booking),
		NewInventoryHandler(&fakeInventoryService{}),
		NewOrderHandler(settlement),
	)
}

// TestCreateBooking tests the HTTP status mapping of the booking endpoint.
func TestCreateBooking(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "accepted booking",
			body:       `{"userId":7,"eventId":1,"ticketCount":10}`,
			wantStatus: http.StatusOK,
		},
		{
			name:       "malformed body",
			body:       `{"userId":`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing ticket count",
			body:       `{"userId":7,"eventId":1}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "zero ticket count",
			body:       `{"userId":7,"eventId":1,"ticketCount":0}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown customer",
			body:       `{"userId":99,"eventId":1,"ticketCount":1}`,
			serviceErr: entity.ErrCustomerNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown event",
			body:       `{"userId":7,"eventId":42,"ticketCount":1}`,
			serviceErr: entity.ErrEventNotFound,
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "not enough capacity",
			body:       `{"userId":7,"eventId":1,"ticketCount":500}`,
			serviceErr: entity.ErrNotEnoughCapacity,
			wantStatus: http.StatusConflict,
		},
		{
			name:       "bus down",
			body:       `{"userId":7,"eventId":1,"ticketCount":1}`,
			serviceErr: entity.ErrPublishFailed,
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:       "store down",
			body:       `{"userId":7,"eventId":1,"ticketCount":1}`,
			serviceErr: errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &fakeBookingService{
				resp: &entity.BookingResponse{TotalPrice: 200.00, RequestID: "req-1"},
				err:  tt.serviceErr,
			}
			router := newTestRouter(booking, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/booking", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

// TestCreateBookingResponseBody tests that the admission acknowledgment
// carries the request id and the fixed price back to the client.
func TestCreateBookingResponseBody(t *testing.T) {
	booking := &fakeBookingService{
		resp: &entity.BookingResponse{TotalPrice: 200.00, RequestID: "req-42"},
	}
	router := newTestRouter(booking, nil)

	body := `{"userId":7,"eventId":1,"ticketCount":10,"requestId":"req-42"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/booking", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp entity.BookingResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-42", resp.RequestID)
	assert.Equal(t, 200.00, resp.TotalPrice)
	assert.Equal(t, int64(10), resp.TicketCount)
}

// TestGetOrder tests the settlement outcome lookup, including the oversold
// status being visible to the caller.
func TestGetOrder(t *testing.T) {
	tests := []struct {
		name       string
		settlement *fakeSettlementService
		wantStatus int
		wantOrder  entity.OrderStatus
	}{
		{
			name: "decremented order",
			settlement: &fakeSettlementService{
				order: &entity.Order{ID: 1, DedupKey: "req-1", Status: entity.OrderStatusDecremented},
			},
			wantStatus: http.StatusOK,
			wantOrder:  entity.OrderStatusDecremented,
		},
		{
			name: "oversold order",
			settlement: &fakeSettlementService{
				order: &entity.Order{ID: 2, DedupKey: "req-2", Status: entity.OrderStatusOversold},
			},
			wantStatus: http.StatusOK,
			wantOrder:  entity.OrderStatusOversold,
		},
		{
			name:       "unknown order",
			settlement: &fakeSettlementService{err: entity.ErrOrderNotFound},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "store down",
			settlement: &fakeSettlementService{err: errors.New("connection refused")},
			wantStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeBookingService{resp: &entity.BookingResponse{}}, tt.settlement)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/req-1", nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantOrder != "" {
				var order entity.Order
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
				assert.Equal(t, tt.wantOrder, order.Status)
			}
		})
	}
}
