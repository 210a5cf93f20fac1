package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/MKhiriev/go-shop-keeper/internal/config"
	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/metrics"
	"github.com/MKhiriev/go-shop-keeper/internal/mock"
	"github.com/MKhiriev/go-shop-keeper/internal/service"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// testServices exposes the mocks behind a test handler.
type testServices struct {
	auth     *mock.MockAuthService
	profile  *mock.MockProfileService
	product  *mock.MockProductService
	discount *mock.MockDiscountService
	review   *mock.MockReviewService
	order    *mock.MockOrderService
	address  *mock.MockAddressService
	payment  *mock.MockPaymentService
	cart     *mock.MockCartService
	appInfo  *mock.MockAppInfoService
}

func newTestHandler(t *testing.T, cfg config.Server) (*Handler, *testServices) {
	t.Helper()

	ctrl := gomock.NewController(t)
	s := &testServices{
		auth:     mock.NewMockAuthService(ctrl),
		profile:  mock.NewMockProfileService(ctrl),
		product:  mock.NewMockProductService(ctrl),
		discount: mock.NewMockDiscountService(ctrl),
		review:   mock.NewMockReviewService(ctrl),
		order:    mock.NewMockOrderService(ctrl),
		address:  mock.NewMockAddressService(ctrl),
		payment:  mock.NewMockPaymentService(ctrl),
		cart:     mock.NewMockCartService(ctrl),
		appInfo:  mock.NewMockAppInfoService(ctrl),
	}

	services := &service.Services{
		AuthService:     s.auth,
		ProfileService:  s.profile,
		ProductService:  s.product,
		DiscountService: s.discount,
		ReviewService:   s.review,
		OrderService:    s.order,
		AddressService:  s.address,
		PaymentService:  s.payment,
		CartService:     s.cart,
		AppInfoService:  s.appInfo,
	}

	return NewHandler(services, metrics.New(), cfg, logger.Nop()), s
}

func claimsFor(userID int64, role models.Role) models.Claims {
	return models.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.FormatInt(userID, 10), ID: "jti"},
		Role:             role,
	}
}

// postQuery sends one operation through the full router.
func postQuery(t *testing.T, h *Handler, token, operation string, variables any) *httptest.ResponseRecorder {
	t.Helper()

	body := map[string]any{"operationName": operation}
	if variables != nil {
		body["variables"] = variables
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/query", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.Init().ServeHTTP(rec, req)
	return rec
}

type testResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []queryError               `json:"errors"`
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) testResponse {
	t.Helper()

	var resp testResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}
