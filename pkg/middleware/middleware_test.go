package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/finops-kpi-api/internal/domain"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/authenticating/mocks"
	"github.com/vfg2006/finops-kpi-api/pkg/log"
	"go.uber.org/mock/gomock"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authService := mocks.NewMockAuthenticator(ctrl)

	var receivedClaims *domain.Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		receivedClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	handler := AuthMiddleware(authService)(next)

	tests := []struct {
		name           string
		path           string
		header         string
		setup          func()
		expectedStatus int
		expectClaims   bool
	}{
		{name: "Healthcheck é público", path: "/healthcheck", setup: func() {}, expectedStatus: http.StatusOK},
		{name: "Login é público", path: "/v1/login", setup: func() {}, expectedStatus: http.StatusOK},
		{name: "Sem cabeçalho", path: "/v1/reports/deposit", setup: func() {}, expectedStatus: http.StatusUnauthorized},
		{name: "Sem prefixo Bearer", path: "/v1/reports/deposit", header: "abc", setup: func() {}, expectedStatus: http.StatusUnauthorized},
		{
			name:   "Token inválido",
			path:   "/v1/reports/deposit",
			header: "Bearer invalido",
			setup: func() {
				authService.EXPECT().ValidateToken("invalido").Return(nil, authenticating.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Token válido",
			path:   "/v1/reports/deposit",
			header: "Bearer valido",
			setup: func() {
				authService.EXPECT().ValidateToken("valido").Return(&domain.Claims{UserID: 9, UserRoleID: RoleViewer}, nil)
			},
			expectedStatus: http.StatusOK,
			expectClaims:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receivedClaims = nil
			tt.setup()

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			if tt.expectClaims {
				if assert.NotNil(t, receivedClaims) {
					assert.Equal(t, 9, receivedClaims.UserID)
				}
			} else {
				assert.Nil(t, receivedClaims)
			}
		})
	}
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		claims         *domain.Claims
		middleware     func(http.Handler) http.Handler
		expectedStatus int
	}{
		{name: "Sem autenticação", claims: nil, middleware: AllRoles(), expectedStatus: http.StatusUnauthorized},
		{name: "Viewer lê relatórios", claims: &domain.Claims{UserRoleID: RoleViewer}, middleware: AllRoles(), expectedStatus: http.StatusOK},
		{name: "Viewer não exporta", claims: &domain.Claims{UserRoleID: RoleViewer}, middleware: AdminOrAnalyst(), expectedStatus: http.StatusForbidden},
		{name: "Analista exporta", claims: &domain.Claims{UserRoleID: RoleAnalyst}, middleware: AdminOrAnalyst(), expectedStatus: http.StatusOK},
		{name: "Analista não executa cron", claims: &domain.Claims{UserRoleID: RoleAnalyst}, middleware: AdminOnly(), expectedStatus: http.StatusForbidden},
		{name: "Admin executa cron", claims: &domain.Claims{UserRoleID: RoleAdmin}, middleware: AdminOnly(), expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/reports/deposit", nil)
			if tt.claims != nil {
				req = req.WithContext(contextWithClaims(req, tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("Origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/markets", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "Content-Disposition", rec.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("Origem não permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/markets", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Preflight", func(t *testing.T) {
		called := false
		preflight := Cors([]string{"*"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))

		req := httptest.NewRequest(http.MethodOptions, "/v1/reports/deposit", nil)
		req.Header.Set("Origin", "https://qualquer.example")
		rec := httptest.NewRecorder()

		preflight.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, called)
		assert.Equal(t, "https://qualquer.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLoggingMiddleware_SetsCorrelationID(t *testing.T) {
	var contextID string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contextID = log.GetCorrelationID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthcheck", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.NotEmpty(t, contextID)
	assert.Equal(t, contextID, rec.Header().Get(CorrelationIDHeader))
}

func TestLogPanicMiddleware(t *testing.T) {
	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(errors.New("falha inesperada"))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/reports/deposit", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "SRV_001")
}
