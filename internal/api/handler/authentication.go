package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/finops-kpi-api/internal/usecases/authenticating"
	"github.com/vfg2006/finops-kpi-api/pkg/apiErrors"
	"github.com/vfg2006/finops-kpi-api/pkg/log"
	"github.com/vfg2006/finops-kpi-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Formato de requisição inválido", nil)
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Warn("Falha no login")
			handleAuthError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, LoginResponse{Token: token})
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao obter dados do usuário")
			handleAuthError(w, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

func handleAuthError(w http.ResponseWriter, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		var details any
		if authErr.UserID != 0 {
			details = map[string]any{"user_id": authErr.UserID}
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Err.Error(), details)
		return
	}

	writeInternalError(w, "Erro interno ao autenticar")
}
