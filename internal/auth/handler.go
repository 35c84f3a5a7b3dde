package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/frahmantamala/document-management/internal/transport"
	"github.com/frahmantamala/document-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

// Login accepts form-encoded credentials and returns a bearer token.
// The "username" field is accepted as an alias for "email" so OAuth2
// password-flow clients work unchanged.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid form body")
		return
	}

	email := r.PostFormValue("email")
	if email == "" {
		email = r.PostFormValue("username")
	}

	dto := LoginDTO{
		Email:    email,
		Password: r.PostFormValue("password"),
	}

	token, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Warn("authentication failed", "error", err)

		switch {
		case err == ErrInvalidCredentials:
			h.WriteUnauthorized(w, "invalid email or password")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, token)
}

// Register creates a new user. A duplicate email is a distinct,
// user-visible 409; it is never folded into a generic failure.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	info, err := h.Service.Register(dto)
	if err != nil {
		switch {
		case err == ErrDuplicateEmail:
			h.WriteError(w, http.StatusConflict, "email is already registered")
		default:
			if _, ok := err.(ValidationError); ok {
				h.WriteError(w, http.StatusBadRequest, err.Error())
			} else {
				h.Logger.Error("registration failed", "error", err)
				h.WriteError(w, http.StatusInternalServerError, "internal server error")
			}
		}
		return
	}

	h.WriteJSON(w, http.StatusCreated, info)
}

// AuthMiddleware guards protected routes. Pre-auth failures (missing
// header, wrong scheme) get precise messages; everything after token
// verification collapses to one generic 401.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			h.WriteUnauthorized(w, "authorization header missing")
			return
		}

		parts := strings.Fields(authHeader)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			h.WriteUnauthorized(w, "invalid authorization scheme")
			return
		}

		claims, err := h.Service.ValidateAccessToken(parts[1])
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			h.WriteUnauthorized(w, "could not validate credentials")
			return
		}

		user, err := h.Service.GetUserWithPermissions(claims.Subject)
		if err != nil {
			// Token subject no longer exists; same outcome as a bad token.
			h.Logger.Warn("token subject not resolvable", "error", err)
			h.WriteUnauthorized(w, "could not validate credentials")
			return
		}

		ctx := context.WithValue(r.Context(), ContextUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
