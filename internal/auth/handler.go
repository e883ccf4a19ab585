package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/redmonkez12/greennest-api/internal/httputil"
	"github.com/redmonkez12/greennest-api/internal/logging"
	"github.com/redmonkez12/greennest-api/internal/session"
	"github.com/redmonkez12/greennest-api/internal/user"
	"github.com/redmonkez12/greennest-api/internal/validation"
)

// Handler contains HTTP handlers for authentication endpoints
type Handler struct {
	service  *Service
	sessions *session.Manager
}

func NewHandler(service *Service, sessions *session.Manager) *Handler {
	return &Handler{
		service:  service,
		sessions: sessions,
	}
}

// SignupRequest represents the registration request body
type SignupRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// SendOTPRequest represents the password reset request
type SendOTPRequest struct {
	Email string `json:"email" validate:"required"`
}

// ResetPasswordRequest represents the password reset confirmation
type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	OTP         string `json:"otp" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	User    session.Identity `json:"user"`
}

// SessionResponse reports whether the caller is logged in
type SessionResponse struct {
	LoggedIn bool              `json:"loggedIn"`
	User     *session.Identity `json:"user,omitempty"`
}

// Signup handles user registration
// @Summary      Register a new user
// @Description  Create an account with name, email and password. Does not log in.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SignupRequest true "Registration details"
// @Success      200 {object} httputil.MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields or email already registered"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /signup [post]
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SignupRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if _, err := h.service.Signup(r.Context(), req.Name, req.Email, req.Password); err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			logger.Warn("signup failed: email already exists")
			respondError(w, "User already exists", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
			return
		}
		logger.Error("signup failed", "error", err)
		httputil.RespondInternalError(w)
		return
	}

	respondJSON(w, httputil.MessageResponse{Success: true, Message: "Registered successfully!"}, http.StatusOK)
}

// Login handles user authentication
// @Summary      Login
// @Description  Check credentials and bind the user to the session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login credentials"
// @Success      200 {object} LoginResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields"
// @Failure      401 {object} httputil.ErrorResponse "Unknown user or wrong password"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req LoginRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	u, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("login failed: user not found")
			respondError(w, "User not found", httputil.CodeUserNotFound, http.StatusUnauthorized)
		case errors.Is(err, ErrInvalidCredentials):
			logger.Warn("login failed: invalid password")
			respondError(w, "Invalid password", httputil.CodeInvalidCredentials, http.StatusUnauthorized)
		default:
			logger.Error("login failed", "error", err)
			httputil.RespondInternalError(w)
		}
		return
	}

	identity := session.Identity{ID: u.ID, Email: u.Email, Name: u.Name}
	s := session.FromContext(r.Context())

	cookie, err := h.sessions.Authenticate(r.Context(), s, identity)
	if err != nil {
		logger.Error("failed to start session", "error", err)
		httputil.RespondInternalError(w)
		return
	}
	h.sessions.SetCookie(w, cookie, s.ExpiresAt)

	logger.Info("user logged in", "user_id", u.ID)

	respondJSON(w, LoginResponse{Success: true, Message: "Login successful!", User: identity}, http.StatusOK)
}

// CheckSession reports the current login state
// @Summary      Check session
// @Description  Report whether the session cookie belongs to a logged-in user
// @Tags         auth
// @Produce      json
// @Success      200 {object} SessionResponse
// @Router       /check-session [get]
func (h *Handler) CheckSession(w http.ResponseWriter, r *http.Request) {
	identity, err := h.sessions.RequireAuthenticated(session.FromContext(r.Context()))
	if err != nil {
		respondJSON(w, SessionResponse{LoggedIn: false}, http.StatusOK)
		return
	}

	respondJSON(w, SessionResponse{LoggedIn: true, User: &identity}, http.StatusOK)
}

// Logout ends the session
// @Summary      Logout
// @Description  Destroy the session and clear its cookie. Succeeds for anonymous callers too.
// @Tags         auth
// @Produce      json
// @Success      200 {object} httputil.MessageResponse
// @Failure      500 {object} httputil.ErrorResponse "Logout failed"
// @Router       /logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	if err := h.sessions.Destroy(r.Context(), session.FromContext(r.Context())); err != nil {
		logger.Error("failed to destroy session", "error", err)
		respondError(w, "Logout failed", httputil.CodeLogoutFailed, http.StatusInternalServerError)
		return
	}

	h.sessions.ClearCookie(w)

	logger.Info("user logged out")

	httputil.RespondMessage(w, "Logged out successfully")
}

// SendOTP handles password reset requests
// @Summary      Request password reset
// @Description  Email a six digit code valid for ten minutes
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body SendOTPRequest true "Account email"
// @Success      200 {object} httputil.MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing email"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Mail delivery failed"
// @Router       /send-otp [post]
func (h *Handler) SendOTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req SendOTPRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.service.RequestPasswordReset(r.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("otp request for unknown user")
			respondError(w, "User not found", httputil.CodeUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrMailDelivery):
			logger.Error("otp email delivery failed", "error", err)
			respondError(w, "Failed to send OTP email", httputil.CodeMailDeliveryFailed, http.StatusInternalServerError)
		default:
			logger.Error("otp request failed", "error", err)
			httputil.RespondInternalError(w)
		}
		return
	}

	httputil.RespondMessage(w, "OTP sent to your email")
}

// ResetPassword handles password reset confirmation
// @Summary      Reset password
// @Description  Set a new password using the emailed code. The code works once.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ResetPasswordRequest true "Email, code and new password"
// @Success      200 {object} httputil.MessageResponse
// @Failure      400 {object} httputil.ErrorResponse "Missing fields, invalid or expired code"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Failure      500 {object} httputil.ErrorResponse "Internal server error"
// @Router       /reset-password [post]
func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	var req ResetPasswordRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	logger = logger.WithFields(map[string]any{"email": req.Email})

	if err := h.service.CompletePasswordReset(r.Context(), req.Email, req.OTP, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, user.ErrNotFound):
			logger.Warn("password reset for unknown user")
			respondError(w, "User not found", httputil.CodeUserNotFound, http.StatusNotFound)
		case errors.Is(err, ErrOTPInvalid):
			logger.Warn("password reset with invalid otp")
			respondError(w, "Invalid OTP", httputil.CodeOTPInvalid, http.StatusBadRequest)
		case errors.Is(err, ErrOTPExpired):
			logger.Warn("password reset with expired otp")
			respondError(w, "OTP expired", httputil.CodeOTPExpired, http.StatusBadRequest)
		default:
			logger.Error("password reset failed", "error", err)
			httputil.RespondInternalError(w)
		}
		return
	}

	httputil.RespondMessage(w, "Password reset successfully")
}

// decodeRequest reads a JSON body into dst and validates it. It writes the
// error response itself and returns false when the request is unusable.
func decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	logger := logging.GetLoggerFromContext(r.Context())

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Warn("invalid request body", "error", err.Error())
		respondError(w, "Invalid request body", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return false
	}

	if err := validation.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Has("email", "email") {
			respondError(w, "Invalid email format", httputil.CodeValidationFailed, http.StatusBadRequest)
			return false
		}
		logger.Warn("request validation failed", "error", err.Error())
		respondError(w, "All fields required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return false
	}

	return true
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, data any, statusCode int) {
	httputil.RespondJSON(w, data, statusCode)
}

// respondError sends an error response with a machine-readable code
func respondError(w http.ResponseWriter, message string, code string, statusCode int) {
	httputil.RespondErrorWithCode(w, message, code, statusCode)
}
