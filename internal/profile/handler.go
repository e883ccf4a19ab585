package profile

import (
	"errors"
	"net/http"
	"strings"

	"github.com/redmonkez12/greennest-api/internal/httputil"
	"github.com/redmonkez12/greennest-api/internal/logging"
	"github.com/redmonkez12/greennest-api/internal/session"
	"github.com/redmonkez12/greennest-api/internal/storage"
	"github.com/redmonkez12/greennest-api/internal/user"
	"github.com/redmonkez12/greennest-api/internal/validation"
)

type Handler struct {
	service  *Service
	sessions *session.Manager
	maxBytes int64
}

func NewHandler(service *Service, sessions *session.Manager, maxBytes int64) *Handler {
	return &Handler{service: service, sessions: sessions, maxBytes: maxBytes}
}

// Response carries a profile
type Response struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Profile Profile `json:"profile"`
}

// UpdateResponse carries the profile after an update
type UpdateResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	User    Profile `json:"user"`
}

type updateForm struct {
	Email string `form:"email" validate:"omitempty,email"`
}

// GetProfile returns the caller's profile
// @Summary      Get profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} Response
// @Failure      401 {object} httputil.ErrorResponse "Not logged in"
// @Failure      404 {object} httputil.ErrorResponse "User not found"
// @Router       /get-profile [get]
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Not logged in", httputil.CodeNotAuthenticated, http.StatusUnauthorized)
		return
	}

	p, err := h.service.Get(r.Context(), identity.ID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			httputil.RespondErrorWithCode(w, "User not found", httputil.CodeUserNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to load profile", "error", err)
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, Response{Success: true, Profile: p}, http.StatusOK)
}

// UpdateProfile changes profile fields and the picture
// @Summary      Update profile
// @Description  Multipart form. Only fields present in the form change. profilePic must be an image.
// @Tags         profile
// @Accept       mpfd
// @Produce      json
// @Param        name formData string false "Name"
// @Param        email formData string false "Email"
// @Param        phone formData string false "Phone"
// @Param        address formData string false "Address"
// @Param        profilePic formData file false "Profile picture"
// @Success      200 {object} UpdateResponse
// @Failure      400 {object} httputil.ErrorResponse "Invalid form or email already used"
// @Failure      401 {object} httputil.ErrorResponse "Not logged in"
// @Failure      413 {object} httputil.ErrorResponse "Upload too large"
// @Failure      415 {object} httputil.ErrorResponse "Not an image"
// @Router       /update-profile [post]
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	identity, ok := session.IdentityFromContext(r.Context())
	if !ok {
		httputil.RespondErrorWithCode(w, "Not logged in", httputil.CodeNotAuthenticated, http.StatusUnauthorized)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		if storage.IsTooLarge(err) {
			httputil.RespondErrorWithCode(w, "Upload too large", httputil.CodeUploadTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		logger.Warn("invalid profile form", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid form data", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	upd := user.ProfileUpdate{
		Name:    formField(r, "name", false),
		Email:   formField(r, "email", false),
		Phone:   formField(r, "phone", true),
		Address: formField(r, "address", true),
	}
	if upd.Email != nil {
		if err := validation.Struct(&updateForm{Email: *upd.Email}); err != nil {
			httputil.RespondErrorWithCode(w, "Invalid email format", httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
	}

	pic, err := storage.FormFile(r, "profilePic", storage.Images)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedMedia) {
			httputil.RespondErrorWithCode(w, "Profile picture must be an image", httputil.CodeUnsupportedMedia, http.StatusUnsupportedMediaType)
			return
		}
		logger.Warn("failed to read profile picture", "error", err)
		httputil.RespondErrorWithCode(w, "Invalid form data", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	if pic != nil {
		defer pic.Close()
	}

	p, err := h.service.Update(r.Context(), identity.ID, upd, pic)
	if err != nil {
		switch {
		case errors.Is(err, user.ErrDuplicateEmail):
			httputil.RespondErrorWithCode(w, "User already exists", httputil.CodeEmailAlreadyExists, http.StatusBadRequest)
		case errors.Is(err, user.ErrNotFound):
			httputil.RespondErrorWithCode(w, "User not found", httputil.CodeUserNotFound, http.StatusNotFound)
		default:
			logger.Error("failed to update profile", "error", err)
			httputil.RespondInternalError(w)
		}
		return
	}

	if p.Name != identity.Name || p.Email != identity.Email {
		next := session.Identity{ID: p.ID, Email: p.Email, Name: p.Name}
		if err := h.sessions.Refresh(r.Context(), session.FromContext(r.Context()), next); err != nil {
			logger.Warn("failed to refresh session after profile update", "error", err)
		}
	}

	logger.Info("profile updated", "user_id", identity.ID)
	httputil.RespondJSON(w, UpdateResponse{Success: true, Message: "Profile updated successfully", User: p}, http.StatusOK)
}

// formField returns the trimmed value of key when the form carries it.
// Empty values are dropped unless allowEmpty is set.
func formField(r *http.Request, key string, allowEmpty bool) *string {
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	v := strings.TrimSpace(values[0])
	if v == "" && !allowEmpty {
		return nil
	}
	return &v
}
