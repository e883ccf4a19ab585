package story

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/redmonkez12/greennest-api/internal/httputil"
	"github.com/redmonkez12/greennest-api/internal/logging"
	"github.com/redmonkez12/greennest-api/internal/session"
	"github.com/redmonkez12/greennest-api/internal/storage"
	"github.com/redmonkez12/greennest-api/internal/validation"
)

type Handler struct {
	service  *Service
	maxBytes int64
}

func NewHandler(service *Service, maxBytes int64) *Handler {
	return &Handler{service: service, maxBytes: maxBytes}
}

// SubmitRequest is the multipart form of POST /submit-story
type SubmitRequest struct {
	Name  string `form:"name" validate:"required"`
	Email string `form:"email" validate:"required,email"`
	Story string `form:"story" validate:"required"`
}

// SubmitResponse carries the stored story
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Story   *Story `json:"story"`
}

// ListResponse carries the newest stories
type ListResponse struct {
	Success bool    `json:"success"`
	Stories []Story `json:"stories"`
}

// Submit stores a story with an optional media attachment
// @Summary      Submit a story
// @Description  Multipart form. Logged-in callers may omit name and email.
// @Tags         stories
// @Accept       mpfd
// @Produce      json
// @Param        name formData string false "Author name"
// @Param        email formData string false "Author email"
// @Param        story formData string true "Story text"
// @Param        media formData file false "Image, audio or video"
// @Success      200 {object} SubmitResponse
// @Failure      400 {object} httputil.ErrorResponse "All fields required"
// @Failure      413 {object} httputil.ErrorResponse "Upload too large"
// @Failure      415 {object} httputil.ErrorResponse "Unsupported media"
// @Router       /submit-story [post]
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		if storage.IsTooLarge(err) {
			httputil.RespondErrorWithCode(w, "Upload too large", httputil.CodeUploadTooLarge, http.StatusRequestEntityTooLarge)
			return
		}
		logger.Warn("invalid story form", "error", err.Error())
		httputil.RespondErrorWithCode(w, "Invalid form data", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := SubmitRequest{
		Name:  strings.TrimSpace(r.FormValue("name")),
		Email: strings.TrimSpace(r.FormValue("email")),
		Story: strings.TrimSpace(r.FormValue("story")),
	}
	if identity, ok := session.IdentityFromContext(r.Context()); ok {
		if req.Name == "" {
			req.Name = identity.Name
		}
		if req.Email == "" {
			req.Email = identity.Email
		}
	}

	if err := validation.Struct(&req); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) && verr.Has("email", "email") {
			httputil.RespondErrorWithCode(w, "Invalid email format", httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		httputil.RespondErrorWithCode(w, "All fields required", httputil.CodeValidationFailed, http.StatusBadRequest)
		return
	}

	media, err := storage.FormFile(r, "media", storage.Media)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedMedia) {
			httputil.RespondErrorWithCode(w, "Media must be an image, audio or video file", httputil.CodeUnsupportedMedia, http.StatusUnsupportedMediaType)
			return
		}
		logger.Warn("failed to read story media", "error", err)
		httputil.RespondErrorWithCode(w, "Invalid form data", httputil.CodeInvalidRequestBody, http.StatusBadRequest)
		return
	}
	if media != nil {
		defer media.Close()
	}

	st, err := h.service.Submit(r.Context(), req.Name, req.Email, req.Story, media)
	if err != nil {
		logger.Error("failed to submit story", "error", err)
		httputil.RespondInternalError(w)
		return
	}

	logger.Info("story submitted", "story_id", st.ID)
	httputil.RespondJSON(w, SubmitResponse{Success: true, Message: "Story submitted successfully!", Story: st}, http.StatusOK)
}

// List returns the newest stories
// @Summary      List stories
// @Tags         stories
// @Produce      json
// @Param        limit query int false "Maximum number of stories (default 20, max 100)"
// @Success      200 {object} ListResponse
// @Router       /stories [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondErrorWithCode(w, "Invalid limit", httputil.CodeValidationFailed, http.StatusBadRequest)
			return
		}
		limit = n
	}

	stories, err := h.service.List(r.Context(), limit)
	if err != nil {
		logger.Error("failed to list stories", "error", err)
		httputil.RespondInternalError(w)
		return
	}

	httputil.RespondJSON(w, ListResponse{Success: true, Stories: stories}, http.StatusOK)
}
