package storage

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/redmonkez12/greennest-api/internal/httputil"
	"github.com/redmonkez12/greennest-api/internal/logging"
)

// Handler serves stored objects read-only.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Serve streams one uploaded object
// @Summary      Get uploaded media
// @Tags         uploads
// @Produce      octet-stream
// @Param        key path string true "Object key"
// @Success      200 {file} binary
// @Failure      404 {object} httputil.ErrorResponse "Not found"
// @Router       /uploads/{key} [get]
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	logger := logging.GetLoggerFromContext(r.Context())
	key := chi.URLParam(r, "key")

	body, info, err := h.store.Open(r.Context(), key)
	if err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidKey) {
			httputil.RespondErrorWithCode(w, "Not found", httputil.CodeNotFound, http.StatusNotFound)
			return
		}
		logger.Error("failed to open upload", "key", key, "error", err)
		httputil.RespondInternalError(w)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", info.ContentType)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Cache-Control", "public, max-age=86400, immutable")
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, body); err != nil {
		logger.Warn("failed to stream upload", "key", key, "error", err)
	}
}
