package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/redmonkez12/greennest-api/internal/auth"
	"github.com/redmonkez12/greennest-api/internal/cart"
	"github.com/redmonkez12/greennest-api/internal/config"
	"github.com/redmonkez12/greennest-api/internal/httputil"
	"github.com/redmonkez12/greennest-api/internal/logging"
	"github.com/redmonkez12/greennest-api/internal/profile"
	"github.com/redmonkez12/greennest-api/internal/session"
	"github.com/redmonkez12/greennest-api/internal/storage"
	"github.com/redmonkez12/greennest-api/internal/story"
)

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Auth    *auth.Handler
	Cart    *cart.Handler
	Profile *profile.Handler
	Story   *story.Handler
	Uploads *storage.Handler
}

// NewRouter creates and configures the HTTP router
func NewRouter(cfg *config.Config, h Handlers, sessions *session.Manager, logger *logging.Logger) *chi.Mux {
	r := chi.NewRouter()

	// CORS - must be first
	if len(cfg.Server.TrustedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.Server.TrustedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			ExposedHeaders:   []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           300, // 5 minutes
		}))
	}

	r.Use(SecurityHeaders)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(logger))
	r.Use(middleware.Compress(5))
	r.Use(sessions.Load)

	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)

	// Swagger UI - only in development
	if cfg.Server.IsDevelopment() {
		logger.Info("swagger UI enabled at /swagger/*")
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	r.Post("/signup", h.Auth.Signup)
	r.Post("/login", h.Auth.Login)
	r.Get("/check-session", h.Auth.CheckSession)
	r.Post("/logout", h.Auth.Logout)
	r.Post("/send-otp", h.Auth.SendOTP)
	r.Post("/reset-password", h.Auth.ResetPassword)

	r.Post("/submit-story", h.Story.Submit)
	r.Get("/stories", h.Story.List)

	r.Get(storage.PublicPrefix+"{key}", h.Uploads.Serve)

	// Protected routes (require a logged-in session)
	r.Group(func(r chi.Router) {
		r.Use(sessions.RequireAuth)

		r.Get("/get-profile", h.Profile.GetProfile)
		r.Post("/update-profile", h.Profile.UpdateProfile)

		r.Post("/add-to-cart", h.Cart.AddToCart)
		r.Get("/get-cart", h.Cart.GetCart)
		r.Post("/remove-from-cart", h.Cart.RemoveFromCart)
		r.Post("/checkout", h.Cart.Checkout)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.RespondErrorWithCode(w, "Not found", httputil.CodeNotFound, http.StatusNotFound)
	})

	return r
}

// handleRoot confirms the backend is reachable
// @Summary      Connectivity check
// @Tags         health
// @Produce      json
// @Success      200 {object} httputil.MessageResponse
// @Router       / [get]
func handleRoot(w http.ResponseWriter, r *http.Request) {
	httputil.RespondMessage(w, "GreenNest backend connected successfully!")
}

// handleHealth is a simple health check endpoint
// @Summary      Health check
// @Description  Check if the API is running
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       /health [get]
func handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, map[string]string{"status": "api is running"}, http.StatusOK)
}
