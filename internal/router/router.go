package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/evergreenwebsolutions/onboarding/internal/auth"
	"github.com/evergreenwebsolutions/onboarding/internal/handler"
	mw "github.com/evergreenwebsolutions/onboarding/internal/middleware"
)

func New(
	jwtSecret string,
	origins mw.Origins,
	log *zap.Logger,
	authH *handler.AuthHandler,
	formH *handler.FormHandler,
	subH *handler.SubmissionHandler,
	upH *handler.UploadHandler,
	pages *handler.PageHandler,
	filesDir string,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Recovery(log))
	r.Use(mw.Logger(log))

	// Public routes
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Post("/api/auth/register", authH.Register)
	r.Post("/api/auth/login", authH.Login)
	r.Get("/login", pages.Login)

	// Preflight probes carry no credentials, so they stay outside the gate.
	r.Method(http.MethodOptions, "/api/submissions", http.HandlerFunc(subH.Preflight))

	// Uploaded blobs when the filesystem backend is active.
	if filesDir != "" {
		r.Handle("/files/*", http.StripPrefix("/files/", http.FileServer(http.Dir(filesDir))))
	}

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Gate(jwtSecret))

		r.Get("/api/auth/me", authH.Me)
		r.Post("/api/form", formH.Submit)
		r.Post("/api/upload", upH.Upload)
		r.With(origins.Handler).Get("/api/submissions", subH.List)

		r.Get("/onboarding", pages.Onboarding)
		r.Get("/onboarding/success", pages.Success)
	})

	return r
}
