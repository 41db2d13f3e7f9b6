// Copyright (c) 2026 Travia. All rights reserved.
// Author: ngominh.travia@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	blogcategory "github.com/minhngo/travia/internal/blog/category"
	blogpost "github.com/minhngo/travia/internal/blog/post"
	mediafile "github.com/minhngo/travia/internal/media/file"
	mediafolder "github.com/minhngo/travia/internal/media/folder"
	medialibrary "github.com/minhngo/travia/internal/media/library"
	"github.com/minhngo/travia/internal/menu"
	"github.com/minhngo/travia/internal/platform/config"
	"github.com/minhngo/travia/internal/platform/constants"
	"github.com/minhngo/travia/internal/platform/middleware"
	"github.com/minhngo/travia/internal/procedure"
	tourcategory "github.com/minhngo/travia/internal/tour/category"
	tourdeparture "github.com/minhngo/travia/internal/tour/departure"
	tourdestination "github.com/minhngo/travia/internal/tour/destination"
	tourdetail "github.com/minhngo/travia/internal/tour/detail"
	"github.com/minhngo/travia/internal/users/account"
	"github.com/minhngo/travia/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here; no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 whenever the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (login, register, sessions).
	Auth *auth.Handler

	// Account handles user profiles and account administration.
	Account *account.Handler

	// BlogCategory manages the blog category tree.
	BlogCategory *blogcategory.Handler

	// BlogPost manages blog articles.
	BlogPost *blogpost.Handler

	// TourCategory manages the tour category tree.
	TourCategory *tourcategory.Handler

	// TourDetail manages the tour catalogue and departure dates.
	TourDetail *tourdetail.Handler

	// Destination manages the destination tree.
	Destination *tourdestination.Handler

	// Departure manages departure points.
	Departure *tourdeparture.Handler

	// MediaFolder manages media library folders.
	MediaFolder *mediafolder.Handler

	// MediaFile manages uploads and the file library.
	MediaFile *mediafile.Handler

	// MediaLibrary manages gallery images attached to tours and categories.
	MediaLibrary *medialibrary.Handler

	// Menu manages site navigation.
	Menu *menu.Handler

	// Procedure exposes the admin passthrough to database functions.
	Procedure *procedure.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// Uploaded media is served straight off the upload directory.
	fileServer := http.StripPrefix(constants.UploadURLPrefix, http.FileServer(http.Dir(cfg.UploadDir)))
	r.Get(constants.UploadURLPrefix+"*", fileServer.ServeHTTP)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())

		api.Route("/categories", h.BlogCategory.RegisterRoutes)
		api.Route("/posts", h.BlogPost.RegisterRoutes)

		api.Route("/tour-categories", h.TourCategory.RegisterRoutes)
		api.Route("/tours", h.TourDetail.RegisterRoutes)
		api.Route("/destinations", h.Destination.RegisterRoutes)
		api.Route("/departure-points", h.Departure.RegisterRoutes)

		api.Route("/folders", h.MediaFolder.RegisterRoutes)
		api.Route("/files", h.MediaFile.RegisterRoutes)
		api.Route("/library-images", h.MediaLibrary.RegisterRoutes)

		api.Route("/menus", h.Menu.RegisterRoutes)
		api.Route("/procedures", h.Procedure.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
