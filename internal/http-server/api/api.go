// Package api is the operator HTTP surface: a health probe plus a couple
// of handbook endpoints behind an api key.
package api

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timekeeper/internal/config"
	"timekeeper/internal/http-server/handlers/errors"
	"timekeeper/internal/http-server/handlers/handbook"
	"timekeeper/internal/http-server/handlers/health"
	"timekeeper/internal/http-server/middleware/authenticate"
	"timekeeper/internal/lib/sl"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	handbook.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler) error {

	server := Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	router := chi.NewRouter()
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errors.NotFound(log))
	router.MethodNotAllowed(errors.NotAllowed(log))

	router.Get("/health", health.Health())

	router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(authenticate.New(log, conf.Listen.ApiKey))
		v1.Route("/handbooks", func(r chi.Router) {
			r.Post("/refresh", handbook.Refresh(log, handler))
			r.Get("/clients", handbook.Clients(log, handler))
		})
	})

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Handler:  router,
		ErrorLog: httpLog,
	}

	serverAddress := fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port)
	listener, err := net.Listen("tcp", serverAddress)
	if err != nil {
		return err
	}

	server.log.Info("starting api server", slog.String("address", serverAddress))

	return server.httpServer.Serve(listener)
}
