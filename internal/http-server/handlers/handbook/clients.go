package handbook

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"timekeeper/internal/lib/api/response"
	"timekeeper/internal/lib/sl"
)

// Clients lists the cached clients handbook.
func Clients(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.handbook"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		clients, err := handler.GetClients(r.Context())
		if err != nil {
			logger.Error("listing clients", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to list clients: %v", err)))
			return
		}

		logger.Debug("clients listed", slog.Int("count", len(clients)))
		render.JSON(w, r, response.Ok(clients))
	}
}
