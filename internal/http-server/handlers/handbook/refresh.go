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

// Refresh forces a handbook pull from the spreadsheet, so operators do not
// have to wait out the cache TTL after editing it.
func Refresh(log *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := log.With(
			sl.Module("http.handlers.handbook"),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		if err := handler.UpdateHandbooks(r.Context()); err != nil {
			logger.Error("refreshing handbooks", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error(fmt.Sprintf("Failed to refresh handbooks: %v", err)))
			return
		}

		logger.Info("handbooks refreshed")
		render.JSON(w, r, response.OK())
	}
}
