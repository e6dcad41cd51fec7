// internal/handlers/health_handler.go
package handlers

import (
	"log/slog"
	"net/http"

	"camp_community_bot/internal/model"
	"camp_community_bot/internal/webutil"

	"gorm.io/gorm"
)

type HealthHandler struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewHealthHandler(db *gorm.DB, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Check はDB接続まで含めた死活確認を行います。
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sqlDB, err := h.db.DB()
	if err != nil {
		h.logger.ErrorContext(ctx, "Health check failed: could not get DB object", slog.Any("error", err))
		webutil.HandleError(w, model.ErrInternalServer)
		return
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		h.logger.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
		webutil.HandleError(w, model.ErrInternalServer)
		return
	}

	webutil.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
