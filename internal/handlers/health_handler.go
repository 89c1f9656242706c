package handlers

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/grvbrk/vidshelf/internal/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	Store  Pinger
	Logger *log.Logger
}

func NewHealthHandler(p Pinger, logger *log.Logger) *HealthHandler {
	return &HealthHandler{Store: p, Logger: logger}
}

func (hh *HealthHandler) HandlerHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := hh.Store.Ping(ctx); err != nil {
		hh.Logger.WithError(err).Error("Store ping failed")
		utils.WriteJSON(w, http.StatusServiceUnavailable, utils.Envelope{"status": "unavailable"})
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"status": "ok"})
}
