package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/grvbrk/vidshelf/internal/models"
	"github.com/grvbrk/vidshelf/internal/store"
	"github.com/grvbrk/vidshelf/internal/utils"
)

type VideoHandler struct {
	VideoStore store.VideoStore
	Logger     *log.Logger
}

func NewVideoHandler(videoStore store.VideoStore, logger *log.Logger) *VideoHandler {
	return &VideoHandler{
		VideoStore: videoStore,
		Logger:     logger,
	}
}

func (vh *VideoHandler) HandlerGetVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := vh.VideoStore.ListVideos(r.Context())
	if err != nil {
		vh.Logger.WithError(err).Error("Error getting videos from store")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, videos)
}

func (vh *VideoHandler) HandlerGetVideoByID(w http.ResponseWriter, r *http.Request) {
	videoID, ok := vh.videoID(w, r)
	if !ok {
		return
	}

	video, err := vh.VideoStore.GetVideoByID(r.Context(), videoID)
	if errors.Is(err, store.ErrVideoNotFound) {
		vh.Logger.WithField("id", videoID).Info("Video not found")
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"error": "Video not found"})
		return
	}
	if err != nil {
		vh.Logger.WithError(err).WithField("id", videoID).Error("Error getting video from store")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, video)
}

func (vh *VideoHandler) HandlerCreateVideo(w http.ResponseWriter, r *http.Request) {
	var req models.NewVideo
	if err := utils.ReadJSON(w, r, &req); err != nil {
		vh.Logger.WithError(err).Warn("Error decoding request body in handler")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Invalid request body"})
		return
	}

	id, err := vh.VideoStore.CreateVideo(r.Context(), req)
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		vh.Logger.WithField("fields", verr.Fields).Warn("Missing required fields")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Missing required fields"})
		return
	}
	if err != nil {
		vh.Logger.WithError(err).Error("Error creating video in store")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"id": id, "message": "Video saved successfully"})
}

func (vh *VideoHandler) HandlerDeleteVideoByID(w http.ResponseWriter, r *http.Request) {
	videoID, ok := vh.videoID(w, r)
	if !ok {
		return
	}

	err := vh.VideoStore.DeleteVideo(r.Context(), videoID)
	if errors.Is(err, store.ErrVideoNotFound) {
		vh.Logger.WithField("id", videoID).Info("Video not found for delete")
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"error": "Video not found"})
		return
	}
	if err != nil {
		vh.Logger.WithError(err).WithField("id", videoID).Error("Error deleting video in store")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.Envelope{"message": "Video deleted successfully"})
}

// videoID parses the {id} path parameter. Anything that is not a positive
// integer cannot name a stored video and is answered with 404.
func (vh *VideoHandler) videoID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		vh.Logger.WithField("id", raw).Info("Invalid video id")
		utils.WriteJSON(w, http.StatusNotFound, utils.Envelope{"error": "Video not found"})
		return 0, false
	}
	return id, true
}
