package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/grvbrk/vidshelf/internal/extractor"
	"github.com/grvbrk/vidshelf/internal/models"
	"github.com/grvbrk/vidshelf/internal/utils"
)

type Classifier interface {
	Classify(ctx context.Context, rawURL string) (*models.VideoMetadata, error)
}

type PreviewHandler struct {
	Extractor Classifier
	Logger    *log.Logger
}

func NewPreviewHandler(ex Classifier, logger *log.Logger) *PreviewHandler {
	return &PreviewHandler{
		Extractor: ex,
		Logger:    logger,
	}
}

type previewRequest struct {
	URL string `json:"url"`
}

func (ph *PreviewHandler) HandlerPreview(w http.ResponseWriter, r *http.Request) {
	var req previewRequest
	if err := utils.ReadJSON(w, r, &req); err != nil {
		ph.Logger.WithError(err).Warn("Error decoding preview request body")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Invalid request body"})
		return
	}

	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" {
		ph.Logger.Warn("Preview requested without url")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "URL is required"})
		return
	}

	meta, err := ph.Extractor.Classify(r.Context(), rawURL)
	if errors.Is(err, extractor.ErrUnsupportedURL) {
		ph.Logger.WithField("url", rawURL).Info("Unsupported video url")
		utils.WriteJSON(w, http.StatusBadRequest, utils.Envelope{"error": "Unsupported video URL or unable to extract video information"})
		return
	}
	if err != nil {
		ph.Logger.WithError(err).WithField("url", rawURL).Error("Error extracting video metadata")
		utils.WriteJSON(w, http.StatusInternalServerError, utils.Envelope{"error": "Internal Server Error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, meta)
}
