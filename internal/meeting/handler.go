package meeting

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/meetscribe/internal/apperrors"
	"github.com/skillsenselab/meetscribe/internal/logger"
)

// Handler exposes the transcription pipeline over HTTP.
type Handler struct {
	svc *Service
	log *logger.Logger
}

// NewHandler creates a new Handler.
func NewHandler(svc *Service, log *logger.Logger) *Handler {
	return &Handler{
		svc: svc,
		log: log.WithComponent("handler"),
	}
}

// Register mounts the transcription route.
func (h *Handler) Register(r *gin.Engine) {
	r.POST("/transcribe", h.Transcribe)
}

// Transcribe handles POST /transcribe.
func (h *Handler) Transcribe(c *gin.Context) {
	var req TranscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	result, err := h.svc.Transcribe(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeError maps pipeline errors to the wire contract: validation failures
// answer 400 with the bare message; everything else collapses to a uniform
// 500 whose message carries the original failure text.
func (h *Handler) writeError(c *gin.Context, err error) {
	appErr, isApp := apperrors.AsAppError(err)

	if isApp && apperrors.IsValidation(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": appErr.Message})
		return
	}

	message := err.Error()
	if isApp {
		message = appErr.Message
	}
	h.log.WithError(err).Error("Transcription pipeline failed")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Transcription failed",
		"message": message,
	})
}
