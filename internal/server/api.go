package server

import (
	"net/http"

	"github.com/alkime/podcasts/internal/podcast"
	"github.com/alkime/podcasts/internal/saver"
	"github.com/gin-gonic/gin"
)

type generateRequest struct {
	Text string `json:"text"`
	Type string `json:"type"`
}

// handleGenerate proxies a generate call and returns the result as JSON.
func (s *Server) handleGenerate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.logger.Debug("Rejected generate request", "error", err)
		c.JSON(http.StatusBadRequest, podcast.GenerateResult{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	res := s.client.GeneratePodcast(c.Request.Context(), req.Text, req.Type)
	c.JSON(statusFor(res.Kind), res)
}

// handleDownload streams the backend audio to the caller as an attachment.
func (s *Server) handleDownload(c *gin.Context) {
	file := c.Param("file")

	res := s.client.
		WithSaver(saver.NewAttachment(c.Writer)).
		DownloadPodcast(c.Request.Context(), file)
	if res.Success {
		return
	}

	// the attachment may have started before the write failed
	if c.Writer.Written() {
		return
	}
	c.JSON(statusFor(res.Kind), res)
}

// statusFor maps a failure kind to the status the API answers with.
func statusFor(kind podcast.Kind) int {
	switch kind {
	case podcast.KindNone:
		return http.StatusOK
	case podcast.KindSave:
		return http.StatusInternalServerError
	default:
		return http.StatusBadGateway
	}
}
