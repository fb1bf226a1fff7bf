// Package handler exposes the identification session over HTTP.
package handler

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/menta2k/image-identifier/pkg/session"
	"github.com/menta2k/image-identifier/pkg/types"
)

// IdentifyHandler handles identification and session endpoints.
type IdentifyHandler struct {
	session *session.Session
}

// NewIdentifyHandler creates a new IdentifyHandler.
func NewIdentifyHandler(s *session.Session) *IdentifyHandler {
	return &IdentifyHandler{session: s}
}

// Identify handles POST /api/v1/identify/:mode. The multipart "image"
// field carries the upload; the response is the final session snapshot
// for the mode.
func (h *IdentifyHandler) Identify(c *gin.Context) {
	mode, ok := types.ParseMode(c.Param("mode"))
	if !ok {
		RespondError(c, http.StatusNotFound, "UNKNOWN_MODE", "unknown mode; use plant, animal or skin")
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_IMAGE", "image field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "UNREADABLE_UPLOAD", "failed to read upload")
		return
	}

	upload := types.Upload{
		Filename: header.Filename,
		MIME:     header.Header.Get("Content-Type"),
		Data:     data,
	}

	snap, err := h.session.Submit(c.Request.Context(), mode, upload)
	if err != nil {
		log.Printf("identifyHandler.Identify: %s submission failed: %v", mode, err)
		status, code, msg := MapError(err)
		RespondError(c, status, code, msg)
		return
	}

	RespondOK(c, snap)
}

// Snapshot handles GET /api/v1/session/:mode.
func (h *IdentifyHandler) Snapshot(c *gin.Context) {
	mode, ok := types.ParseMode(c.Param("mode"))
	if !ok {
		RespondError(c, http.StatusNotFound, "UNKNOWN_MODE", "unknown mode; use plant, animal or skin")
		return
	}

	snap, err := h.session.Snapshot(mode)
	if err != nil {
		status, code, msg := MapError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, snap)
}

// Reset handles POST /api/v1/session/:mode/reset, the mode-change
// transition.
func (h *IdentifyHandler) Reset(c *gin.Context) {
	mode, ok := types.ParseMode(c.Param("mode"))
	if !ok {
		RespondError(c, http.StatusNotFound, "UNKNOWN_MODE", "unknown mode; use plant, animal or skin")
		return
	}

	snap, err := h.session.Reset(mode)
	if err != nil {
		status, code, msg := MapError(err)
		RespondError(c, status, code, msg)
		return
	}
	RespondOK(c, snap)
}

// Health handles GET /healthz.
func (h *IdentifyHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
