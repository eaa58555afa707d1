package media

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
	"go.uber.org/zap"
)

// ResolveRequest carries the local path of the media file to resolve
type ResolveRequest struct {
	Path string `json:"path" binding:"required"`
}

// ResolveMedia resolves a local file to a stable media ID
// @Summary      Resolve media
// @Description  Stat a local media file and derive its stable media ID from name, size and mtime
// @Tags         media
// @Accept       json
// @Produce      json
// @Param        request body ResolveRequest true "Path to the media file"
// @Success      200 {object} types.MediaResponse "Resolved media"
// @Failure      400 {object} types.ErrorResponse "Missing or invalid path"
// @Failure      404 {object} types.ErrorResponse "File not found"
// @Router       /api/v1/media/resolve [post]
func ResolveMedia(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResolveRequest
		if !types.BindJSONOrError(c, &req) {
			return // Error response already sent by utility
		}

		m, err := deps.MediaService.Resolve(c.Request.Context(), req.Path)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		deps.Logger().Info("resolved media",
			zap.String("media_id", m.MediaID),
			zap.String("path", m.Path))

		c.JSON(http.StatusOK, types.NewMediaResponse(m))
	}
}

// GetMediaInfo returns the registry entry for a media ID
// @Summary      Media info
// @Tags         media
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Success      200 {object} types.MediaResponse "Media info"
// @Failure      404 {object} types.ErrorResponse "Media not found"
// @Router       /api/v1/media/{mediaId}/info [get]
func GetMediaInfo(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")

		m, err := deps.MediaService.GetByMediaID(c.Request.Context(), mediaID)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		c.JSON(http.StatusOK, types.NewMediaResponse(m))
	}
}

// ServeMediaFile streams the media file with HTTP range support
// @Summary      Serve media file
// @Description  Serve the registered media file; range requests let players seek
// @Tags         media
// @Produce      octet-stream
// @Param        mediaId path string true "Media ID"
// @Success      200 {string} binary "Media content"
// @Failure      404 {object} types.ErrorResponse "Media not found or file moved"
// @Router       /api/v1/media/{mediaId}/file [get]
func ServeMediaFile(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")

		m, err := deps.MediaService.GetByMediaID(c.Request.Context(), mediaID)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		// The registry stores the path from resolve time; the file may
		// have moved since.
		if _, err := os.Stat(m.Path); err != nil {
			types.SendNotFound(c, "Media file is no longer at its registered path")
			return
		}

		if m.MimeType != "" {
			c.Header("Content-Type", m.MimeType)
		}
		c.File(m.Path)
	}
}
