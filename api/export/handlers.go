package export

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
	annotationsvc "github.com/marginote/annotator-api/internal/services/annotations"
	exportsvc "github.com/marginote/annotator-api/internal/services/export"
	"go.uber.org/zap"
)

// ExportAnnotations serializes a media source's annotations to a subtitle or JSON document
// @Summary      Export annotations
// @Description  Export all annotations for a media source as WebVTT, SRT or JSON
// @Tags         export
// @Produce      text/vtt,application/x-subrip,application/json
// @Param        mediaId path string true "Media ID"
// @Param        format path string true "Export format" Enums(vtt, srt, json)
// @Param        download query bool false "Send as file attachment"
// @Success      200 {string} string "Exported document"
// @Failure      400 {object} types.ErrorResponse "Unknown format"
// @Failure      404 {object} types.ErrorResponse "No annotations to export"
// @Router       /api/v1/media/{mediaId}/export/{format} [get]
func ExportAnnotations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")

		format, err := exportsvc.ParseFormat(c.Param("format"))
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		list, err := deps.AnnotationService.ListByMedia(c.Request.Context(), mediaID, annotationsvc.ListFilter{})
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		opts := exportsvc.Options{
			PointCueDurationMs: int64(deps.Export.PointCueDurationMs),
			RequireAnnotations: format != exportsvc.FormatJSON,
		}
		data, err := exportsvc.Export(format, list, opts)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		deps.Logger().Info("exported annotations",
			zap.String("media_id", mediaID),
			zap.String("format", string(format)),
			zap.Int("count", len(list)))

		if c.Query("download") == "true" {
			filename := fmt.Sprintf("%s.%s", mediaID, format.Extension())
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		}
		c.Data(http.StatusOK, format.ContentType(), data)
	}
}

// ImportAnnotations loads annotations from a previously exported JSON document
// @Summary      Import annotations
// @Description  Import annotations from a JSON export into this media source
// @Tags         export
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        document body export.Document true "Exported JSON document"
// @Success      201 {object} object{imported=int} "Number of annotations imported"
// @Failure      400 {object} types.ErrorResponse "Malformed document"
// @Router       /api/v1/media/{mediaId}/import [post]
func ImportAnnotations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")

		data, err := c.GetRawData()
		if err != nil {
			types.SendBadRequest(c, "Failed to read request body")
			return
		}

		imported, err := exportsvc.Import(c.Request.Context(), deps.AnnotationService, mediaID, data)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		deps.Logger().Info("imported annotations",
			zap.String("media_id", mediaID),
			zap.Int("count", len(imported)))

		c.JSON(http.StatusCreated, gin.H{"imported": len(imported)})
	}
}
