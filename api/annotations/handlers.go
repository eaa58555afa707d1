package annotations

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/marginote/annotator-api/api/types"
	"github.com/marginote/annotator-api/internal/models"
	annotationsvc "github.com/marginote/annotator-api/internal/services/annotations"
	apperrors "github.com/marginote/annotator-api/pkg/errors"
	"github.com/marginote/annotator-api/pkg/timecode"
	"go.uber.org/zap"
)

// CreateAnnotationRequest is the create payload. StartMs is a pointer so
// that an explicit 0 (media start) passes required validation.
type CreateAnnotationRequest struct {
	StartMs  *int64         `json:"start_ms" binding:"required"`
	EndMs    *int64         `json:"end_ms"`
	Text     string         `json:"text"`
	Category string         `json:"category"`
	Status   string         `json:"status"`
	Author   string         `json:"author"`
	Shapes   []models.Shape `json:"shapes"`
}

// UpdateAnnotationRequest is a partial update; absent fields are left
// unchanged. Supplying start_ms replaces the whole timing: with end_ms
// it becomes a range, without it a point.
type UpdateAnnotationRequest struct {
	StartMs  *int64          `json:"start_ms"`
	EndMs    *int64          `json:"end_ms"`
	Text     *string         `json:"text"`
	Category *string         `json:"category"`
	Status   *string         `json:"status"`
	Author   *string         `json:"author"`
	Shapes   *[]models.Shape `json:"shapes"`
}

func timingFromMs(startMs int64, endMs *int64) (timecode.Timing, error) {
	if endMs == nil {
		return timecode.PointTiming(startMs)
	}
	return timecode.RangeTiming(startMs, *endMs)
}

// CreateAnnotation creates a new annotation for a media source
// @Summary      Create annotation
// @Description  Create a point or range annotation on a media timeline
// @Tags         annotations
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        annotation body CreateAnnotationRequest true "Annotation data"
// @Success      201 {object} types.AnnotationResponse "Created annotation"
// @Failure      400 {object} types.ErrorResponse "Invalid request or timing"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/media/{mediaId}/annotations [post]
func CreateAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")

		var req CreateAnnotationRequest
		if !types.BindJSONOrError(c, &req) {
			return // Error response already sent by utility
		}

		timing, err := timingFromMs(*req.StartMs, req.EndMs)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		annotation, err := deps.AnnotationService.Create(c.Request.Context(), mediaID, annotationsvc.CreateRequest{
			Timing:   timing,
			Text:     req.Text,
			Shapes:   req.Shapes,
			Category: req.Category,
			Status:   req.Status,
			Author:   req.Author,
		})
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		deps.Logger().Info("created annotation",
			zap.Uint("id", annotation.ID),
			zap.String("media_id", mediaID),
			zap.Int64("start_ms", annotation.StartMs))

		resp, err := types.NewAnnotationResponse(annotation)
		if err != nil {
			types.SendInternalError(c, "Failed to encode annotation")
			return
		}
		types.SendCreated(c, resp)
	}
}

// GetAnnotations retrieves all annotations for a media source
// @Summary      List annotations
// @Description  Retrieve all annotations for a media source in canonical start order
// @Tags         annotations
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        category query string false "Filter by category"
// @Param        status query string false "Filter by workflow status" Enums(open, in_progress, resolved, wont_fix)
// @Success      200 {object} types.AnnotationsResponse "List of annotations"
// @Failure      400 {object} types.ErrorResponse "Invalid category"
// @Failure      500 {object} types.ErrorResponse "Internal server error"
// @Router       /api/v1/media/{mediaId}/annotations [get]
func GetAnnotations(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")
		filter := annotationsvc.ListFilter{
			Category: c.Query("category"),
			Status:   c.Query("status"),
		}

		list, err := deps.AnnotationService.ListByMedia(c.Request.Context(), mediaID, filter)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		resp, err := types.NewAnnotationsResponse(mediaID, list)
		if err != nil {
			types.SendInternalError(c, "Failed to encode annotations")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetAnnotation retrieves a single annotation
// @Summary      Get annotation
// @Tags         annotations
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        id path int true "Annotation ID"
// @Success      200 {object} types.AnnotationResponse "Annotation"
// @Failure      404 {object} types.ErrorResponse "Annotation not found"
// @Router       /api/v1/media/{mediaId}/annotations/{id} [get]
func GetAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return // Error response already sent by utility
		}

		annotation, err := deps.AnnotationService.Get(c.Request.Context(), id, mediaID)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		resp, err := types.NewAnnotationResponse(annotation)
		if err != nil {
			types.SendInternalError(c, "Failed to encode annotation")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateAnnotation updates an existing annotation
// @Summary      Update annotation
// @Description  Partially update an annotation's text, shapes, category, author or timing
// @Tags         annotations
// @Accept       json
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        id path int true "Annotation ID"
// @Param        annotation body UpdateAnnotationRequest true "Fields to update"
// @Success      200 {object} types.AnnotationResponse "Updated annotation"
// @Failure      400 {object} types.ErrorResponse "Invalid request or timing"
// @Failure      404 {object} types.ErrorResponse "Annotation not found"
// @Router       /api/v1/media/{mediaId}/annotations/{id} [put]
func UpdateAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return // Error response already sent by utility
		}

		var req UpdateAnnotationRequest
		if !types.BindJSONOrError(c, &req) {
			return // Error response already sent by utility
		}

		patch := annotationsvc.UpdatePatch{
			Text:     req.Text,
			Category: req.Category,
			Status:   req.Status,
			Author:   req.Author,
			Shapes:   req.Shapes,
		}
		if req.StartMs != nil {
			timing, err := timingFromMs(*req.StartMs, req.EndMs)
			if err != nil {
				types.SendAppError(c, err)
				return
			}
			patch.Timing = &timing
		} else if req.EndMs != nil {
			types.SendBadRequest(c, "start_ms is required when updating timing")
			return
		}

		annotation, err := deps.AnnotationService.Update(c.Request.Context(), id, mediaID, patch)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		deps.Logger().Info("updated annotation",
			zap.Uint("id", id),
			zap.String("media_id", mediaID))

		resp, err := types.NewAnnotationResponse(annotation)
		if err != nil {
			types.SendInternalError(c, "Failed to encode annotation")
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

// DeleteAnnotation deletes an annotation
// @Summary      Delete annotation
// @Description  Delete an annotation; deleting a missing id succeeds so UI delete races stay quiet
// @Tags         annotations
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        id path int true "Annotation ID"
// @Success      200 {object} object{message=string} "Annotation deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid annotation ID"
// @Router       /api/v1/media/{mediaId}/annotations/{id} [delete]
func DeleteAnnotation(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return // Error response already sent by utility
		}

		if err := deps.AnnotationService.Delete(c.Request.Context(), id, mediaID); err != nil {
			types.SendAppError(c, err)
			return
		}

		deps.Logger().Info("deleted annotation",
			zap.Uint("id", id),
			zap.String("media_id", mediaID))

		c.JSON(http.StatusOK, gin.H{"message": "Annotation deleted successfully"})
	}
}

// GetAnnotationsAtTime returns the annotations active at a playback time
// @Summary      Annotations at time
// @Description  Second-bucket index lookup of the annotations whose timing contains the given time
// @Tags         annotations
// @Produce      json
// @Param        mediaId path string true "Media ID"
// @Param        timeMs path int true "Playback time in milliseconds"
// @Param        snap_fps query number false "Snap the queried time to the nearest frame at this rate"
// @Success      200 {object} types.ActiveAnnotationsResponse "Active annotations"
// @Failure      400 {object} types.ErrorResponse "Invalid time"
// @Router       /api/v1/media/{mediaId}/annotations/at/{timeMs} [get]
func GetAnnotationsAtTime(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		mediaID := c.Param("mediaId")
		timeMs, ok := types.ParseInt64Param(c, "timeMs")
		if !ok {
			return // Error response already sent by utility
		}

		ts, err := timecode.NewTimestamp(timeMs)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		if fps := c.Query("snap_fps"); fps != "" {
			parsed, perr := parseFPS(fps)
			if perr != nil {
				types.SendBadRequest(c, "Invalid snap_fps")
				return
			}
			ts = timecode.SnapToFrame(ts, parsed)
		}

		active, err := deps.AnnotationService.ActiveAt(c.Request.Context(), mediaID, ts)
		if err != nil {
			types.SendAppError(c, err)
			return
		}

		resp := types.ActiveAnnotationsResponse{
			TimeMs:      ts.Milliseconds(),
			Annotations: make([]types.AnnotationResponse, 0, len(active)),
		}
		for i := range active {
			item, err := types.NewAnnotationResponse(&active[i])
			if err != nil {
				types.SendInternalError(c, "Failed to encode annotations")
				return
			}
			resp.Annotations = append(resp.Annotations, item)
		}
		c.JSON(http.StatusOK, resp)
	}
}

func parseFPS(s string) (float64, error) {
	fps, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if fps <= 0 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidInput, "fps must be positive")
	}
	return fps, nil
}
