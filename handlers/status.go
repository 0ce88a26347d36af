package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vod-site/pipeline"
	"vod-site/videos"
)

// StatusGet reports processing state for one video. Read-only and
// lock-free: it only inspects the persisted record, so two calls with no
// intervening activity return identical output.
func StatusGet(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid video id"})
	}

	video, err := videoRepo.ByID(uint(id))
	if errors.Is(err, videos.ErrNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "no such video ID exists"})
	}
	if err != nil {
		log.Errorln(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
	}

	progress := 0
	remaining := pipeline.EstimateProcessingTime(video.Duration, len(video.Qualities))
	if video.Status == videos.Published {
		progress = 100
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"id":                     video.ID,
			"status":                 video.Status,
			"processingProgress":     progress,
			"availableQualities":     video.Qualities,
			"estimatedTimeRemaining": remaining,
		},
	})
}
