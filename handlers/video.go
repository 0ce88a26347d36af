package handlers

import (
	"errors"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"

	"vod-site/videos"
)

// VideoGet returns the thin detail view of a published video.
func VideoGet(c echo.Context) error {
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

	viewCount, err := viewRepo.Count(video.ID)
	if err != nil {
		log.Errorln(err)
	}
	watchTime, err := viewRepo.TotalWatchTime(video.ID)
	if err != nil {
		log.Errorln(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"id":                 video.ID,
			"title":              video.Title,
			"description":        video.Description,
			"videoUrl":           video.VideoURL,
			"duration":           video.Duration,
			"resolution":         video.Resolution,
			"availableQualities": video.Qualities,
			"viewsCount":         viewCount,
			"totalWatchTime":     watchTime,
			"publishedAt":        video.CreatedAt,
		},
	})
}

// VideoDelete marks the record deleted and removes the rendition
// directory. After this no reader can resolve any quality.
func VideoDelete(c echo.Context) error {
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

	if err := videoRepo.SetStatus(video.ID, videos.Deleted); err != nil {
		log.Errorln(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "delete failed"})
	}

	if err := os.RemoveAll(video.VideoURL); err != nil {
		log.Errorf("remove %s: %v", video.VideoURL, err)
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Delete"})
}
