package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"vod-site/videos"
	"vod-site/views"
)

type viewRequest struct {
	UserID    string `json:"userId"`
	WatchTime int    `json:"watchTime"`
	Quality   string `json:"quality"`
	Device    string `json:"device"`
	Location  string `json:"location"`
}

// ViewPost appends one playback event for a video.
func ViewPost(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid video id"})
	}

	var req viewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.WatchTime < 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "watchTime must not be negative"})
	}

	if _, err := videoRepo.ByID(uint(id)); err != nil {
		if errors.Is(err, videos.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "no such video ID exists"})
		}
		log.Errorln(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "lookup failed"})
	}

	view := views.View{
		VideoID:   uint(id),
		UserID:    req.UserID,
		WatchTime: req.WatchTime,
		Quality:   req.Quality,
		Device:    req.Device,
		Location:  req.Location,
	}
	if err := viewRepo.Append(&view); err != nil {
		log.Errorln(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not record view"})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "View recorded"})
}
