package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/labstack/echo/v4"

	"vod-site/stream"
	"vod-site/videos"
)

// StreamGet serves one byte window of a published rendition. Responses
// are always 206; whole-file 200 responses are not supported. A missing
// Range header means the first 1 MiB.
func StreamGet(c echo.Context) error {
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

	quality := c.QueryParam("quality")
	if !video.Qualities.Contains(quality) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "video quality not found"})
	}

	path, err := stream.Resolve(video.VideoURL, quality)
	if errors.Is(err, stream.ErrQualityNotFound) {
		// the record lists a quality whose file is gone: a consistency
		// bug between the repository and the filesystem
		log.Errorf("video %d lists quality %s but %s has no such file", video.ID, quality, video.VideoURL)
		return c.JSON(http.StatusNotFound, map[string]string{"error": "video quality not found"})
	}
	if err != nil {
		log.Errorln(err)
		return c.JSON(http.StatusNotFound, map[string]string{"error": "video not found"})
	}

	info, err := os.Stat(path)
	if err != nil {
		log.Errorf("stat %s: %v", path, err)
		return c.JSON(http.StatusNotFound, map[string]string{"error": "video not found"})
	}
	size := info.Size()

	var window stream.Window
	if rangeHeader := c.Request().Header.Get("Range"); rangeHeader == "" {
		window = stream.DefaultWindow(size)
	} else {
		window, err = stream.Plan(rangeHeader, size)
		if err != nil {
			return rangeNotSatisfiable(c, size)
		}
	}
	// a start past the last byte is a client error, not something to clamp
	if window.Start >= size {
		return rangeNotSatisfiable(c, size)
	}

	file, err := os.Open(path)
	if err != nil {
		log.Errorf("open %s: %v", path, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not open video"})
	}
	defer file.Close()

	if _, err := file.Seek(window.Start, io.SeekStart); err != nil {
		log.Errorf("seek %s to %d: %v", path, window.Start, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not read video"})
	}

	resp := c.Response()
	resp.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", window.Start, window.End, size))
	resp.Header().Set("Accept-Ranges", "bytes")
	resp.Header().Set(echo.HeaderContentLength, strconv.FormatInt(window.ChunkSize, 10))
	resp.Header().Set(echo.HeaderContentType, "video/mp4")
	resp.WriteHeader(http.StatusPartialContent)

	if _, err := io.CopyN(resp, file, window.ChunkSize); err != nil {
		// headers are gone already; nothing to do but log
		log.Errorf("stream %s [%d-%d]: %v", path, window.Start, window.End, err)
	}
	return nil
}

func rangeNotSatisfiable(c echo.Context, size int64) error {
	c.Response().Header().Set("Content-Range", fmt.Sprintf("bytes */%d", size))
	return c.JSON(http.StatusRequestedRangeNotSatisfiable,
		map[string]string{"error": "requested range not satisfiable"})
}
