package handlers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"vod-site/config"
	"vod-site/pipeline"
)

// UploadPost receives one multipart video file plus its declared fields
// and runs the whole ingestion pipeline before answering, the same way
// the status endpoint expects: by the time the client sees a response
// the video is either published or rejected.
func UploadPost(c echo.Context) error {
	title := c.FormValue("title")
	if title == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "title is required"})
	}
	authorID := c.FormValue("authorId")
	if authorID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "authorId is required"})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "file not found"})
	}

	rawPath, err := saveUpload(fileHeader)
	if err != nil {
		log.Errorf("save upload: %v", err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not store upload"})
	}

	result, err := pipe.Ingest(c.Request().Context(), pipeline.Upload{
		Path:        rawPath,
		Title:       title,
		Description: c.FormValue("description"),
		AuthorID:    authorID,
	})
	if err != nil {
		if pipeline.IsValidation(err) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		log.Errorf("ingest %s: %v", rawPath, err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "video processing failed"})
	}

	meta := result.Metadata
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Video uploaded successfully, processing started",
		"data": map[string]interface{}{
			"id":                      result.Video.ID,
			"title":                   result.Video.Title,
			"status":                  "PROCESSING",
			"uploadProgress":          100,
			"processingProgress":      0,
			"estimatedProcessingTime": result.EstimatedTime,
			"metadata": map[string]interface{}{
				"duration":           meta.DurationFormatted,
				"hasAudio":           meta.HasAudio,
				"resolution":         fmt.Sprintf("%dx%d", meta.Width, meta.Height),
				"availableQualities": result.Qualities,
				"fileSize":           fmt.Sprintf("%.2f MB", float64(meta.FileSize)/1024/1024),
			},
		},
	})
}

// saveUpload streams the multipart file to the upload directory under a
// fresh UUID stem; that stem later names the rendition directory.
func saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	uploadDir := config.GetUploadDir()
	if err := os.MkdirAll(uploadDir, 0700); err != nil {
		return "", err
	}

	name := uuid.Must(uuid.NewV7()).String() + filepath.Ext(fileHeader.Filename)
	path := filepath.Join(uploadDir, name)

	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}
