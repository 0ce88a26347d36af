package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vod-site/videos"
)

func statusRequest(t *testing.T, id string) (int, string) {
	t.Helper()
	c, rec := newContext(t, http.MethodGet, "/videos/"+id+"/status", nil)
	c.SetPath("/videos/:id/status")
	c.SetParamNames("id")
	c.SetParamValues(id)
	require.NoError(t, StatusGet(c))
	return rec.Code, rec.Body.String()
}

func TestStatusGetPublished(t *testing.T) {
	repo, _ := setup(t, nil)
	video := videos.Video{
		Title:     "t",
		AuthorID:  "a",
		Duration:  300,
		Status:    videos.Published,
		Qualities: videos.Qualities{"720p", "480p"},
	}
	require.NoError(t, repo.Create(&video))

	code, body := statusRequest(t, fmt.Sprintf("%d", video.ID))
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `"status":"PUBLISHED"`)
	assert.Contains(t, body, `"processingProgress":100`)
	assert.Contains(t, body, `"720p"`)
	assert.Contains(t, body, `"480p"`)
}

func TestStatusGetIdempotent(t *testing.T) {
	repo, _ := setup(t, nil)
	video := videos.Video{
		Title:     "t",
		AuthorID:  "a",
		Duration:  300,
		Status:    videos.Published,
		Qualities: videos.Qualities{"240p"},
	}
	require.NoError(t, repo.Create(&video))

	id := fmt.Sprintf("%d", video.ID)
	_, first := statusRequest(t, id)
	_, second := statusRequest(t, id)
	assert.Equal(t, first, second)
}

func TestStatusGetUnknownVideo(t *testing.T) {
	setup(t, nil)
	code, _ := statusRequest(t, "12345")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestStatusGetBadID(t *testing.T) {
	setup(t, nil)
	code, _ := statusRequest(t, "not-a-number")
	assert.Equal(t, http.StatusBadRequest, code)
}
