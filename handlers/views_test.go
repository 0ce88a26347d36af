package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vod-site/videos"
)

func TestViewPostRecords(t *testing.T) {
	repo, viewsRepo := setup(t, nil)
	video := videos.Video{Title: "t", AuthorID: "a", Status: videos.Published}
	require.NoError(t, repo.Create(&video))

	body := `{"userId":"u1","watchTime":120,"quality":"720p","device":"mobile","location":"Berlin"}`
	c, rec := newContext(t, http.MethodPost, fmt.Sprintf("/videos/%d/views", video.ID), strings.NewReader(body))
	c.SetPath("/videos/:id/views")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", video.ID))
	require.NoError(t, ViewPost(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	count, err := viewsRepo.Count(video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	total, err := viewsRepo.TotalWatchTime(video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(120), total)
}

func TestViewPostUnknownVideo(t *testing.T) {
	setup(t, nil)
	c, rec := newContext(t, http.MethodPost, "/videos/9/views", strings.NewReader(`{"watchTime":1}`))
	c.SetPath("/videos/:id/views")
	c.SetParamNames("id")
	c.SetParamValues("9")
	require.NoError(t, ViewPost(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestViewPostNegativeWatchTime(t *testing.T) {
	repo, _ := setup(t, nil)
	video := videos.Video{Title: "t", AuthorID: "a", Status: videos.Published}
	require.NoError(t, repo.Create(&video))

	c, rec := newContext(t, http.MethodPost, "/videos/1/views", strings.NewReader(`{"watchTime":-5}`))
	c.SetPath("/videos/:id/views")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, ViewPost(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestVideoGetDetails(t *testing.T) {
	repo, viewsRepo := setup(t, nil)
	video := videos.Video{
		Title:     "talk",
		AuthorID:  "a",
		Duration:  300,
		Status:    videos.Published,
		Qualities: videos.Qualities{"360p"},
	}
	require.NoError(t, repo.Create(&video))
	for i := 0; i < 3; i++ {
		body := `{"watchTime":10,"quality":"360p","device":"desktop","location":"x"}`
		c, _ := newContext(t, http.MethodPost, "/videos/1/views", strings.NewReader(body))
		c.SetPath("/videos/:id/views")
		c.SetParamNames("id")
		c.SetParamValues("1")
		require.NoError(t, ViewPost(c))
	}
	count, err := viewsRepo.Count(video.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)

	c, rec := newContext(t, http.MethodGet, "/videos/1", nil)
	c.SetPath("/videos/:id")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, VideoGet(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"viewsCount":3`)
	assert.Contains(t, rec.Body.String(), `"totalWatchTime":30`)
}

func TestVideoDeleteRemovesRenditions(t *testing.T) {
	repo, _ := setup(t, nil)
	video := publishVideo(t, repo, "480p")

	c, rec := newContext(t, http.MethodDelete, fmt.Sprintf("/videos/%d", video.ID), nil)
	c.SetPath("/videos/:id")
	c.SetParamNames("id")
	c.SetParamValues(fmt.Sprintf("%d", video.ID))
	require.NoError(t, VideoDelete(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	stored, err := repo.ByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, videos.Deleted, stored.Status)
	assert.NoDirExists(t, video.VideoURL)
}
