package handlers

import (
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"vod-site/pipeline"
	"vod-site/videos"
	"vod-site/views"
)

type fakeVideoRepo struct {
	mu     sync.Mutex
	nextID uint
	items  map[uint]videos.Video
}

func newFakeVideoRepo() *fakeVideoRepo {
	return &fakeVideoRepo{items: map[uint]videos.Video{}}
}

func (r *fakeVideoRepo) Create(video *videos.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	video.ID = r.nextID
	r.items[video.ID] = *video
	return nil
}

func (r *fakeVideoRepo) ByID(id uint) (videos.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.items[id]
	if !ok {
		return videos.Video{}, videos.ErrNotFound
	}
	return video, nil
}

func (r *fakeVideoRepo) SetStatus(id uint, status videos.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	video, ok := r.items[id]
	if !ok {
		return videos.ErrNotFound
	}
	video.Status = status
	r.items[id] = video
	return nil
}

func (r *fakeVideoRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return videos.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type fakeViewRepo struct {
	mu    sync.Mutex
	items []views.View
}

func (r *fakeViewRepo) Append(view *views.View) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	view.ID = uint(len(r.items) + 1)
	r.items = append(r.items, *view)
	return nil
}

func (r *fakeViewRepo) Count(videoID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, view := range r.items {
		if view.VideoID == videoID {
			count++
		}
	}
	return count, nil
}

func (r *fakeViewRepo) TotalWatchTime(videoID uint) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, view := range r.items {
		if view.VideoID == videoID {
			total += int64(view.WatchTime)
		}
	}
	return total, nil
}

// setup wires the package globals to fakes for one test.
func setup(t *testing.T, pipe *pipeline.Pipeline) (*fakeVideoRepo, *fakeViewRepo) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	repo := newFakeVideoRepo()
	viewsRepo := &fakeViewRepo{}
	if err := Init(logger, repo, viewsRepo, pipe); err != nil {
		t.Fatal(err)
	}
	return repo, viewsRepo
}

func newContext(t *testing.T, method, target string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
