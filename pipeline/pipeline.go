// Package pipeline ingests one raw upload: probe, validate, fan out one
// transcode per eligible ladder rung, then publish the surviving
// renditions as a single video record. The raw upload is deleted on
// every exit path.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"vod-site/ffmpeg"
	"vod-site/videos"
)

// Upload is the ephemeral raw file plus its declared fields. The
// pipeline owns Path for the duration of one ingestion.
type Upload struct {
	Path        string
	Title       string
	Description string
	AuthorID    string
}

// Result is what a successful ingestion hands back to the caller.
type Result struct {
	Video         videos.Video
	Metadata      ffmpeg.Metadata
	Qualities     []string
	EstimatedTime string
}

type Pipeline struct {
	cfg    Config
	repo   videos.Repository
	probe  ProbeFunc
	encode EncodeFunc
	log    *logrus.Logger
}

func New(cfg Config, repo videos.Repository, logger *logrus.Logger) *Pipeline {
	probe := cfg.Probe
	if probe == nil {
		probe = ffmpeg.Probe
	}
	encode := cfg.Encode
	if encode == nil {
		encode = ffmpeg.Transcode
	}
	return &Pipeline{
		cfg:    cfg,
		repo:   repo,
		probe:  probe,
		encode: encode,
		log: logger.WithFields(logrus.Fields{
			"component": "pipeline",
		}).Logger,
	}
}

// Ingest runs the whole probe -> validate -> transcode -> publish flow
// for one upload. Validation failures and total transcode failure both
// leave no trace on disk and no video record.
func (p *Pipeline) Ingest(ctx context.Context, up Upload) (Result, error) {
	meta, err := p.probe(up.Path)
	if err != nil {
		p.removeRaw(up.Path)
		ingestTotal.WithLabelValues("probe_error").Inc()
		return Result{}, fmt.Errorf("probe %s: %w", up.Path, err)
	}

	if meta.Duration > p.cfg.MaxDuration {
		p.removeRaw(up.Path)
		ingestTotal.WithLabelValues("rejected").Inc()
		return Result{}, ErrDurationExceeded
	}
	if !meta.HasAudio {
		p.removeRaw(up.Path)
		ingestTotal.WithLabelValues("rejected").Inc()
		return Result{}, ErrNoAudioTrack
	}

	targets := p.cfg.SelectTargets(meta.Height)
	if len(targets) == 0 {
		p.removeRaw(up.Path)
		ingestTotal.WithLabelValues("rejected").Inc()
		return Result{}, ErrInsufficientQuality
	}

	outDir := filepath.Join(p.cfg.OutputRoot, uploadStem(up.Path))
	if err := os.MkdirAll(outDir, 0700); err != nil {
		p.removeRaw(up.Path)
		ingestTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("create output dir %s: %w", outDir, err)
	}

	jobs := p.runJobs(ctx, up.Path, outDir, targets)

	good := succeeded(jobs)
	if len(good) == 0 {
		// nothing to publish; remove every partial artifact
		if err := os.RemoveAll(outDir); err != nil {
			p.log.Errorf("remove partial output dir %s: %v", outDir, err)
		}
		p.removeRaw(up.Path)
		ingestTotal.WithLabelValues("failed").Inc()
		return Result{}, ErrAllQualitiesFailed
	}

	// a failed rendition may have left a partial file next to the good
	// ones; it must not survive into the published directory
	for _, job := range jobs {
		if job.State == JobFailed {
			if err := os.Remove(job.OutputPath); err != nil && !os.IsNotExist(err) {
				p.log.Errorf("remove failed rendition %s: %v", job.OutputPath, err)
			}
		}
	}

	qualities := make(videos.Qualities, 0, len(good))
	for _, job := range good {
		qualities = append(qualities, job.Target.Label())
	}

	video := videos.Video{
		Title:       up.Title,
		Description: up.Description,
		AuthorID:    up.AuthorID,
		VideoURL:    outDir,
		Duration:    meta.Duration,
		FileSize:    meta.FileSize,
		Resolution:  fmt.Sprintf("%dx%d", meta.Width, meta.Height),
		Status:      videos.Published,
		Qualities:   qualities,
	}
	if err := p.repo.Create(&video); err != nil {
		if rmErr := os.RemoveAll(outDir); rmErr != nil {
			p.log.Errorf("remove output dir %s: %v", outDir, rmErr)
		}
		p.removeRaw(up.Path)
		ingestTotal.WithLabelValues("error").Inc()
		return Result{}, fmt.Errorf("create video record: %w", err)
	}

	p.removeRaw(up.Path)
	ingestTotal.WithLabelValues("published").Inc()
	p.log.Infof("published video %d (%s) with qualities %v", video.ID, video.Title, qualities)

	return Result{
		Video:         video,
		Metadata:      meta,
		Qualities:     qualities,
		EstimatedTime: EstimateProcessingTime(meta.Duration, len(qualities)),
	}, nil
}

func (p *Pipeline) removeRaw(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		p.log.Errorf("remove raw upload %s: %v", path, err)
	}
}

// uploadStem is the generated upload filename without its extension; it
// names the published rendition directory.
func uploadStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
