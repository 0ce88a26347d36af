package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"
)

type JobState string

const (
	JobPending   JobState = "pending"
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
)

// Job is one rendition attempt. It is owned by a single ingestion run and
// reports failure through Err, never across job boundaries.
type Job struct {
	Target     Target
	OutputPath string
	State      JobState
	Err        error
}

// runJobs fans out one encode per target and joins on all of them.
// Siblings are never cancelled on a failure; a partial ladder is still
// useful. Each job gets its own wall-clock cap.
func (p *Pipeline) runJobs(ctx context.Context, src, outDir string, targets []Target) []Job {
	jobs := make([]Job, len(targets))
	for i, target := range targets {
		jobs[i] = Job{
			Target:     target,
			OutputPath: filepath.Join(outDir, target.Label()+".mp4"),
			State:      JobPending,
		}
	}

	var wg sync.WaitGroup
	for i := range jobs {
		wg.Add(1)
		go func(job *Job) {
			defer wg.Done()
			p.runJob(ctx, src, job)
		}(&jobs[i])
	}
	wg.Wait()

	return jobs
}

func (p *Pipeline) runJob(ctx context.Context, src string, job *Job) {
	jobCtx, cancel := context.WithTimeout(ctx, p.cfg.JobTimeout)
	defer cancel()

	activeJobs.Inc()
	defer activeJobs.Dec()

	started := time.Now()
	err := p.encode(jobCtx, src, job.OutputPath, job.Target.Height, p.cfg.Profile)
	transcodeDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("transcode %s timed out after %s: %w",
				job.Target.Label(), p.cfg.JobTimeout, err)
		}
		job.State = JobFailed
		job.Err = err
		transcodeJobs.WithLabelValues("failed").Inc()
		p.log.Errorf("transcode job %s for %s failed: %v", job.Target.Label(), src, err)
		return
	}
	job.State = JobSucceeded
	transcodeJobs.WithLabelValues("succeeded").Inc()
}

func succeeded(jobs []Job) []Job {
	var out []Job
	for _, job := range jobs {
		if job.State == JobSucceeded {
			out = append(out, job)
		}
	}
	return out
}
