package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// EncodeProfile is the fixed encode recipe applied to every rendition:
// constant quality, web-optimized (moov atom first), width computed from
// the target height to preserve aspect ratio.
type EncodeProfile struct {
	VideoCodec string
	Preset     string
	CRF        int
	AudioCodec string
}

func DefaultProfile() EncodeProfile {
	return EncodeProfile{
		VideoCodec: "libx264",
		Preset:     "fast",
		CRF:        23,
		AudioCodec: "aac",
	}
}

// audio bitrate in kbps for a given video height
func audioBitrateFor(height int) int {
	if height <= 144 {
		return 64
	} else if height <= 480 {
		return 96
	} else if height < 720 {
		return 128
	}
	return 160
}

// Transcode encodes src into dst at the given target height. A non-zero
// exit or context expiry is returned as an error; stderr is logged, never
// propagated to callers verbatim.
func Transcode(ctx context.Context, src, dst string, height int, prof EncodeProfile) error {
	args := []string{"-i", src,
		"-vf", fmt.Sprintf("scale=-2:%d", height),
		"-c:v", prof.VideoCodec,
		"-crf", fmt.Sprintf("%d", prof.CRF),
		"-preset", prof.Preset,
		"-c:a", prof.AudioCodec,
		"-b:a", fmt.Sprintf("%dk", audioBitrateFor(height)),
		"-movflags", "+faststart",
		dst}

	ffmpeg := "ffmpeg"
	log.Infoln(ffmpeg, strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, ffmpeg, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout, cmd.Stderr = &stdout, &stderr
	err := cmd.Run()
	if err != nil {
		log.Errorf("ffmpeg %s -> %s (height %d): %v", src, dst, height, err)
		log.Errorln("stderr:", stderr.String())
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg %s: %w", src, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return fmt.Errorf("ffmpeg exited %d encoding %dp", exitErr.ExitCode(), height)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

// runs ffmpeg with the provided args and returns (stdout, stderr, error)
func Ffmpeg(args ...string) ([]byte, []byte, error) {
	ffmpeg := "ffmpeg"
	log.Infoln(ffmpeg, strings.Join(args, " "))
	cmd := exec.Command(ffmpeg, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if err != nil {
		log.Errorf("ffmpeg error: %v", err)
	}
	return stdout.Bytes(), stderr.Bytes(), err
}
