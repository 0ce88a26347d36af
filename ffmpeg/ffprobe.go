package ffmpeg

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"
)

// ErrNoVideoStream means the container held no decodable video stream.
var ErrNoVideoStream = errors.New("no video stream found")

// Metadata is the technical snapshot of one media file, computed once per
// upload and folded into the video record at publish time.
type Metadata struct {
	Width             int
	Height            int
	Duration          int // seconds, floored
	DurationFormatted string
	HasAudio          bool
	AudioCodec        string
	VideoBitrate      uint // bits per second, 0 if unknown
	AudioBitrate      uint // bits per second, 0 if unknown
	FileSize          int64
	Format            string
}

type probeStream struct {
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	BitRate   string `json:"bit_rate"`
}

type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		FormatName string `json:"format_name"`
		Duration   string `json:"duration"`
		Size       string `json:"size"`
	} `json:"format"`
}

// Probe inspects the file at path without modifying it.
func Probe(path string) (Metadata, error) {
	stdout, _, err := Ffprobe("-v", "quiet", "-print_format", "json",
		"-show_format", "-show_streams", path)
	if err != nil {
		return Metadata{}, fmt.Errorf("ffprobe %s: %w", path, err)
	}
	return parseProbe(stdout)
}

func parseProbe(out []byte) (Metadata, error) {
	var probed probeOutput
	if err := json.Unmarshal(out, &probed); err != nil {
		return Metadata{}, fmt.Errorf("parse ffprobe output: %w", err)
	}

	var video, audio *probeStream
	for i := range probed.Streams {
		s := &probed.Streams[i]
		if s.CodecType == "video" && video == nil {
			video = s
		}
		if s.CodecType == "audio" && audio == nil {
			audio = s
		}
	}
	if video == nil {
		return Metadata{}, ErrNoVideoStream
	}

	duration, _ := strconv.ParseFloat(strings.TrimSpace(probed.Format.Duration), 64)
	size, _ := strconv.ParseInt(strings.TrimSpace(probed.Format.Size), 10, 64)

	meta := Metadata{
		Width:             video.Width,
		Height:            video.Height,
		Duration:          int(math.Floor(duration)),
		DurationFormatted: FormatDuration(int(math.Floor(duration))),
		HasAudio:          audio != nil,
		FileSize:          size,
		Format:            probed.Format.FormatName,
	}
	if meta.Format == "" {
		meta.Format = "unknown"
	}
	if rate, err := strconv.ParseUint(video.BitRate, 10, 32); err == nil {
		meta.VideoBitrate = uint(rate)
	}
	if audio != nil {
		meta.AudioCodec = audio.CodecName
		if rate, err := strconv.ParseUint(audio.BitRate, 10, 32); err == nil {
			meta.AudioBitrate = uint(rate)
		}
	}
	return meta, nil
}

// FormatDuration renders seconds as HH:MM:SS when at least an hour,
// otherwise MM:SS, all fields zero-padded to two digits.
func FormatDuration(seconds int) string {
	hh := seconds / 3600
	mm := (seconds % 3600) / 60
	ss := seconds % 60
	if hh > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hh, mm, ss)
	}
	return fmt.Sprintf("%02d:%02d", mm, ss)
}

// runs ffprobe with the provided args and returns (stdout, stderr, error)
func Ffprobe(args ...string) ([]byte, []byte, error) {
	ffprobe := "ffprobe"
	log.Infoln(ffprobe, strings.Join(args, " "))
	cmd := exec.Command(ffprobe, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if err != nil {
		log.Errorf("ffprobe error: %v", err)
		log.Errorln("stderr:", stderr.String())
	}
	return stdout.Bytes(), stderr.Bytes(), err
}
