package stream

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var ErrQualityNotFound = errors.New("video quality not found")

// Resolve maps a quality label ("720p") to the rendition file inside a
// published video's directory. The label must match an encoded file.
func Resolve(videoDir, quality string) (string, error) {
	name := quality + ".mp4"
	entries, err := os.ReadDir(videoDir)
	if err != nil {
		return "", fmt.Errorf("read video dir %s: %w", videoDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == name {
			return filepath.Join(videoDir, name), nil
		}
	}
	return "", ErrQualityNotFound
}
