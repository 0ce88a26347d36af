package config

import (
	"os"
	"path/filepath"
)

var gitSHA string
var buildDate string

func GetDataDir() string {
	value, exists := os.LookupEnv("VODSITE_DATA_DIR")
	if exists {
		return value
	}
	return "data"
}

// defaults to GetDataDir() / config
func GetConfigDir() string {
	value, exists := os.LookupEnv("VODSITE_CONFIG_DIR")
	if exists {
		return value
	}
	return filepath.Join(GetDataDir(), "config")
}

// where raw uploads land before the pipeline runs
func GetUploadDir() string {
	value, exists := os.LookupEnv("VODSITE_UPLOAD_DIR")
	if exists {
		return value
	}
	return filepath.Join(GetDataDir(), "uploads")
}

// where finished renditions are published, one subdirectory per video
func GetVideoDir() string {
	value, exists := os.LookupEnv("VODSITE_VIDEO_DIR")
	if exists {
		return value
	}
	return filepath.Join(GetUploadDir(), "videos")
}

func GetListenAddr() string {
	value, exists := os.LookupEnv("VODSITE_LISTEN_ADDR")
	if exists {
		return value
	}
	return ":8080"
}

func GetGitSHA() string {
	if gitSHA == "" {
		return "<not provided>"
	} else {
		return gitSHA
	}
}

func GetBuildDate() string {
	if buildDate == "" {
		return "<not provided>"
	} else {
		return buildDate
	}
}
