package main

import (
	"os"
	"path/filepath"
	"time"

	"vod-site/config"
	"vod-site/database"
)

// raw uploads older than this are leftovers from a crashed pipeline run;
// a completed run always deletes its own raw file
const staleUploadAge = 24 * time.Hour

func sweepStaleUploads() {
	log.Debugln("sweepStaleUploads...")
	uploadDir := config.GetUploadDir()
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Errorln("read upload dir:", err)
		}
		return
	}
	cutoff := time.Now().Add(-staleUploadAge)
	for _, entry := range entries {
		if entry.IsDir() {
			// published renditions live under uploads/videos; never touch
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(uploadDir, entry.Name())
			log.Infoln("removing stale upload", path)
			if err := os.Remove(path); err != nil {
				log.Errorln("remove stale upload:", err)
			}
		}
	}
}

func vacuumDatabase() {
	if err := database.Get().Exec("VACUUM").Error; err != nil {
		log.Errorln(err)
	}
}

func PeriodicCleanup() {
	sweepStaleUploads()
	vacuumDatabase()
	ticker := time.NewTicker(1 * time.Hour)
	for range ticker.C {
		sweepStaleUploads()
		vacuumDatabase()
	}
}
