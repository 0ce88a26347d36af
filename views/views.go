package views

import (
	"gorm.io/gorm"
)

// View is one playback event reported by a client.
type View struct {
	gorm.Model
	VideoID   uint
	UserID    string
	WatchTime int // seconds actually watched
	Quality   string
	Device    string
	Location  string
}

// Repository appends view events and aggregates watch time.
type Repository interface {
	Append(view *View) error
	Count(videoID uint) (int64, error)
	TotalWatchTime(videoID uint) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Append(view *View) error {
	return r.db.Create(view).Error
}

func (r *gormRepository) Count(videoID uint) (int64, error) {
	var count int64
	err := r.db.Model(&View{}).Where("video_id = ?", videoID).Count(&count).Error
	return count, err
}

func (r *gormRepository) TotalWatchTime(videoID uint) (int64, error) {
	var total int64
	err := r.db.Model(&View{}).
		Where("video_id = ?", videoID).
		Select("COALESCE(SUM(watch_time), 0)").
		Scan(&total).Error
	return total, err
}
