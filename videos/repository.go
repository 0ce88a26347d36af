package videos

import (
	"errors"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("no such video")

// Repository is the persistence collaborator the pipeline and the stream
// server talk to. Everything else about video records (feeds, search,
// ownership checks) lives outside this service.
type Repository interface {
	Create(video *Video) error
	ByID(id uint) (Video, error)
	SetStatus(id uint, status Status) error
	Delete(id uint) error
}

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(video *Video) error {
	return r.db.Create(video).Error
}

func (r *gormRepository) ByID(id uint) (Video, error) {
	var video Video
	err := r.db.First(&video, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Video{}, ErrNotFound
	}
	return video, err
}

func (r *gormRepository) SetStatus(id uint, status Status) error {
	result := r.db.Model(&Video{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormRepository) Delete(id uint) error {
	result := r.db.Delete(&Video{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
