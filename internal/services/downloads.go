package services

import (
	"context"
	"errors"
	"strconv"

	"gorm.io/gorm"

	"statehouse_site/internal/models"
)

// ErrDownloadNotFound is returned when no download matches an id.
var ErrDownloadNotFound = errors.New("download not found")

// DownloadService is the gorm-backed downloads store.
type DownloadService struct {
	db *gorm.DB
}

func NewDownloadService(db *gorm.DB) *DownloadService {
	return &DownloadService{db: db}
}

// List returns every download by order, then title.
func (s *DownloadService) List(ctx context.Context) ([]models.Download, error) {
	var downloads []models.Download
	err := s.db.WithContext(ctx).Order(`"order" asc`).Order("title asc").Find(&downloads).Error
	return downloads, err
}

// Get finds a download by numeric id or document id.
func (s *DownloadService) Get(ctx context.Context, id string) (*models.Download, error) {
	var d models.Download
	q := s.db.WithContext(ctx)
	if n, err := strconv.ParseUint(id, 10, 64); err == nil {
		q = q.Where("id = ?", n)
	} else {
		q = q.Where("document_id = ?", id)
	}
	if err := q.First(&d).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDownloadNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (s *DownloadService) Create(ctx context.Context, d *models.Download) error {
	return s.db.WithContext(ctx).Create(d).Error
}

// Update overwrites the editable fields of an existing download.
func (s *DownloadService) Update(ctx context.Context, id string, changes models.Download) (*models.Download, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	err = s.db.WithContext(ctx).Model(d).Select("Title", "Description", "FileURL", "Order").Updates(models.Download{
		Title:       changes.Title,
		Description: changes.Description,
		FileURL:     changes.FileURL,
		Order:       changes.Order,
	}).Error
	if err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Delete soft-deletes a download and returns it.
func (s *DownloadService) Delete(ctx context.Context, id string) (*models.Download, error) {
	d, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Delete(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}
