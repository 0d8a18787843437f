package database

import (
	"github.com/foodgram/backend/errs"
	"github.com/foodgram/backend/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepo struct {
	db *gorm.DB
}

func NewTagRepo(db *gorm.DB) *TagRepo {
	return &TagRepo{db}
}

// FindAll returns all tags ordered by name. Tags are a small fixed vocabulary
// and are never paginated.
func (r *TagRepo) FindAll() ([]*models.Tag, error) {
	var tags []*models.Tag
	err := r.db.Order("name").Find(&tags).Error
	return tags, err
}

// FindByID returns a tag by its ID
func (r *TagRepo) FindByID(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindByIDs resolves a set of tag IDs, failing if any of them is unknown.
func (r *TagRepo) FindByIDs(ids []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, errs.NewNotFound("tag")
	}
	return tags, nil
}

// Add inserts a new tag into the database
func (r *TagRepo) Add(tag *models.Tag) error {
	if tag.ID == uuid.Nil {
		tag.ID = uuid.New()
	}
	return r.db.Create(tag).Error
}
