package repository

import (
	"crackit_backend/internal/model"

	"gorm.io/gorm"
)

type KeywordRepository struct {
	DB *gorm.DB
}

func NewKeywordRepository(db *gorm.DB) *KeywordRepository {
	return &KeywordRepository{DB: db}
}

func (r *KeywordRepository) Create(k *model.Keyword) error {
	return r.DB.Create(k).Error
}

func (r *KeywordRepository) Update(k *model.Keyword) error {
	return r.DB.Save(k).Error
}

func (r *KeywordRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Keyword{}, id).Error
}

func (r *KeywordRepository) FindByID(id uint) (*model.Keyword, error) {
	var k model.Keyword
	if err := r.DB.First(&k, id).Error; err != nil {
		return nil, err
	}
	return &k, nil
}

// List returns keywords filtered by subject and an optional search term
// matched against both the word and its meaning.
func (r *KeywordRepository) List(subject, search string) ([]model.Keyword, error) {
	query := r.DB.Model(&model.Keyword{})
	if subject != "" {
		query = query.Where("subject = ?", subject)
	}
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("word LIKE ? OR meaning LIKE ?", like, like)
	}

	var items []model.Keyword
	err := query.Order("subject ASC, title ASC, word ASC").Find(&items).Error
	return items, err
}
