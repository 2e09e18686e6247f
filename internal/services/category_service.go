// internal/services/category_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/auctionhub-backend/internal/models"
	"github.com/javajoker/auctionhub-backend/internal/utils"
)

type CategoryService struct {
	db *gorm.DB
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

// CategorySummary is a category with the number of active listings in it.
type CategorySummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ActiveCount int64     `json:"active_count"`
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

// ListCategories returns every category ordered by name, including those
// without active listings.
func (s *CategoryService) ListCategories() ([]CategorySummary, error) {
	var summaries []CategorySummary
	err := s.db.Model(&models.Category{}).
		Select("categories.id, categories.name, COUNT(listings.id) AS active_count").
		Joins("LEFT JOIN listings ON listings.category_id = categories.id AND listings.active = ? AND listings.deleted_at IS NULL", true).
		Group("categories.id, categories.name").
		Order("categories.name ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return summaries, nil
}

func (s *CategoryService) GetCategory(id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(req *CreateCategoryRequest) (*models.Category, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var existing int64
	if err := s.db.Model(&models.Category{}).Where("LOWER(name) = ?", strings.ToLower(req.Name)).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return nil, ErrCategoryExists
	}

	category := &models.Category{Name: req.Name}
	if err := s.db.Create(category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"category_id": category.ID,
		"name":        category.Name,
	}).Info("Category created")

	return category, nil
}
