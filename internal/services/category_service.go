package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "fincoach/internal/errors"
	"fincoach/internal/models"
	"fincoach/internal/pagination"
)

// categoryService handles category-related business logic.
type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB) CategoryServicer {
	return &categoryService{db: db}
}

// visibleScope restricts a query to the categories a user can see:
// system defaults plus their own.
func visibleScope(db *gorm.DB, userID string) *gorm.DB {
	return db.Where("is_default = ? OR user_id = ?", true, userID)
}

// CreateCategory creates a new user-owned category
func (s *categoryService) CreateCategory(
	userID, name string,
	categoryType models.CategoryType,
	description, icon, colour string,
) (*models.Category, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}

	// Name must be unique per type within the visible scope. The default
	// set itself reuses names across types ("Other"), so the check is
	// scoped to the category type.
	var count int64
	if err := visibleScope(s.db.Model(&models.Category{}), userID).
		Where("name = ? AND type = ?", name, categoryType).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count > 0 {
		return nil, apperrors.WithMessage(apperrors.ErrDuplicateCategoryName,
			fmt.Sprintf("Category with name %q already exists", name))
	}

	category := &models.Category{
		UserID:      &userID,
		Name:        name,
		Type:        categoryType,
		Description: description,
		Icon:        icon,
		Colour:      colour,
		IsDefault:   false,
	}

	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return category, nil
}

// GetVisibleCategories retrieves a paginated list of default and user-owned
// categories, optionally filtered by type.
func (s *categoryService) GetVisibleCategories(userID string, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	page.Defaults()

	base := visibleScope(s.db.Model(&models.Category{}), userID)
	if categoryType != nil {
		base = base.Where("type = ?", *categoryType)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var categories []models.Category
	if err := base.Scopes(pagination.Paginate(page)).
		Order("is_default DESC, name ASC").
		Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(categories, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetCategoryByID retrieves a category visible to the user
func (s *categoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	var category models.Category
	if err := visibleScope(s.db, userID).Where("id = ?", categoryID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// ResolveCategoryByName finds a visible category by name and type.
// Used when creating transactions, which reference categories by name.
func (s *categoryService) ResolveCategoryByName(userID, name string, categoryType models.CategoryType) (*models.Category, error) {
	var category models.Category
	if err := visibleScope(s.db, userID).
		Where("name = ? AND type = ?", name, categoryType).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrCategoryNotFound,
				fmt.Sprintf("Category %q not found", name))
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &category, nil
}

// UpdateCategory updates a user-owned category. Default categories are immutable.
func (s *categoryService) UpdateCategory(userID, categoryID string, fields CategoryUpdateFields) (*models.Category, error) {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return nil, err
	}

	if category.IsDefault {
		return nil, apperrors.ErrDefaultCategory
	}

	updates := make(map[string]interface{})
	if fields.Name != nil && *fields.Name != category.Name {
		// Rename collision check within the visible scope
		var count int64
		if err := visibleScope(s.db.Model(&models.Category{}), userID).
			Where("name = ? AND type = ? AND id <> ?", *fields.Name, category.Type, categoryID).
			Count(&count).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if count > 0 {
			return nil, apperrors.WithMessage(apperrors.ErrDuplicateCategoryName,
				fmt.Sprintf("Category with name %q already exists", *fields.Name))
		}
		updates["name"] = *fields.Name
	}
	if fields.Description != nil {
		updates["description"] = *fields.Description
	}
	if fields.Icon != nil {
		updates["icon"] = *fields.Icon
	}
	if fields.Colour != nil {
		updates["colour"] = *fields.Colour
	}

	if len(updates) > 0 {
		if err := s.db.Model(category).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return category, nil
}

// DeleteCategory deletes a user-owned category. Deletion is refused while
// any transaction still references the category; the caller must reassign
// or delete those transactions first.
func (s *categoryService) DeleteCategory(userID, categoryID string) error {
	category, err := s.GetCategoryByID(userID, categoryID)
	if err != nil {
		return err
	}

	if category.IsDefault {
		return apperrors.ErrDefaultCategory
	}

	var transactionCount int64
	if err := s.db.Model(&models.Transaction{}).
		Where("category_id = ?", categoryID).
		Count(&transactionCount).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if transactionCount > 0 {
		return apperrors.WithMessage(apperrors.ErrCategoryInUse,
			fmt.Sprintf("Category with %d transaction(s) cannot be deleted, delete or reassign transaction(s) first", transactionCount))
	}

	if err := s.db.Delete(category).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
