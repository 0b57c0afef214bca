package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "fincoach/internal/errors"
	"fincoach/internal/models"
	"fincoach/internal/pagination"
	"fincoach/internal/services"
)

type mockCategoryService struct {
	createCategoryFn        func(userID, name string, categoryType models.CategoryType, description, icon, colour string) (*models.Category, error)
	getVisibleCategoriesFn  func(userID string, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	getCategoryByIDFn       func(userID, categoryID string) (*models.Category, error)
	resolveCategoryByNameFn func(userID, name string, categoryType models.CategoryType) (*models.Category, error)
	updateCategoryFn        func(userID, categoryID string, fields services.CategoryUpdateFields) (*models.Category, error)
	deleteCategoryFn        func(userID, categoryID string) error
}

func (m *mockCategoryService) CreateCategory(userID, name string, categoryType models.CategoryType, description, icon, colour string) (*models.Category, error) {
	if m.createCategoryFn != nil {
		return m.createCategoryFn(userID, name, categoryType, description, icon, colour)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) GetVisibleCategories(userID string, categoryType *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
	if m.getVisibleCategoriesFn != nil {
		return m.getVisibleCategoriesFn(userID, categoryType, page)
	}
	return &pagination.PageResponse[models.Category]{}, nil
}

func (m *mockCategoryService) GetCategoryByID(userID, categoryID string) (*models.Category, error) {
	if m.getCategoryByIDFn != nil {
		return m.getCategoryByIDFn(userID, categoryID)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) ResolveCategoryByName(userID, name string, categoryType models.CategoryType) (*models.Category, error) {
	if m.resolveCategoryByNameFn != nil {
		return m.resolveCategoryByNameFn(userID, name, categoryType)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) UpdateCategory(userID, categoryID string, fields services.CategoryUpdateFields) (*models.Category, error) {
	if m.updateCategoryFn != nil {
		return m.updateCategoryFn(userID, categoryID, fields)
	}
	return &models.Category{}, nil
}

func (m *mockCategoryService) DeleteCategory(userID, categoryID string) error {
	if m.deleteCategoryFn != nil {
		return m.deleteCategoryFn(userID, categoryID)
	}
	return nil
}

var _ services.CategoryServicer = (*mockCategoryService)(nil)

const testCategoryID = "01911f0c-5b6a-7e2c-9a1b-4c3d2e1f0a9b"

func setupCategoryRouter(handler *CategoryHandler) *gin.Engine {
	r := gin.New()
	group := r.Group("/categories", injectUserID(testUserID))
	group.POST("", handler.CreateCategory)
	group.GET("", handler.GetCategories)
	group.GET("/:id", handler.GetCategoryByID)
	group.PUT("/:id", handler.UpdateCategory)
	group.DELETE("/:id", handler.DeleteCategory)
	return r
}

func TestCategoryHandler_CreateCategory(t *testing.T) {
	t.Run("returns 201 on success", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(userID, name string, categoryType models.CategoryType, _, _, colour string) (*models.Category, error) {
				if userID != testUserID {
					t.Errorf("expected user ID %s, got %s", testUserID, userID)
				}
				return &models.Category{
					Base:   models.Base{ID: testCategoryID},
					Name:   name,
					Type:   categoryType,
					Colour: colour,
					UserID: &userID,
				}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories",
			`{"name":"Coffee","type":"expense","colour":"#8B4513"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		category := result["category"].(map[string]interface{})
		if category["name"] != "Coffee" {
			t.Errorf("expected name Coffee, got %v", category["name"])
		}
	})

	t.Run("returns 400 on invalid type", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{"name":"Coffee","type":"transfer"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad colour", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories",
			`{"name":"Coffee","type":"expense","colour":"brown"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		catSvc := &mockCategoryService{
			createCategoryFn: func(_, _ string, _ models.CategoryType, _, _, _ string) (*models.Category, error) {
				return nil, apperrors.ErrDuplicateCategoryName
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "POST", "/categories", `{"name":"Coffee","type":"expense"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_CATEGORY_NAME")
	})
}

func TestCategoryHandler_GetCategories(t *testing.T) {
	t.Run("returns paginated list", func(t *testing.T) {
		catSvc := &mockCategoryService{
			getVisibleCategoriesFn: func(_ string, _ *models.CategoryType, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
				return &pagination.PageResponse[models.Category]{
					Data: []models.Category{
						{Base: models.Base{ID: testCategoryID}, Name: "Groceries", Type: models.CategoryTypeExpense},
					},
					Page:       page.Page,
					PageSize:   page.PageSize,
					TotalItems: 1,
					TotalPages: 1,
				}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories?page=1&page_size=20", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		data := result["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 category, got %d", len(data))
		}
	})

	t.Run("passes type filter", func(t *testing.T) {
		var captured *models.CategoryType
		catSvc := &mockCategoryService{
			getVisibleCategoriesFn: func(_ string, categoryType *models.CategoryType, _ pagination.PageRequest) (*pagination.PageResponse[models.Category], error) {
				captured = categoryType
				return &pagination.PageResponse[models.Category]{}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories?type=income", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if captured == nil || *captured != models.CategoryTypeIncome {
			t.Errorf("expected income filter, got %v", captured)
		}
	})

	t.Run("returns 400 on unknown type filter", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories?type=savings", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestCategoryHandler_GetCategoryByID(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		catSvc := &mockCategoryService{
			getCategoryByIDFn: func(_, categoryID string) (*models.Category, error) {
				return &models.Category{Base: models.Base{ID: categoryID}, Name: "Rent"}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on malformed ID", func(t *testing.T) {
		handler := NewCategoryHandler(&mockCategoryService{}, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		catSvc := &mockCategoryService{
			getCategoryByIDFn: func(_, _ string) (*models.Category, error) {
				return nil, apperrors.ErrCategoryNotFound
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "GET", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_NOT_FOUND")
	})
}

func TestCategoryHandler_UpdateCategory(t *testing.T) {
	t.Run("passes only supplied fields", func(t *testing.T) {
		var captured services.CategoryUpdateFields
		catSvc := &mockCategoryService{
			updateCategoryFn: func(_, categoryID string, fields services.CategoryUpdateFields) (*models.Category, error) {
				captured = fields
				return &models.Category{Base: models.Base{ID: categoryID}}, nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "PUT", "/categories/"+testCategoryID, `{"name":"Dining out"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.Name == nil || *captured.Name != "Dining out" {
			t.Error("expected name to be passed through")
		}
		if captured.Colour != nil || captured.Icon != nil || captured.Description != nil {
			t.Error("absent fields should stay nil")
		}
	})

	t.Run("returns 403 on default category", func(t *testing.T) {
		catSvc := &mockCategoryService{
			updateCategoryFn: func(_, _ string, _ services.CategoryUpdateFields) (*models.Category, error) {
				return nil, apperrors.ErrDefaultCategory
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "PUT", "/categories/"+testCategoryID, `{"name":"Renamed"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DEFAULT_CATEGORY_IMMUTABLE")
	})
}

func TestCategoryHandler_DeleteCategory(t *testing.T) {
	t.Run("returns 200 on success", func(t *testing.T) {
		deleted := false
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(_, categoryID string) error {
				if categoryID != testCategoryID {
					t.Errorf("expected category ID %s, got %s", testCategoryID, categoryID)
				}
				deleted = true
				return nil
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "DELETE", "/categories/"+testCategoryID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if !deleted {
			t.Error("expected delete to be called")
		}
	})

	t.Run("returns 409 while in use", func(t *testing.T) {
		catSvc := &mockCategoryService{
			deleteCategoryFn: func(_, _ string) error {
				return apperrors.ErrCategoryInUse
			},
		}
		handler := NewCategoryHandler(catSvc, &mockAuditService{})
		r := setupCategoryRouter(handler)

		rec := doRequest(r, "DELETE", fmt.Sprintf("/categories/%s", testCategoryID), "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_IN_USE")
	})
}
