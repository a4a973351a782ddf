package handler

import (
	"net/http"
	"rex-go/internal/model"
	"rex-go/internal/service"
	"rex-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// CategoryHandler 负责分类相关的 API 请求。
type CategoryHandler struct {
	categoryService service.CategoryService
}

// NewCategoryHandler 创建一个新的 CategoryHandler 实例。
func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CreateCategoryRequest 定义了创建分类 API 的请求体结构。
type CreateCategoryRequest struct {
	Name        string             `json:"name" binding:"required,max=255"`
	Description string             `json:"description"`
	Type        model.CategoryType `json:"type" binding:"required,oneof=early_reflections professional_journey personal_growth relationship_reflections philosophy creative other"`
}

// UpdateCategoryRequest 中省略的字段保持不变。
type UpdateCategoryRequest struct {
	Name        *string             `json:"name" binding:"omitempty,min=1,max=255"`
	Description *string             `json:"description"`
	Type        *model.CategoryType `json:"type" binding:"omitempty,oneof=early_reflections professional_journey personal_growth relationship_reflections philosophy creative other"`
}

// List 返回全部分类，按名称升序。
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		renderError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	category, err := h.categoryService.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req CreateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Create(c.Request.Context(), service.CategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		renderError(c, err, "Category")
		return
	}
	log.Infof("分类 '%s' 创建成功, id: %d", category.Name, category.ID)
	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateCategoryRequest
	if !bindJSON(c, &req) {
		return
	}
	category, err := h.categoryService.Update(c.Request.Context(), id, service.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Type:        req.Type,
	})
	if err != nil {
		renderError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, category)
}

// Delete 删除分类；仍有内容条目引用时返回 409。
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.categoryService.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err, "Category")
		return
	}
	log.Infof("分类 %d 已删除", id)
	c.Status(http.StatusNoContent)
}
