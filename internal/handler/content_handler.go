package handler

import (
	"net/http"
	"rex-go/internal/model"
	"rex-go/internal/service"
	"rex-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// ContentHandler 负责参考内容相关的 API 请求。
type ContentHandler struct {
	contentService service.ContentService
}

// NewContentHandler 创建一个新的 ContentHandler 实例。
func NewContentHandler(contentService service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// CreateContentRequest 定义了创建内容条目 API 的请求体结构。status 缺省为 draft。
type CreateContentRequest struct {
	Title      string              `json:"title" binding:"required,max=255"`
	Content    string              `json:"content" binding:"required"`
	Status     model.ContentStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID uint                `json:"categoryId" binding:"required"`
}

type UpdateContentRequest struct {
	Title      *string              `json:"title" binding:"omitempty,min=1,max=255"`
	Content    *string              `json:"content" binding:"omitempty,min=1"`
	Status     *model.ContentStatus `json:"status" binding:"omitempty,oneof=draft published archived"`
	CategoryID *uint                `json:"categoryId" binding:"omitempty,min=1"`
}

func (h *ContentHandler) List(c *gin.Context) {
	entries, err := h.contentService.List(c.Request.Context())
	if err != nil {
		renderError(c, err, "Content")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// ListByCategory 返回某个分类下的内容条目，未知分类返回空列表。
func (h *ContentHandler) ListByCategory(c *gin.Context) {
	categoryID, ok := parseID(c, "id")
	if !ok {
		return
	}
	entries, err := h.contentService.ListByCategory(c.Request.Context(), categoryID)
	if err != nil {
		renderError(c, err, "Content")
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	entry, err := h.contentService.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err, "Content")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ContentHandler) Create(c *gin.Context) {
	var req CreateContentRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.contentService.Create(c.Request.Context(), service.ContentInput{
		Title:      req.Title,
		Content:    req.Content,
		Status:     req.Status,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		renderError(c, err, "Content")
		return
	}
	log.Infof("内容 '%s' 创建成功, id: %d", entry.Title, entry.ID)
	c.JSON(http.StatusCreated, entry)
}

func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateContentRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.contentService.Update(c.Request.Context(), id, service.ContentPatch{
		Title:      req.Title,
		Content:    req.Content,
		Status:     req.Status,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		renderError(c, err, "Content")
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err, "Content")
		return
	}
	c.Status(http.StatusNoContent)
}
