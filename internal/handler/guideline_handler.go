package handler

import (
	"net/http"
	"rex-go/internal/service"
	"rex-go/pkg/log"

	"github.com/gin-gonic/gin"
)

// GuidelineHandler 负责模型指令相关的 API 请求。
type GuidelineHandler struct {
	guidelineService service.GuidelineService
}

// NewGuidelineHandler 创建一个新的 GuidelineHandler 实例。
func NewGuidelineHandler(guidelineService service.GuidelineService) *GuidelineHandler {
	return &GuidelineHandler{guidelineService: guidelineService}
}

// CreateGuidelineRequest 定义了创建指令 API 的请求体结构。isActive 缺省为 true。
type CreateGuidelineRequest struct {
	Title    string `json:"title" binding:"required,max=255"`
	Content  string `json:"content" binding:"required"`
	Priority int    `json:"priority"`
	IsActive *bool  `json:"isActive"`
}

type UpdateGuidelineRequest struct {
	Title    *string `json:"title" binding:"omitempty,min=1,max=255"`
	Content  *string `json:"content" binding:"omitempty,min=1"`
	Priority *int    `json:"priority"`
	IsActive *bool   `json:"isActive"`
}

func (h *GuidelineHandler) List(c *gin.Context) {
	guidelines, err := h.guidelineService.List(c.Request.Context())
	if err != nil {
		renderError(c, err, "Guideline")
		return
	}
	c.JSON(http.StatusOK, guidelines)
}

// ListActive 是公开接口，只返回启用的指令，按 priority 降序、title 升序。
func (h *GuidelineHandler) ListActive(c *gin.Context) {
	guidelines, err := h.guidelineService.ListActive(c.Request.Context())
	if err != nil {
		renderError(c, err, "Guideline")
		return
	}
	c.JSON(http.StatusOK, guidelines)
}

func (h *GuidelineHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	guideline, err := h.guidelineService.Get(c.Request.Context(), id)
	if err != nil {
		renderError(c, err, "Guideline")
		return
	}
	c.JSON(http.StatusOK, guideline)
}

func (h *GuidelineHandler) Create(c *gin.Context) {
	var req CreateGuidelineRequest
	if !bindJSON(c, &req) {
		return
	}
	guideline, err := h.guidelineService.Create(c.Request.Context(), service.GuidelineInput{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
		IsActive: req.IsActive,
	})
	if err != nil {
		renderError(c, err, "Guideline")
		return
	}
	log.Infof("指令 '%s' 创建成功, id: %d", guideline.Title, guideline.ID)
	c.JSON(http.StatusCreated, guideline)
}

func (h *GuidelineHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req UpdateGuidelineRequest
	if !bindJSON(c, &req) {
		return
	}
	guideline, err := h.guidelineService.Update(c.Request.Context(), id, service.GuidelinePatch{
		Title:    req.Title,
		Content:  req.Content,
		Priority: req.Priority,
		IsActive: req.IsActive,
	})
	if err != nil {
		renderError(c, err, "Guideline")
		return
	}
	c.JSON(http.StatusOK, guideline)
}

func (h *GuidelineHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.guidelineService.Delete(c.Request.Context(), id); err != nil {
		renderError(c, err, "Guideline")
		return
	}
	c.Status(http.StatusNoContent)
}
