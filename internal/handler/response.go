// Package handler 包含了处理 HTTP 请求的控制器逻辑。
package handler

import (
	"errors"
	"net/http"
	"reflect"
	"rex-go/internal/repository"
	"rex-go/internal/service"
	"rex-go/pkg/log"
	"strconv"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError 是校验失败时返回给客户端的单个字段错误。
type FieldError struct {
	Field string `json:"field"`
	Tag   string `json:"tag"`
	Param string `json:"param,omitempty"`
}

// ErrorResponse 是所有非 2xx 响应的响应体。
type ErrorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

var registerTagNamesOnce sync.Once

// RegisterValidatorTagNames 让校验错误中的字段名使用 json tag，与请求体保持一致。
func RegisterValidatorTagNames() {
	registerTagNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})
	})
}

// bindJSON 绑定并校验请求体，失败时写入 400 响应并返回 false。
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		log.Warnf("%s %s: 无效的请求负载, error: %v", c.Request.Method, c.FullPath(), err)
		renderBindError(c, err)
		return false
	}
	return true
}

func renderBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusBadRequest, validationFailed(verrs))
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid request body",
		Errors:  []FieldError{{Field: "body", Tag: "json", Param: err.Error()}},
	})
}

func validationFailed(verrs validator.ValidationErrors) ErrorResponse {
	items := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		items = append(items, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return ErrorResponse{Message: "Validation failed", Errors: items}
}

// parseID 解析路径参数中的数字 id，非法时写入 400 响应。
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  []FieldError{{Field: name, Tag: "uint"}},
		})
		return 0, false
	}
	return uint(id), true
}

// renderError 把 service/repository 层的错误映射为 HTTP 状态码。
// resource 用于 404 的提示信息，例如 "Category"。
func renderError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: resource + " not found"})
	case errors.Is(err, repository.ErrCategoryInUse):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Category still has content entries"})
	case errors.Is(err, repository.ErrConstraintViolation):
		c.JSON(http.StatusConflict, ErrorResponse{Message: "Request conflicts with existing data"})
	case errors.Is(err, service.ErrUnknownCategory):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Errors:  []FieldError{{Field: "categoryId", Tag: "exists"}},
		})
	case errors.Is(err, service.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Message is required"})
	default:
		log.Errorf("%s %s 处理失败: %v", c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
