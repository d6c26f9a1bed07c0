package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"vortex-go/internal/api/middleware"
	"vortex-go/internal/api/response"
	"vortex-go/internal/media"
	"vortex-go/internal/query"
	"vortex-go/internal/service"
	"vortex-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// handleServiceError 业务错误统一映射为 HTTP 状态码
func handleServiceError(c *gin.Context, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		logger.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		response.InternalError(c, "something went wrong while processing the request")
		return
	}

	switch svcErr.Kind {
	case service.KindInvalidArgument:
		response.BadRequest(c, svcErr.Message, svcErr.Details...)
	case service.KindUnauthorized:
		response.Unauthorized(c, svcErr.Message)
	case service.KindNotFound:
		response.NotFound(c, svcErr.Message)
	case service.KindConflict:
		response.Conflict(c, svcErr.Message)
	default:
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		response.InternalError(c, svcErr.Message)
	}
}

// bindFailed 请求参数校验失败，逐字段列出原因
func bindFailed(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		response.BadRequest(c, "invalid request body", err.Error())
		return
	}

	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, describeFieldError(fe))
	}
	response.BadRequest(c, "validation failed", details...)
}

func describeFieldError(fe validator.FieldError) string {
	field := fe.Field()
	if field != "" {
		field = strings.ToLower(field[:1]) + field[1:]
	}
	switch fe.Tag() {
	case "required", "required_without":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "username":
		return field + " must be 3-32 letters, digits, '_' or '.'"
	default:
		return fmt.Sprintf("%s is invalid (%s)", field, fe.Tag())
	}
}

// parseIDParam 路径中的正整数 ID
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, fmt.Sprintf("invalid %s", name))
		return 0, false
	}
	return id, true
}

// parsePagination page 从 1 开始，limit 默认 10、最大 100
func parsePagination(c *gin.Context) query.Page {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return query.NewPage(page, limit)
}

// currentUserID 经过 AuthRequired 的路由一定有用户 ID
func currentUserID(c *gin.Context) int64 {
	userID, _ := middleware.GetCurrentUserID(c)
	return userID
}

// saveUpload 校验并保存上传文件。返回 false 表示已写入错误响应。
// 文件缺失且非必填时返回 (nil, true)。
func saveUpload(c *gin.Context, policy *media.Policy, field string, kind media.Kind, required bool) (*media.File, bool) {
	fh, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		if required {
			response.BadRequest(c, fmt.Sprintf("%s file is required", field))
			return nil, false
		}
		return nil, true
	}
	if err != nil {
		response.BadRequest(c, "invalid multipart form", err.Error())
		return nil, false
	}

	f, err := policy.Save(field, kind, fh)
	if err != nil {
		var rejected *media.RejectError
		if errors.As(err, &rejected) {
			response.BadRequest(c, "invalid file upload", rejected.Error())
			return nil, false
		}
		logger.Error("Failed to save upload", zap.String("field", field), zap.Error(err))
		response.InternalError(c, "failed to process uploaded file")
		return nil, false
	}
	return f, true
}
