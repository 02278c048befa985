package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码（前端据此区分"去订阅"还是"去升级"等提示）
const (
	CodeUnauthorized         = "UNAUTHORIZED"
	CodeAuthFailed           = "AUTH_FAILED"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodePlanNotFound         = "PLAN_NOT_FOUND"
	CodePlanInactive         = "PLAN_INACTIVE"
	CodeSubscriptionRequired = "SUBSCRIPTION_REQUIRED"
	CodeDailyLimitReached    = "DAILY_LIMIT_REACHED"
	CodeArticleNotPublished  = "ARTICLE_NOT_PUBLISHED"
	CodeVideoNotPublished    = "VIDEO_NOT_PUBLISHED"
	CodeNoActiveSubscription = "NO_ACTIVE_SUBSCRIPTION"
	CodeServerError          = "SERVER_ERROR"
)

// 错误码对应的默认消息
var codeMessages = map[string]string{
	CodeUnauthorized:         "权限不足",
	CodeAuthFailed:           "认证失败",
	CodeValidationFailed:     "参数校验失败",
	CodeNotFound:             "资源不存在",
	CodeUserNotFound:         "用户不存在",
	CodePlanNotFound:         "套餐不存在",
	CodePlanInactive:         "套餐已停售",
	CodeSubscriptionRequired: "需要有效订阅",
	CodeDailyLimitReached:    "今日额度已用完",
	CodeArticleNotPublished:  "文章尚未发布",
	CodeVideoNotPublished:    "视频尚未发布",
	CodeNoActiveSubscription: "没有生效中的订阅",
	CodeServerError:          "服务器内部错误",
}

// PageData 分页数据结构
type PageData struct {
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
	Items    interface{} `json:"items"`
}

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// NoContent 204 无内容
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Page 分页成功响应
func Page(c *gin.Context, total int64, page, pageSize int, items interface{}) {
	c.JSON(http.StatusOK, PageData{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Items:    items,
	})
}

// Error 错误响应，body 带机器可读的 error 码
func Error(c *gin.Context, status int, code, message string) {
	if message == "" {
		message = codeMessages[code]
	}
	c.JSON(status, gin.H{
		"message": message,
		"error":   code,
	})
}

// ErrorWithFields 错误响应，附加额外字段（如限额信息）
func ErrorWithFields(c *gin.Context, status int, code, message string, fields gin.H) {
	if message == "" {
		message = codeMessages[code]
	}
	body := gin.H{
		"message": message,
		"error":   code,
	}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// AuthError 401 认证失败
func AuthError(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeAuthFailed, message)
}

// Forbidden 403 权限或策略拒绝
func Forbidden(c *gin.Context, code, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// DailyLimit 403 当日额度耗尽，body 携带 limit/used
func DailyLimit(c *gin.Context, limit, used int) {
	ErrorWithFields(c, http.StatusForbidden, CodeDailyLimitReached, "", gin.H{
		"limit": limit,
		"used":  used,
	})
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code, message string) {
	Error(c, http.StatusNotFound, code, message)
}

// BadRequest 400 请求错误
func BadRequest(c *gin.Context, code, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Validation 422 参数校验失败，带字段级错误
func Validation(c *gin.Context, errs interface{}) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{
		"message": "Validation failed",
		"error":   CodeValidationFailed,
		"errors":  errs,
	})
}

// ServerError 500 服务器错误
func ServerError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeServerError, message)
}
