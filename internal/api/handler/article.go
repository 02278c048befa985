package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/internal/api/middleware"
	"github.com/yuheng2/reader_go_server/internal/model"
	"github.com/yuheng2/reader_go_server/internal/model/dto"
	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/service"
)

type ArticleHandler struct {
	articleService *service.ArticleService
	accessService  *service.AccessService
}

func NewArticleHandler(articleService *service.ArticleService, accessService *service.AccessService) *ArticleHandler {
	return &ArticleHandler{
		articleService: articleService,
		accessService:  accessService,
	}
}

// List 文章列表，需要订阅资格，不消耗额度
// GET /api/v1/articles
func (h *ArticleHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	if err := h.accessService.AuthorizeList(userID); err != nil {
		writeAccessError(c, err, model.KindArticle)
		return
	}

	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	articles, total, err := h.articleService.List(req.Page, req.PageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Page(c, total, req.Page, req.PageSize, articles)
}

// Get 文章详情，过访问闸门并计入当日额度
// GET /api/v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "文章 ID 不合法")
		return
	}

	article, err := h.articleService.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.NotFound(c, response.CodeNotFound, "文章不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	if err := h.accessService.AuthorizeDetail(c.Request.Context(), userID, model.KindArticle, article.ID, article.IsPublished); err != nil {
		writeAccessError(c, err, model.KindArticle)
		return
	}

	response.OK(c, article)
}

// Create 创建文章（管理端）
// POST /api/v1/admin/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	article, err := h.articleService.Create(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}

	response.Created(c, article)
}

// Update 更新文章（管理端）
// PUT /api/v1/admin/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "文章 ID 不合法")
		return
	}

	var req dto.UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Validation(c, err.Error())
		return
	}

	article, err := h.articleService.Update(id, &req)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.NotFound(c, response.CodeNotFound, "文章不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.OK(c, article)
}

// Delete 删除文章（管理端）
// DELETE /api/v1/admin/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, response.CodeValidationFailed, "文章 ID 不合法")
		return
	}

	if err := h.articleService.Delete(id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			response.NotFound(c, response.CodeNotFound, "文章不存在")
			return
		}
		response.ServerError(c, "")
		return
	}

	response.NoContent(c)
}

// writeAccessError 访问闸门错误统一转 HTTP 响应
func writeAccessError(c *gin.Context, err error, kind model.ContentKind) {
	var limitErr *service.DailyLimitError

	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, response.CodeUserNotFound, "")
	case errors.Is(err, service.ErrNotPublished):
		if kind == model.KindVideo {
			response.Forbidden(c, response.CodeVideoNotPublished, "")
		} else {
			response.Forbidden(c, response.CodeArticleNotPublished, "")
		}
	case errors.Is(err, service.ErrSubscriptionRequired):
		response.Forbidden(c, response.CodeSubscriptionRequired, "")
	case errors.As(err, &limitErr):
		response.DailyLimit(c, limitErr.Limit, limitErr.Used)
	default:
		response.ServerError(c, "")
	}
}
