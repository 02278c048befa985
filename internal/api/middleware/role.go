package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

// RequireAdmin 管理员校验。角色以数据库为准，不信任 token 里的快照，
// 降级后的旧 token 立即失效。
func RequireAdmin(userRepo *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			response.AuthError(c, "请先登录")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(userID)
		if err != nil {
			response.AuthError(c, "用户不存在")
			c.Abort()
			return
		}

		if !user.Role.IsAdmin() {
			response.Forbidden(c, response.CodeUnauthorized, "需要管理员权限")
			c.Abort()
			return
		}

		c.Next()
	}
}
