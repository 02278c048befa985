package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/yuheng2/reader_go_server/internal/pkg/jwt"
	"github.com/yuheng2/reader_go_server/internal/pkg/response"
	"github.com/yuheng2/reader_go_server/internal/pkg/ws"
	"github.com/yuheng2/reader_go_server/internal/repository"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS 已在中间件层控制
	},
}

// WSHandler 管理端实时浏览事件推送
type WSHandler struct {
	hub       *ws.Hub
	userRepo  *repository.UserRepository
	jwtSecret string
}

func NewWSHandler(hub *ws.Hub, userRepo *repository.UserRepository, jwtSecret string) *WSHandler {
	return &WSHandler{
		hub:       hub,
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
	}
}

// HandleViews 建立 WebSocket 连接，推送实时浏览事件。
// 浏览器的 WebSocket API 不支持自定义 Header，token 走 query 参数。
// GET /ws/views?token=xxx
func (h *WSHandler) HandleViews(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.AuthError(c, "缺少 token")
		return
	}

	claims, err := jwt.ParseToken(token, h.jwtSecret)
	if err != nil {
		response.AuthError(c, "token 无效")
		return
	}

	// 以数据库为准校验管理员身份，防止降权后旧 token 继续连
	user, err := h.userRepo.GetByID(claims.UserID)
	if err != nil || !user.Role.IsAdmin() {
		response.Forbidden(c, response.CodeUnauthorized, "需要管理员权限")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &ws.Client{
		UserID: user.ID,
		Conn:   conn,
	}
	h.hub.Register(client)

	// 读循环只用于感知断开，客户端消息一律丢弃
	go func() {
		defer func() {
			h.hub.Unregister(client)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
