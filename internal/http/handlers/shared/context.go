package shared

import (
	"github.com/storefront-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// SessionIDKey 会话 ID 在 gin 上下文中的键名
const SessionIDKey = "session_id"

// GetSessionID 读取会话中间件写入的会话 ID，缺失时返回错误响应并中止。
func GetSessionID(c *gin.Context) (string, bool) {
	value, ok := c.Get(SessionIDKey)
	if !ok {
		RespondError(c, response.CodeInternal, "session missing", nil)
		return "", false
	}
	id, ok := value.(string)
	if !ok || id == "" {
		RespondError(c, response.CodeInternal, "session invalid", nil)
		return "", false
	}
	return id, true
}
