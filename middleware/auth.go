package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"spendbot/tokens"
)

const ownerIDKey = "ownerID"

// TokenAuth 仪表盘鉴权中间件。
// 依次尝试：查询参数 token / Authorization Bearer 中的访问令牌，
// 再尝试将 Bearer 值当作会话 JWT 解析；任一有效即放行。
func TokenAuth(store tokens.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		candidate := c.Query("token")
		if candidate == "" {
			auth := c.GetHeader("Authorization")
			if strings.HasPrefix(auth, "Bearer ") {
				candidate = strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			}
		}
		if candidate == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			c.Abort()
			return
		}

		if ownerID, ok := store.Resolve(candidate); ok {
			c.Set(ownerIDKey, ownerID)
			c.Next()
			return
		}

		if claims, err := ParseSessionToken(candidate); err == nil {
			c.Set(ownerIDKey, claims.OwnerID)
			c.Next()
			return
		}

		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
	}
}

// GetCurrentOwnerID 从上下文取出当前用户标识，未鉴权时返回空串
func GetCurrentOwnerID(c *gin.Context) string {
	if v, exists := c.Get(ownerIDKey); exists {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}
