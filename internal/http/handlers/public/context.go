package public

import (
	handlershared "github.com/aozora-fansite/internal/http/handlers/shared"
	"github.com/aozora-fansite/internal/models"

	"github.com/gin-gonic/gin"
)

func getUserID(c *gin.Context) (string, bool) {
	return handlershared.GetContextString(c, "user_id")
}

// currentUser 读取鉴权中间件放入上下文的用户记录。
// 未登录或可选鉴权未命中时返回 nil。
func currentUser(c *gin.Context) *models.User {
	value, exists := c.Get("current_user")
	if !exists {
		return nil
	}
	user, ok := value.(*models.User)
	if !ok {
		return nil
	}
	return user
}
