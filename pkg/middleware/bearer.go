package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// contextKeyToken はGinコンテキストにBearerトークンを格納するキー。
const contextKeyToken = "bearer_token"

// BearerToken はAuthorizationヘッダーから "Bearer " に続くトークンを取り出す。
func BearerToken(c *gin.Context) (string, bool) {
	tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
	if !found || tokenString == "" {
		return "", false
	}
	return tokenString, true
}

// RequireBearer はBearerトークンの提示を必須にするGinミドルウェアを返す。
// トークンが無い場合は401 {"error":"Missing token"} で中断する。
// トークンの検証は行わず、後続のハンドラがGetTokenで取り出して検証する。
func RequireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := BearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Missing token",
			})
			return
		}
		c.Set(contextKeyToken, tokenString)
		c.Next()
	}
}

// GetToken はGinコンテキストからBearerトークンを取得する。
// RequireBearerミドルウェアが事前に適用されている必要がある。
func GetToken(c *gin.Context) string {
	v, _ := c.Get(contextKeyToken)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
