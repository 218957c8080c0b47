package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nao1215/navgate/internal/access"
	"github.com/nao1215/navgate/pkg/middleware"
	"github.com/nao1215/navgate/pkg/token"
)

// readHeaderTimeout はリクエストヘッダー読み込みのタイムアウト。
const readHeaderTimeout = 10 * time.Second

// Server はnavgateのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// access はログインと認可の判定を行う。
	access *access.Gateway
}

// loginRequest はPOST /api/auth/loginのリクエストボディ。
type loginRequest struct {
	Password string `json:"password"`
	Section  string `json:"section"`
}

// verifyRequest はPOST /api/auth/verifyのリクエストボディ。
type verifyRequest struct {
	Token string `json:"token"`
}

// NewServer は新しいサーバーを生成する。
// allowedOriginsが空の場合はすべてのオリジンからのアクセスを許可する。
func NewServer(port string, gw *access.Gateway, allowedOrigins []string) *Server {
	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS(allowedOrigins))

	s := &Server{
		router: router,
		port:   port,
		access: gw,
	}
	s.setupRoutes()

	return s
}

// Handler はサーバーのhttp.Handlerを返す。
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run はHTTPサーバーを起動し、ctxがキャンセルされるとグレースフルに停止する。
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", s.port),
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), readHeaderTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("サーバーの停止に失敗: %w", err)
		}
		return nil
	}
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	auth := s.router.Group("/api/auth")
	{
		auth.POST("/login", s.handleLogin())
		auth.POST("/verify", s.handleVerify())
	}

	protected := s.router.Group("/api/protected")
	protected.Use(middleware.RequireBearer())
	{
		protected.GET("/content", s.handleProtectedContent())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "navgate"})
	})

	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not Found"})
	})
}

// handleLogin はパスワードを検証してトークンを発行するハンドラを返す。
func (s *Server) handleLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}

		grant, err := s.access.Authenticate(req.Password, req.Section)
		switch {
		case errors.Is(err, access.ErrUnknownSection):
			log.Printf("[Auth] ログイン失敗: request_id=%s reason=unknown_section", middleware.GetRequestID(c))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid section"})
			return
		case errors.Is(err, access.ErrBadCredential):
			log.Printf("[Auth] ログイン失敗: request_id=%s section=%s reason=bad_credential", middleware.GetRequestID(c), req.Section)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
			return
		case err != nil:
			log.Printf("[Auth] トークン発行エラー: request_id=%s error=%v", middleware.GetRequestID(c), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"token":     grant.Token,
			"expiresIn": grant.ExpiresIn,
		})
	}
}

// handleVerify はトークンの有効性を返すハンドラを返す。
func (s *Server) handleVerify() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req verifyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"valid": false})
			return
		}

		claims, err := s.access.Verify(req.Token)
		if err != nil {
			s.logRejected(c, err)
			c.JSON(http.StatusUnauthorized, gin.H{"valid": false})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"valid":   true,
			"section": claims.Section,
		})
	}
}

// handleProtectedContent はトークンのセクションのリンク一覧を返すハンドラを返す。
// クエリパラメータsectionが指定された場合は、トークンのセクションと一致することも要求する。
func (s *Server) handleProtectedContent() gin.HandlerFunc {
	return func(c *gin.Context) {
		links, err := s.access.AuthorizeAndFetch(c.Request.Context(), middleware.GetToken(c), c.Query("section"))
		switch {
		case errors.Is(err, access.ErrMissingToken):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing token"})
			return
		case errors.Is(err, access.ErrInvalidToken):
			s.logRejected(c, err)
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		case err != nil:
			log.Printf("[Auth] 保護コンテンツの取得に失敗: request_id=%s error=%v", middleware.GetRequestID(c), err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"links": links})
	}
}

// logRejected はトークンが拒否された理由をログに出力する。
// レスポンスには理由を含めない。
func (s *Server) logRejected(c *gin.Context, err error) {
	var reason string
	switch {
	case errors.Is(err, access.ErrMissingToken):
		reason = "missing_token"
	case errors.Is(err, access.ErrSectionMismatch):
		reason = "section_mismatch"
	default:
		reason = token.Reason(err)
	}
	log.Printf("[Auth] トークン拒否: request_id=%s path=%s reason=%s", middleware.GetRequestID(c), c.Request.URL.Path, reason)
}
