package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNotAuthenticated は有効なセッションが無い場合のエラー。
var ErrNotAuthenticated = errors.New("ログインしていないか、セッションの有効期限が切れています")

// StatusError はAPIが2xx以外を返した場合のエラー。
type StatusError struct {
	// StatusCode はHTTPステータスコード。
	StatusCode int
	// Message はレスポンスのerrorフィールド。
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("HTTPエラー: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("HTTPエラー: status=%d, error=%s", e.StatusCode, e.Message)
}

// Link は保護セクションで公開されるリンク。
type Link struct {
	Title         string `json:"title"`
	TitleEn       string `json:"title_en"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	DescriptionEn string `json:"description_en"`
}

// Client はnavgate APIのクライアント。
type Client struct {
	// httpClient は内部で使用するHTTPクライアント。
	httpClient *http.Client
	// baseURL は接続先のベースURL。
	baseURL string
	// holder はセッションの保存先。
	holder Holder
	// now は現在時刻を返す関数。
	now func() time.Time
}

// Option はClientの生成オプション。
type Option func(*Client)

// WithHTTPClient は内部で使用するHTTPクライアントを差し替える。
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithClock はセッションの期限判定に使う時計を差し替える。
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// New は新しいクライアントを生成する。
// baseURLには接続先のベースURL（例: "https://auth.example.com"）を指定する。
func New(baseURL string, holder Holder, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
		holder:  holder,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login はパスワードでログインし、成功したセッションをHolderに保存する。
// 既存のセッションはログインの成否にかかわらず破棄する。
func (c *Client) Login(ctx context.Context, password, section string) error {
	c.holder.Clear()

	var resp struct {
		Success   bool   `json:"success"`
		Token     string `json:"token"`
		ExpiresIn int64  `json:"expiresIn"`
	}
	body := map[string]string{"password": password, "section": section}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", body, "", &resp); err != nil {
		return err
	}
	if !resp.Success || resp.Token == "" {
		return errors.New("ログインレスポンスにトークンが含まれていません")
	}

	c.holder.Set(Session{
		Token:     resp.Token,
		ExpiresAt: c.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
		Section:   section,
	})
	return nil
}

// Verify はサーバーにトークンを検証させ、トークンのセクションを返す。
// ローカルで期限切れと判断できる場合はサーバーに問い合わせない。
// サーバーが拒否した場合はセッションを破棄する。
func (c *Client) Verify(ctx context.Context) (string, error) {
	s, err := c.validSession()
	if err != nil {
		return "", err
	}

	var resp struct {
		Valid   bool   `json:"valid"`
		Section string `json:"section"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/verify", map[string]string{"token": s.Token}, "", &resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			c.holder.Clear()
		}
		return "", err
	}
	if !resp.Valid {
		c.holder.Clear()
		return "", ErrNotAuthenticated
	}
	return resp.Section, nil
}

// ProtectedContent は現在のセッションのセクションのリンク一覧を取得する。
// サーバーが401を返した場合はセッションを破棄する。
func (c *Client) ProtectedContent(ctx context.Context) ([]Link, error) {
	s, err := c.validSession()
	if err != nil {
		return nil, err
	}

	var resp struct {
		Links []Link `json:"links"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/protected/content", nil, s.Token, &resp); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusUnauthorized {
			c.holder.Clear()
		}
		return nil, err
	}
	return resp.Links, nil
}

// Logout はセッションを破棄する。サーバーには何も送らない。
func (c *Client) Logout() {
	c.holder.Clear()
}

// CurrentSection は有効なセッションのセクションを返す。
func (c *Client) CurrentSection() (string, bool) {
	s, err := c.validSession()
	if err != nil {
		return "", false
	}
	return s.Section, true
}

// validSession は期限内のセッションを返す。期限切れのセッションは破棄する。
func (c *Client) validSession() (Session, error) {
	s, ok := c.holder.Get()
	if !ok {
		return Session{}, ErrNotAuthenticated
	}
	if !s.IsValid(c.now()) {
		c.holder.Clear()
		return Session{}, ErrNotAuthenticated
	}
	return s, nil
}

// doJSON はJSON形式のHTTPリクエストを実行する共通処理。
// bearerが空でなければAuthorizationヘッダーに設定する。
func (c *Client) doJSON(ctx context.Context, method, path string, body any, bearer string, result any) error {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("リクエストボディのシリアライズに失敗: %w", err)
		}
		bodyReader = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTPリクエストの送信に失敗: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errBody struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&errBody)
		return &StatusError{StatusCode: resp.StatusCode, Message: errBody.Error}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("レスポンスボディのデシリアライズに失敗: %w", err)
		}
	}
	return nil
}
