package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL はログイン成功時に発行するトークンの有効期間。
const DefaultTTL = 24 * time.Hour

// Claims はトークンに署名付きで格納されるペイロード。
// 一度発行したクレームは変更しない。内容を変えるには新しいトークンを発行する。
type Claims struct {
	// Section はこのトークンで閲覧できる保護セクションの識別子。
	Section string `json:"section"`
	// ExpiresAt はトークンが無効になる時刻。nilの場合は期限なし。
	ExpiresAt *jwt.NumericDate `json:"exp,omitempty"`
}

// NewClaims は issuedAt から DefaultTTL 後に失効するクレームを生成する。
func NewClaims(section string, issuedAt time.Time) Claims {
	return Claims{
		Section:   section,
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(DefaultTTL)),
	}
}

// jwt.Claims の実装。署名時にのみ使われ、検証はCodecが自前で行う。
var _ jwt.Claims = Claims{}

func (c Claims) GetExpirationTime() (*jwt.NumericDate, error) { return c.ExpiresAt, nil }
func (c Claims) GetIssuedAt() (*jwt.NumericDate, error)       { return nil, nil }
func (c Claims) GetNotBefore() (*jwt.NumericDate, error)      { return nil, nil }
func (c Claims) GetIssuer() (string, error)                   { return "", nil }
func (c Claims) GetSubject() (string, error)                  { return c.Section, nil }
func (c Claims) GetAudience() (jwt.ClaimStrings, error)       { return nil, nil }
