package access

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/nao1215/navgate/internal/content"
	"github.com/nao1215/navgate/pkg/token"
)

// Credential は1つのセクションの認証情報。
type Credential struct {
	// Section は正規のセクションID。
	Section string
	// Aliases はIDの代わりに受け付ける別名。
	Aliases []string
	// Secret はセクションのパスワード。
	Secret string
}

// Grant はログイン成功時に返す発行済みトークン。
type Grant struct {
	// Token は署名済みトークン。
	Token string
	// Section はトークンに格納した正規のセクションID。
	Section string
	// ExpiresIn はトークンの有効期間（秒）。
	ExpiresIn int64
}

// Gateway はセクション単位の認証と認可を行う。
// 生成後は読み取り専用であり、並行して呼び出してよい。
type Gateway struct {
	// codec はトークンの発行と検証を行う。
	codec *token.Codec
	// credentials はセクションIDと別名から認証情報を引く。
	credentials map[string]Credential
	// source はセクションのリンク一覧の取得元。
	source content.Source
}

// New はGatewayを生成する。
func New(codec *token.Codec, credentials []Credential, source content.Source) *Gateway {
	byName := make(map[string]Credential, len(credentials))
	for _, c := range credentials {
		byName[c.Section] = c
		for _, alias := range c.Aliases {
			byName[alias] = c
		}
	}
	return &Gateway{
		codec:       codec,
		credentials: byName,
		source:      source,
	}
}

// Authenticate はパスワードを検証し、成功すればセクションを限定したトークンを発行する。
// セクションが存在しない場合はパスワードを確認せずにErrUnknownSectionを返す。
func (g *Gateway) Authenticate(secret, section string) (*Grant, error) {
	cred, ok := g.credentials[section]
	if !ok {
		return nil, ErrUnknownSection
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(cred.Secret)) != 1 {
		return nil, ErrBadCredential
	}

	tok, err := g.codec.Encode(token.NewClaims(cred.Section, g.codec.Now()))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}
	return &Grant{
		Token:     tok,
		Section:   cred.Section,
		ExpiresIn: int64(token.DefaultTTL.Seconds()),
	}, nil
}

// Verify はトークンを検証してクレームを返す。
// 失敗理由は ErrInvalidToken にまとめ、token パッケージのエラーをラップする。
func (g *Gateway) Verify(tokenString string) (*token.Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims, err := g.codec.Decode(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return claims, nil
}

// AuthorizeAndFetch はトークンを検証し、トークンのセクションのリンク一覧を返す。
// requestedが空でない場合、それがトークンのセクションを指していなければ拒否する。
// 検証済みトークンのセクションが設定に無い場合は空の一覧を返す。
// sectionクレームが別名の場合は正規のIDに読み替える。
func (g *Gateway) AuthorizeAndFetch(ctx context.Context, tokenString, requested string) ([]content.Link, error) {
	claims, err := g.Verify(tokenString)
	if err != nil {
		return nil, err
	}

	owner, ok := g.credentials[claims.Section]
	if requested != "" {
		cred, found := g.credentials[requested]
		if !found || !ok || cred.Section != owner.Section {
			return nil, fmt.Errorf("%w: %w: token=%q requested=%q", ErrInvalidToken, ErrSectionMismatch, claims.Section, requested)
		}
	}
	if !ok {
		return []content.Link{}, nil
	}

	links, err := g.source.Links(ctx, owner.Section)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnexpected, err)
	}
	if links == nil {
		links = []content.Link{}
	}
	return links, nil
}
