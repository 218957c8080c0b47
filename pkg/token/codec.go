package token

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// signingMethod はサーバーが固定で使用する署名アルゴリズム。
// トークンのヘッダーから選択することはない。
var signingMethod = jwt.SigningMethodHS256

// segmentParser はbase64urlセグメントのデコードにのみ使用する。
// 末尾ビットが正規形でないセグメントは拒否し、"="パディングは許容する。
var segmentParser = jwt.NewParser(jwt.WithStrictDecoding(), jwt.WithPaddingAllowed())

// Codec は署名鍵と時計を束ねたトークンのエンコーダ/デコーダ。
// 生成後は不変であり、複数のgoroutineから同時に使用できる。
type Codec struct {
	// key はHMAC署名に使用するサーバー秘密鍵。
	key []byte
	// now は現在時刻を返す関数。テストで差し替える。
	now func() time.Time
}

// Option はCodecの生成オプション。
type Option func(*Codec)

// WithClock は有効期限の判定に使う時計を差し替える。
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

// NewCodec は署名鍵を指定してCodecを生成する。鍵が空の場合はエラーを返す。
func NewCodec(key []byte, opts ...Option) (*Codec, error) {
	if len(key) == 0 {
		return nil, ErrMalformedInput
	}
	c := &Codec{
		key: append([]byte(nil), key...),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Now はCodecが使用している現在時刻を返す。
func (c *Codec) Now() time.Time {
	return c.now()
}

// Encode はクレームに署名してトークン文字列を生成する。
func (c *Codec) Encode(claims Claims) (string, error) {
	return encode(claims, c.key, c.now())
}

// Decode はトークンを検証してクレームを取り出す。
func (c *Codec) Decode(tokenString string) (*Claims, error) {
	return decode(tokenString, c.key, c.now())
}

// Encode は現在時刻を基準にクレームへ署名する。
// 同じクレームと鍵からは常に同じトークンが得られる。
func Encode(claims Claims, key []byte) (string, error) {
	return encode(claims, key, time.Now())
}

// Decode は現在時刻を基準にトークンを検証する。
func Decode(tokenString string, key []byte) (*Claims, error) {
	return decode(tokenString, key, time.Now())
}

func encode(claims Claims, key []byte, now time.Time) (string, error) {
	if len(key) == 0 {
		return "", ErrMalformedInput
	}
	if claims.Section == "" {
		return "", fmt.Errorf("%w: sectionが空です", ErrInvalidClaims)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(now) {
		return "", fmt.Errorf("%w: 有効期限が未来の時刻ではありません", ErrInvalidClaims)
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("トークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// decode は次の順序で検証する。
// 入力の有無、セグメント数、署名、クレーム、有効期限。
// 署名が一致するまではクレームの中身を一切解釈しない。
func decode(tokenString string, key []byte, now time.Time) (*Claims, error) {
	if tokenString == "" || len(key) == 0 {
		return nil, ErrMalformedInput
	}

	parts := strings.Split(tokenString, ".")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return nil, ErrMalformedToken
	}

	sig, err := segmentParser.DecodeSegment(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}
	// Verify は hmac.Equal による定数時間比較を行う。
	if err := signingMethod.Verify(parts[0]+"."+parts[1], sig, key); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadSignature, err)
	}

	payload, err := segmentParser.DecodeSegment(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedClaims, err)
	}
	var claims Claims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedClaims, err)
	}
	if claims.Section == "" {
		return nil, fmt.Errorf("%w: sectionがありません", ErrMalformedClaims)
	}

	if claims.ExpiresAt != nil && !now.Before(claims.ExpiresAt.Time) {
		return nil, ErrExpired
	}
	return &claims, nil
}
