package token

import "errors"

var (
	// ErrMalformedInput はトークンまたは鍵が空の場合のエラー。
	ErrMalformedInput = errors.New("トークンまたは鍵が指定されていません")
	// ErrMalformedToken はトークンが3つの空でないセグメントに分割できない場合のエラー。
	ErrMalformedToken = errors.New("トークンの形式が不正です")
	// ErrBadSignature は署名が一致しない場合のエラー。
	ErrBadSignature = errors.New("トークンの署名が不正です")
	// ErrMalformedClaims はクレームのデコードに失敗した場合のエラー。
	ErrMalformedClaims = errors.New("トークンのクレームが不正です")
	// ErrExpired はトークンの有効期限が切れている場合のエラー。
	ErrExpired = errors.New("トークンの有効期限が切れています")
	// ErrInvalidClaims は発行しようとしたクレームが不正な場合のエラー。
	ErrInvalidClaims = errors.New("発行するクレームが不正です")
)

// Reason はデコード時のエラーをログ出力用のラベルに変換する。
// トークン由来でないエラーには "unknown" を返す。
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	case errors.Is(err, ErrMalformedToken):
		return "malformed_token"
	case errors.Is(err, ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, ErrMalformedClaims):
		return "malformed_claims"
	case errors.Is(err, ErrExpired):
		return "expired"
	case errors.Is(err, ErrInvalidClaims):
		return "invalid_claims"
	default:
		return "unknown"
	}
}
