package access

import "errors"

var (
	// ErrUnknownSection は設定に存在しないセクションが指定された場合のエラー。
	ErrUnknownSection = errors.New("不明なセクションです")
	// ErrBadCredential はパスワードが一致しない場合のエラー。
	ErrBadCredential = errors.New("パスワードが一致しません")
	// ErrMissingToken はトークンが提示されなかった場合のエラー。
	ErrMissingToken = errors.New("トークンがありません")
	// ErrInvalidToken はトークンの検証に失敗した場合のエラー。
	// 署名不正・期限切れ・形式不正を区別せずにこのエラーへまとめ、
	// 元のエラーはラップして保持する。
	ErrInvalidToken = errors.New("トークンが無効です")
	// ErrSectionMismatch は要求したセクションがトークンのセクションと異なる場合のエラー。
	// 常にErrInvalidTokenと一緒にラップして返す。
	ErrSectionMismatch = errors.New("トークンのセクションと一致しません")
	// ErrUnexpected はリンク一覧の取得など内部処理に失敗した場合のエラー。
	ErrUnexpected = errors.New("内部エラーが発生しました")
)
