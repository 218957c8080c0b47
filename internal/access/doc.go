// Package access は保護セクションへのアクセス可否を判定するポリシー層を提供する。
//
// パスワードによる認証に成功するとセクションを限定したトークンを発行し、
// 以降のリクエストではトークンのsectionクレームに対応するリンク一覧だけを返す。
// サーバー側にセッションは持たず、状態は毎回トークンから復元する。
package access
