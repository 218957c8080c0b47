// Package authclient はnavgateのHTTP APIを呼び出すクライアントを提供する。
//
// ログインで得たトークンはSessionとしてHolderに保存する。Holderは
// 呼び出し側が注入するため、パッケージレベルの状態は持たない。
// 期限切れ・ログアウト・別セクションへのログイン時にセッションは破棄される。
package authclient
