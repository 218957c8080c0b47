// Package middleware はnavgateのHTTP APIで使用するGinミドルウェアを提供する。
//
// Bearerトークンの取り出し、リクエストIDの付与、パニックリカバリ、
// CORS設定など、全ルートで共通して使用するミドルウェアを含む。
package middleware
