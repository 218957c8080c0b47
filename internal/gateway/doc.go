// Package gateway はnavgateのHTTPサーバーを提供する。
//
// ログイン、トークン検証、保護コンテンツ取得の3つのAPIを公開し、
// 判定そのものはaccessパッケージに委ねる。ここではリクエストの解釈と
// エラーからHTTPステータスへの変換だけを行う。トークン検証の失敗理由は
// ログにのみ出力し、レスポンスでは区別しない。
package gateway
