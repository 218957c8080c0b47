// Package config はnavgateサーバーの設定を環境変数とYAMLファイルから読み込む。
//
// 署名鍵と各セクションのパスワードは必須であり、未設定の場合は起動に失敗する。
// 組み込みの既定値で代替することはない。
package config
