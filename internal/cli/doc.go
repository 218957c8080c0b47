// Package cli はnavgateの運用コマンドnavctlを実装する。
//
// トークンの発行と検証、リンク一覧のSQLiteへの投入を行う。
// 署名鍵はサーバーと同じくJWT_SECRET環境変数から読み込む。
package cli
