// Package content は保護セクションごとに公開するリンク一覧の取得元を提供する。
//
// 設定ファイル由来の静的な一覧（Static）と、SQLiteに保存された一覧
// （SQLiteStore）の2種類があり、どちらもリクエスト処理中は読み取り専用で扱う。
package content
