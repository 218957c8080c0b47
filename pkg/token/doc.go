// Package token はセクション単位のアクセス権を表す署名付きトークンを提供する。
//
// トークンは "ヘッダー.クレーム.署名" の3セグメントからなるHS256形式で、
// サーバーは発行済みトークンを一切保持しない。有効性は署名の再計算と
// 有効期限の確認のみで判定する。署名アルゴリズムはサーバー側で固定しており、
// トークンのヘッダーに書かれたalgは検証に使用しない。
package token
