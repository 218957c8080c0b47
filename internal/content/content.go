package content

import "context"

// Link は保護セクションで公開する1件のリンク。
type Link struct {
	// Title は表示名（中国語）。
	Title string `json:"title" yaml:"title" validate:"required"`
	// TitleEn は表示名（英語）。
	TitleEn string `json:"title_en" yaml:"title_en"`
	// URL はリンク先。
	URL string `json:"url" yaml:"url" validate:"required,url"`
	// Description は説明文（中国語）。
	Description string `json:"description" yaml:"description"`
	// DescriptionEn は説明文（英語）。
	DescriptionEn string `json:"description_en" yaml:"description_en"`
}

// Source はセクションIDからリンク一覧を引く読み取り専用の取得元。
// 未設定のセクションに対してはエラーではなく空の一覧を返す。
type Source interface {
	Links(ctx context.Context, section string) ([]Link, error)
}

// Static は設定から読み込んだ固定のリンク一覧。
type Static map[string][]Link

// Links はセクションのリンク一覧のコピーを返す。
func (s Static) Links(_ context.Context, section string) ([]Link, error) {
	links := s[section]
	out := make([]Link, len(links))
	copy(out, links)
	return out, nil
}
