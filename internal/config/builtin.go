package config

import "github.com/nao1215/navgate/internal/content"

// builtinSections はSECTIONS_FILE未指定時の2セクション構成を返す。
// パスワードはPASSWORD_1/PASSWORD_2、リンク先はPROTECTED_LINK_1/PROTECTED_LINK_2から読む。
// リンク先が未設定のセクションは空の一覧になる。
func builtinSections(getenv func(string) string) []Section {
	return []Section{
		{
			ID:      "private1",
			Aliases: []string{"私有访问1", "Private Access 1"},
			Secret:  getenv("PASSWORD_1"),
			Links: optionalLink(getenv("PROTECTED_LINK_1"), content.Link{
				Title:         "订阅链接1",
				TitleEn:       "Subscription Link 1",
				Description:   "点击即可复制",
				DescriptionEn: "Click to copy",
			}),
		},
		{
			ID:      "private2",
			Aliases: []string{"私有访问2", "Private Access 2"},
			Secret:  getenv("PASSWORD_2"),
			Links: optionalLink(getenv("PROTECTED_LINK_2"), content.Link{
				Title:         "订阅链接2",
				TitleEn:       "Subscription Link 2",
				Description:   "高级订阅链接",
				DescriptionEn: "Premium subscription link",
			}),
		},
	}
}

func optionalLink(url string, l content.Link) []content.Link {
	if url == "" {
		return nil
	}
	l.URL = url
	return []content.Link{l}
}
