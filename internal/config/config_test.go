package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// mapEnv はmapを環境変数として扱うgetenvを返す。
func mapEnv(m map[string]string) func(string) string {
	return func(key string) string { return m[key] }
}

// validEnv は組み込みセクション構成で起動できる最小の環境変数。
func validEnv() map[string]string {
	return map[string]string{
		"JWT_SECRET":       "signing-key",
		"PASSWORD_1":       "correct1",
		"PASSWORD_2":       "correct2",
		"PROTECTED_LINK_1": "https://example.com/link1",
	}
}

// writeFile はテスト用の一時ファイルを作成してパスを返す。
func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "sections.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("一時ファイルの作成に失敗: %v", err)
	}
	return path
}

// TestLoad は環境変数からの設定読み込みを検証する。
func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("組み込みセクション構成を読み込めること", func(t *testing.T) {
		t.Parallel()

		cfg, err := Load(mapEnv(validEnv()))
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if cfg.Port != "8080" {
			t.Errorf("Port = %q, want %q", cfg.Port, "8080")
		}
		if cfg.SigningKey != "signing-key" {
			t.Errorf("SigningKey = %q, want %q", cfg.SigningKey, "signing-key")
		}
		if len(cfg.Sections) != 2 {
			t.Fatalf("セクション数 = %d, want 2", len(cfg.Sections))
		}
		if cfg.Sections[0].ID != "private1" || cfg.Sections[0].Secret != "correct1" {
			t.Errorf("Sections[0] = %+v", cfg.Sections[0])
		}
		if len(cfg.Sections[0].Links) != 1 || cfg.Sections[0].Links[0].URL != "https://example.com/link1" {
			t.Errorf("Sections[0].Links = %+v", cfg.Sections[0].Links)
		}
		if len(cfg.Sections[1].Links) != 0 {
			t.Errorf("PROTECTED_LINK_2未設定なのにリンクがある: %+v", cfg.Sections[1].Links)
		}
		if got := cfg.Sections[0].Aliases; len(got) != 2 || got[0] != "私有访问1" || got[1] != "Private Access 1" {
			t.Errorf("Sections[0].Aliases = %v", got)
		}
	})

	t.Run("必須の秘密情報が無い場合は起動に失敗すること", func(t *testing.T) {
		t.Parallel()

		for _, key := range []string{"JWT_SECRET", "PASSWORD_1", "PASSWORD_2"} {
			env := validEnv()
			delete(env, key)
			if _, err := Load(mapEnv(env)); err == nil {
				t.Errorf("%s未設定でエラーが返らなかった", key)
			}
		}
	})

	t.Run("PORTとALLOWED_ORIGINSを読み込めること", func(t *testing.T) {
		t.Parallel()

		env := validEnv()
		env["PORT"] = "9090"
		env["ALLOWED_ORIGINS"] = " https://a.example.com, ,https://b.example.com "
		cfg, err := Load(mapEnv(env))
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if cfg.Port != "9090" {
			t.Errorf("Port = %q, want %q", cfg.Port, "9090")
		}
		if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://a.example.com" || cfg.AllowedOrigins[1] != "https://b.example.com" {
			t.Errorf("AllowedOrigins = %v", cfg.AllowedOrigins)
		}
	})

	t.Run("数値でないPORTは拒否されること", func(t *testing.T) {
		t.Parallel()

		env := validEnv()
		env["PORT"] = "http"
		if _, err := Load(mapEnv(env)); err == nil {
			t.Error("不正なPORTでエラーが返らなかった")
		}
	})

	t.Run("URLとして不正なリンク先は拒否されること", func(t *testing.T) {
		t.Parallel()

		env := validEnv()
		env["PROTECTED_LINK_1"] = "not a url"
		if _, err := Load(mapEnv(env)); err == nil {
			t.Error("不正なURLでエラーが返らなかった")
		}
	})

	t.Run("SECTIONS_FILEからセクションを読み込み環境変数を展開すること", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, `
sections:
  - id: family
    aliases: ["家族"]
    secret: ${FAMILY_PASSWORD}
    links:
      - title: 相册
        title_en: Album
        url: ${ALBUM_URL}/photos
        description: 家庭相册
        description_en: Family album
  - id: work
    secret: literal-secret
`)
		env := map[string]string{
			"JWT_SECRET":      "signing-key",
			"SECTIONS_FILE":   path,
			"FAMILY_PASSWORD": "f-secret",
			"ALBUM_URL":       "https://album.example.com",
		}
		cfg, err := Load(mapEnv(env))
		if err != nil {
			t.Fatalf("Load()でエラーが発生: %v", err)
		}
		if len(cfg.Sections) != 2 {
			t.Fatalf("セクション数 = %d, want 2", len(cfg.Sections))
		}
		if cfg.Sections[0].Secret != "f-secret" {
			t.Errorf("Secret = %q, want %q", cfg.Sections[0].Secret, "f-secret")
		}
		if got := cfg.Sections[0].Links[0].URL; got != "https://album.example.com/photos" {
			t.Errorf("URL = %q", got)
		}
		if cfg.Sections[1].Secret != "literal-secret" {
			t.Errorf("Secret = %q, want %q", cfg.Sections[1].Secret, "literal-secret")
		}
		links := cfg.Links()
		if len(links["family"]) != 1 || len(links["work"]) != 0 {
			t.Errorf("Links() = %+v", links)
		}
	})

	t.Run("展開先の環境変数が無いsecretは拒否されること", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "sections:\n  - id: family\n    secret: ${MISSING}\n")
		env := map[string]string{"JWT_SECRET": "k", "SECTIONS_FILE": path}
		if _, err := Load(mapEnv(env)); err == nil {
			t.Error("空のsecretでエラーが返らなかった")
		}
	})

	t.Run("存在しないSECTIONS_FILEはエラーになること", func(t *testing.T) {
		t.Parallel()

		env := map[string]string{"JWT_SECRET": "k", "SECTIONS_FILE": filepath.Join(t.TempDir(), "missing.yaml")}
		if _, err := Load(mapEnv(env)); err == nil {
			t.Error("存在しないファイルでエラーが返らなかった")
		}
	})

	t.Run("空のセクション一覧は拒否されること", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "sections: []\n")
		env := map[string]string{"JWT_SECRET": "k", "SECTIONS_FILE": path}
		if _, err := Load(mapEnv(env)); err == nil {
			t.Error("空のセクション一覧でエラーが返らなかった")
		}
	})
}

// TestValidate は設定の整合性検証を検証する。
func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("IDと別名の重複は拒否されること", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{
			Port:       "8080",
			SigningKey: "k",
			Sections: []Section{
				{ID: "a", Aliases: []string{"shared"}, Secret: "s"},
				{ID: "b", Aliases: []string{"shared"}, Secret: "s"},
			},
		}
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "shared") {
			t.Errorf("err = %v, want duplicate error mentioning %q", err, "shared")
		}
	})

	t.Run("検証エラーにフィールド名が含まれること", func(t *testing.T) {
		t.Parallel()

		cfg := &Config{Port: "8080", Sections: []Section{{ID: "a", Secret: "s"}}}
		err := cfg.Validate()
		if err == nil || !strings.Contains(err.Error(), "SigningKey") {
			t.Errorf("err = %v, want error mentioning SigningKey", err)
		}
	})
}

// TestOverlay はフラグによる上書きを検証する。
func TestOverlay(t *testing.T) {
	t.Parallel()

	getenv := Overlay(mapEnv(map[string]string{"PORT": "8080", "LINKS_DB": "env.db"}), map[string]string{
		"PORT":     "9000",
		"LINKS_DB": "",
	})
	if got := getenv("PORT"); got != "9000" {
		t.Errorf("PORT = %q, want %q", got, "9000")
	}
	if got := getenv("LINKS_DB"); got != "env.db" {
		t.Errorf("LINKS_DB = %q, want %q", got, "env.db")
	}
}
