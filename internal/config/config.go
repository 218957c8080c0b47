package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nao1215/navgate/internal/content"
)

// 環境変数名。
const (
	EnvPort           = "PORT"
	EnvSigningKey     = "JWT_SECRET"
	EnvSectionsFile   = "SECTIONS_FILE"
	EnvLinksDB        = "LINKS_DB"
	EnvAllowedOrigins = "ALLOWED_ORIGINS"
)

// defaultPort はPORT未設定時のリッスンポート。
const defaultPort = "8080"

// Config はサーバー起動時に一度だけ読み込む設定。読み込み後は変更しない。
type Config struct {
	// Port はリッスンポート。
	Port string `validate:"required,numeric"`
	// SigningKey はトークン署名用の秘密鍵。
	SigningKey string `validate:"required"`
	// AllowedOrigins はCORSで許可するオリジン。空の場合はすべてのオリジンを許可する。
	AllowedOrigins []string `validate:"dive,required"`
	// LinksDB はリンク一覧を格納したSQLiteファイルのパス。空の場合は設定の一覧を使う。
	LinksDB string
	// Sections は保護セクションの定義。
	Sections []Section `validate:"required,min=1,dive"`
}

// Section は1つの保護セクションの定義。
type Section struct {
	// ID はトークンに格納する正規のセクション識別子。
	ID string `yaml:"id" validate:"required"`
	// Aliases はログイン時にIDの代わりに受け付ける別名。
	Aliases []string `yaml:"aliases" validate:"dive,required"`
	// Secret はセクションのパスワード。
	Secret string `yaml:"secret" validate:"required"`
	// Links はセクションで公開するリンク一覧。
	Links []content.Link `yaml:"links" validate:"dive"`
}

// sectionsFile はSECTIONS_FILEのYAML構造。
type sectionsFile struct {
	Sections []Section `yaml:"sections"`
}

var validate = validator.New()

// Load はgetenvから設定を読み込み、検証する。
// 通常はos.Getenvを渡す。
func Load(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		Port:           getEnvOr(getenv, EnvPort, defaultPort),
		SigningKey:     getenv(EnvSigningKey),
		AllowedOrigins: splitList(getenv(EnvAllowedOrigins)),
		LinksDB:        getenv(EnvLinksDB),
	}

	if path := getenv(EnvSectionsFile); path != "" {
		sections, err := LoadSectionsFile(path, getenv)
		if err != nil {
			return nil, err
		}
		cfg.Sections = sections
	} else {
		cfg.Sections = builtinSections(getenv)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate は設定値を検証する。
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("設定が不正です: %w", describe(err))
	}

	names := make(map[string]string)
	for _, s := range c.Sections {
		for _, name := range append([]string{s.ID}, s.Aliases...) {
			if owner, ok := names[name]; ok {
				return fmt.Errorf("設定が不正です: セクション名 %q が %q と %q で重複しています", name, owner, s.ID)
			}
			names[name] = s.ID
		}
	}
	return nil
}

// Links はセクションIDごとのリンク一覧を返す。
func (c *Config) Links() content.Static {
	links := make(content.Static, len(c.Sections))
	for _, s := range c.Sections {
		links[s.ID] = s.Links
	}
	return links
}

// LoadSectionsFile はYAMLファイルからセクション定義を読み込む。
// secretとurlに含まれる${VAR}はgetenvで展開する。
func LoadSectionsFile(path string, getenv func(string) string) ([]Section, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("セクション定義ファイルの読み込みに失敗: %w", err)
	}

	var file sectionsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("セクション定義ファイルのパースに失敗: %w", err)
	}

	for i := range file.Sections {
		s := &file.Sections[i]
		s.Secret = os.Expand(s.Secret, getenv)
		for j := range s.Links {
			s.Links[j].URL = os.Expand(s.Links[j].URL, getenv)
		}
	}
	return file.Sections, nil
}

// Overlay はoverridesに空でない値があればそれを優先するgetenvを返す。
// コマンドラインフラグで環境変数を上書きするために使用する。
func Overlay(getenv func(string) string, overrides map[string]string) func(string) string {
	return func(key string) string {
		if v := overrides[key]; v != "" {
			return v
		}
		return getenv(key)
	}
}

// describe はvalidatorのエラーをフィールド名の一覧にまとめる。
func describe(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fmt.Sprintf("%s(%s)", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(fields, ", "))
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(getenv func(string) string, key, defaultValue string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// splitList はカンマ区切りの文字列を分割し、空要素を取り除く。
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
