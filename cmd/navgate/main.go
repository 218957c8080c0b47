// navgateサービスのエントリポイント。
// 保護セクションへのログイン、トークン検証、リンク一覧の配信を担当する。
// サーバーは状態を持たず、すべての判定は署名付きトークンのみで行う。
package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/nao1215/navgate/internal/access"
	"github.com/nao1215/navgate/internal/config"
	"github.com/nao1215/navgate/internal/content"
	"github.com/nao1215/navgate/internal/gateway"
	"github.com/nao1215/navgate/pkg/token"
)

func main() {
	flags := pflag.NewFlagSet("navgate", pflag.ContinueOnError)
	port := flags.String("port", "", "リッスンポート（$"+config.EnvPort+"）")
	sections := flags.String("sections", "", "セクション定義ファイル（$"+config.EnvSectionsFile+"）")
	linksDB := flags.String("links-db", "", "リンク一覧のSQLiteファイル（$"+config.EnvLinksDB+"）")
	origins := flags.String("allowed-origins", "", "CORSで許可するオリジン、カンマ区切り（$"+config.EnvAllowedOrigins+"）")
	if err := flags.Parse(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		log.Fatalf("引数の解析に失敗: %v", err)
	}

	cfg, err := config.Load(config.Overlay(os.Getenv, map[string]string{
		config.EnvPort:           *port,
		config.EnvSectionsFile:   *sections,
		config.EnvLinksDB:        *linksDB,
		config.EnvAllowedOrigins: *origins,
	}))
	if err != nil {
		log.Fatalf("[Config] 設定の読み込みに失敗: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	codec, err := token.NewCodec([]byte(cfg.SigningKey))
	if err != nil {
		log.Fatalf("署名鍵の初期化に失敗: %v", err)
	}

	var source content.Source = cfg.Links()
	if cfg.LinksDB != "" {
		store, err := content.OpenSQLite(ctx, cfg.LinksDB)
		if err != nil {
			log.Fatalf("リンクDBの初期化に失敗: %v", err)
		}
		defer func() { _ = store.Close() }()
		source = store
	}

	credentials := make([]access.Credential, 0, len(cfg.Sections))
	for _, s := range cfg.Sections {
		credentials = append(credentials, access.Credential{
			Section: s.ID,
			Aliases: s.Aliases,
			Secret:  s.Secret,
		})
	}

	server := gateway.NewServer(cfg.Port, access.New(codec, credentials, source), cfg.AllowedOrigins)

	log.Printf("navgateサービスを起動します: :%s (セクション数=%d)", cfg.Port, len(cfg.Sections))
	if err := server.Run(ctx); err != nil {
		log.Printf("navgateサービスの起動に失敗: %v", err)
		stop()
		os.Exit(1)
	}
	log.Printf("navgateサービスを停止しました")
}
