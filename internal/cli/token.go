package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/nao1215/navgate/internal/config"
	"github.com/nao1215/navgate/pkg/token"
)

func newTokenCommand(getenv func(string) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "トークンの発行と検証",
	}
	cmd.AddCommand(newMintCommand(getenv), newDecodeCommand(getenv))
	return cmd
}

func newMintCommand(getenv func(string) string) *cobra.Command {
	var (
		section string
		ttl     time.Duration
	)
	cmd := &cobra.Command{
		Use:   "mint",
		Short: "セクションのトークンを発行する",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec, err := codecFromEnv(getenv)
			if err != nil {
				return err
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttlには正の値を指定してください: %s", ttl)
			}

			signed, err := codec.Encode(token.Claims{
				Section:   section,
				ExpiresAt: jwt.NewNumericDate(codec.Now().Add(ttl)),
			})
			if err != nil {
				return fmt.Errorf("トークンの発行に失敗: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), signed)
			return nil
		},
	}
	cmd.Flags().StringVar(&section, "section", "", "トークンに格納するセクションID")
	cmd.Flags().DurationVar(&ttl, "ttl", token.DefaultTTL, "トークンの有効期間")
	_ = cmd.MarkFlagRequired("section")
	return cmd
}

func newDecodeCommand(getenv func(string) string) *cobra.Command {
	return &cobra.Command{
		Use:   "decode TOKEN",
		Short: "トークンを検証してクレームを表示する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			codec, err := codecFromEnv(getenv)
			if err != nil {
				return err
			}

			claims, err := codec.Decode(args[0])
			if err != nil {
				return fmt.Errorf("トークンが拒否されました (reason=%s): %w", token.Reason(err), err)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(claims)
		},
	}
}

// codecFromEnv はJWT_SECRETからCodecを生成する。
func codecFromEnv(getenv func(string) string) (*token.Codec, error) {
	key := getenv(config.EnvSigningKey)
	if key == "" {
		return nil, errors.New(config.EnvSigningKey + "が設定されていません")
	}
	return token.NewCodec([]byte(key))
}
