package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCommand はnavctlのルートコマンドを生成する。
// 環境変数はgetenv経由で参照する。
func NewRootCommand(getenv func(string) string) *cobra.Command {
	root := &cobra.Command{
		Use:           "navctl",
		Short:         "navgateの運用コマンド",
		Long:          "navgateのトークンを発行・検証し、保護セクションのリンク一覧をSQLiteに投入する。",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newTokenCommand(getenv), newLinksCommand(getenv))
	return root
}

// Execute はos.Argsでnavctlを実行する。
func Execute() error {
	if err := NewRootCommand(os.Getenv).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}
