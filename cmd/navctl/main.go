// navgateの運用コマンド。
// トークンの発行・検証と、リンク一覧のSQLiteへの投入を行う。
package main

import (
	"os"

	"github.com/nao1215/navgate/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
