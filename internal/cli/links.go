package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/nao1215/navgate/internal/config"
	"github.com/nao1215/navgate/internal/content"
)

var validate = validator.New()

func newLinksCommand(getenv func(string) string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "links",
		Short: "リンク一覧の管理",
	}
	cmd.AddCommand(newImportCommand(getenv))
	return cmd
}

func newImportCommand(getenv func(string) string) *cobra.Command {
	var dbPath, sectionsPath string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "セクション定義ファイルのリンク一覧をSQLiteに投入する",
		Long:  "セクション定義ファイルに含まれる各セクションのリンク一覧で、SQLiteの一覧をセクション単位に置き換える。",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sections, err := config.LoadSectionsFile(sectionsPath, getenv)
			if err != nil {
				return err
			}
			if len(sections) == 0 {
				return errors.New("セクション定義ファイルにセクションがありません")
			}
			for _, s := range sections {
				if s.ID == "" {
					return errors.New("idが空のセクションがあります")
				}
				for i, l := range s.Links {
					if err := validate.Struct(l); err != nil {
						return fmt.Errorf("セクション %s の%d番目のリンクが不正です: %w", s.ID, i+1, err)
					}
				}
			}

			return importLinks(cmd.Context(), cmd, dbPath, sections)
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLiteファイルのパス")
	cmd.Flags().StringVar(&sectionsPath, "sections", "", "セクション定義ファイル（YAML）のパス")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("sections")
	return cmd
}

func importLinks(ctx context.Context, cmd *cobra.Command, dbPath string, sections []config.Section) error {
	if ctx == nil {
		ctx = context.Background()
	}
	store, err := content.OpenSQLite(ctx, dbPath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	for _, s := range sections {
		if err := store.ReplaceLinks(ctx, s.ID, s.Links); err != nil {
			return fmt.Errorf("セクション %s の投入に失敗: %w", s.ID, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d件のリンクを投入しました\n", s.ID, len(s.Links))
	}
	return nil
}
