package content

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/nao1215/navgate/pkg/migration"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SQLiteStore はSQLiteに保存されたリンク一覧を提供する。
type SQLiteStore struct {
	// db はSQLiteデータベース接続。
	db *sql.DB
}

// OpenSQLite はSQLiteファイルを開き、マイグレーションを適用したストアを返す。
// pathに":memory:"を指定するとインメモリDBになる。
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続に失敗: %w", err)
	}
	if path == ":memory:" {
		// インメモリDBは接続ごとに別のDBになるため1接続に固定する
		db.SetMaxOpenConns(1)
	}

	if err := migration.Run(ctx, db, migrationsFS, "migrations"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("スキーマ初期化に失敗: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Links はセクションのリンク一覧を登録順に返す。
func (s *SQLiteStore) Links(ctx context.Context, section string) ([]Link, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, title_en, url, description, description_en
		FROM links
		WHERE section = ?
		ORDER BY position`, section)
	if err != nil {
		return nil, fmt.Errorf("リンク一覧の取得に失敗: %w", err)
	}
	defer func() { _ = rows.Close() }()

	links := []Link{}
	for rows.Next() {
		var l Link
		if err := rows.Scan(&l.Title, &l.TitleEn, &l.URL, &l.Description, &l.DescriptionEn); err != nil {
			return nil, fmt.Errorf("リンクの読み取りに失敗: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("リンク一覧の走査に失敗: %w", err)
	}
	return links, nil
}

// ReplaceLinks はセクションのリンク一覧をトランザクション内で丸ごと置き換える。
// navctlからの投入に使用し、サーバーのリクエスト処理からは呼ばない。
func (s *SQLiteStore) ReplaceLinks(ctx context.Context, section string, links []Link) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("トランザクション開始に失敗: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM links WHERE section = ?", section); err != nil {
		return fmt.Errorf("既存リンクの削除に失敗: %w", err)
	}
	for i, l := range links {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO links (section, position, title, title_en, url, description, description_en)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			section, i, l.Title, l.TitleEn, l.URL, l.Description, l.DescriptionEn); err != nil {
			return fmt.Errorf("リンクの登録に失敗: section=%s, position=%d: %w", section, i, err)
		}
	}
	return tx.Commit()
}
