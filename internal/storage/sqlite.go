// Package storage provides data persistence functionality for the crawler.
// It implements SQLite-based storage for crawl documents and their pages.
package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"sitesage/internal/crawler"
	// SQLite database driver (CGO-free)
	_ "modernc.org/sqlite"
)

// PageSeparator joins consecutive page blocks inside one stored
// document.
const PageSeparator = "\n\n---\n\n"

// SQLiteStorage implements the crawler.Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection prevents lock conflicts
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(30 * time.Minute)

	storage := &SQLiteStorage{db: db}

	if err := storage.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return storage, nil
}

// initSchema creates the database schema
func (s *SQLiteStorage) initSchema() error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 30000", // 30 second timeout for locks
	}

	for _, pragma := range pragmas {
		if _, err := s.db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute pragma %s: %w", pragma, err)
		}
	}

	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// SaveCrawl stores one crawl's pages keyed by its start URL, replacing
// any earlier crawl of the same start URL. The document row holds the
// pages concatenated as "title\ncontent" blocks joined by
// PageSeparator, in the order the crawl produced them.
func (s *SQLiteStorage) SaveCrawl(startURL string, pages []crawler.PageRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()

	if _, err := tx.Exec(`DELETE FROM pages WHERE start_url = ?`, startURL); err != nil {
		return fmt.Errorf("failed to clear previous pages: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO pages (start_url, position, url, title, content, crawled_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	blocks := make([]string, 0, len(pages))
	for i, page := range pages {
		if _, err := stmt.Exec(startURL, i, page.URL, page.Title, page.Content, now); err != nil {
			return fmt.Errorf("failed to insert page %s: %w", page.URL, err)
		}
		blocks = append(blocks, page.Title+"\n"+page.Content)
	}

	_, err = tx.Exec(`
		INSERT OR REPLACE INTO documents (start_url, content, page_count, crawled_at)
		VALUES (?, ?, ?, ?)
	`, startURL, strings.Join(blocks, PageSeparator), len(pages), now)
	if err != nil {
		return fmt.Errorf("failed to save document: %w", err)
	}

	return tx.Commit()
}

// GetDocument returns the stored concatenated content for a start URL.
// The second return value is false when no crawl has been stored.
func (s *SQLiteStorage) GetDocument(startURL string) (string, bool, error) {
	var content string
	err := s.db.QueryRow(`
		SELECT content FROM documents WHERE start_url = ?
	`, startURL).Scan(&content)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get document: %w", err)
	}

	return content, true, nil
}

// GetPages returns the stored page records of a start URL's latest
// crawl, in crawl order.
func (s *SQLiteStorage) GetPages(startURL string) ([]crawler.PageRecord, error) {
	rows, err := s.db.Query(`
		SELECT url, title, content FROM pages
		WHERE start_url = ?
		ORDER BY position ASC
	`, startURL)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pages []crawler.PageRecord
	for rows.Next() {
		var page crawler.PageRecord
		if err := rows.Scan(&page.URL, &page.Title, &page.Content); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		pages = append(pages, page)
	}

	return pages, rows.Err()
}
