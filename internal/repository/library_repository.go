package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/chemistry-web/internal/model"
)

var ErrNoLibraryDocument = errors.New("no library document published")

// LibrarySource yields the library catalog document.
type LibrarySource interface {
	Load(ctx context.Context) (*model.LibraryDocument, error)
	Name() string
}

// DecodeLibrary parses a catalog document.
func DecodeLibrary(raw []byte) (*model.LibraryDocument, error) {
	var doc model.LibraryDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode library: %w", err)
	}
	if doc.Categories == nil {
		return nil, fmt.Errorf("decode library: missing categories")
	}
	return &doc, nil
}

// ─── File ───────────────────────────────────────────────────────────

// FileLibraryRepository reads the catalog from a JSON file on disk.
type FileLibraryRepository struct {
	path string
}

func NewFileLibraryRepository(path string) *FileLibraryRepository {
	return &FileLibraryRepository{path: path}
}

func (r *FileLibraryRepository) Name() string { return "file:" + r.path }

func (r *FileLibraryRepository) Load(ctx context.Context) (*model.LibraryDocument, error) {
	raw, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("read library file: %w", err)
	}
	return DecodeLibrary(raw)
}

// ─── PostgreSQL ─────────────────────────────────────────────────────

// PostgresLibraryRepository keeps published catalog documents as JSONB
// rows; the newest row is the live catalog.
type PostgresLibraryRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresLibraryRepository(pool *pgxpool.Pool) *PostgresLibraryRepository {
	return &PostgresLibraryRepository{pool: pool}
}

func (r *PostgresLibraryRepository) Name() string { return "postgres:library_documents" }

func (r *PostgresLibraryRepository) Load(ctx context.Context) (*model.LibraryDocument, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT document FROM library_documents ORDER BY published_at DESC, id DESC LIMIT 1`,
	).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoLibraryDocument
		}
		return nil, fmt.Errorf("query library document: %w", err)
	}
	return DecodeLibrary(raw)
}

// Publish stores a new catalog version and returns its id.
func (r *PostgresLibraryRepository) Publish(ctx context.Context, doc *model.LibraryDocument, source string) (int64, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal library: %w", err)
	}

	var id int64
	err = r.pool.QueryRow(ctx,
		`INSERT INTO library_documents (source, document, item_count, published_at)
		 VALUES ($1, $2, $3, NOW())
		 RETURNING id`,
		source, raw, CountItems(doc),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert library document: %w", err)
	}
	return id, nil
}

// Prune deletes every version except the newest keep rows.
func (r *PostgresLibraryRepository) Prune(ctx context.Context, keep int) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM library_documents
		 WHERE id NOT IN (SELECT id FROM library_documents ORDER BY published_at DESC, id DESC LIMIT $1)`,
		keep,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// CountItems totals the items across all categories.
func CountItems(doc *model.LibraryDocument) int {
	n := 0
	for _, c := range doc.Categories {
		n += len(c.Items)
	}
	return n
}
