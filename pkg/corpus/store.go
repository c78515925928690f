package corpus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrEmptyName is returned when a corpus name is empty or only whitespace.
	ErrEmptyName = errors.New("corpus name is empty")
	// ErrCorpusNotFound is returned when a corpus has no documents.
	ErrCorpusNotFound = errors.New("corpus not found")
	// ErrDocumentNotFound is returned when no document has the given ID.
	ErrDocumentNotFound = errors.New("document not found")
)

// Document is a single stored piece of training text.
type Document struct {
	ID      string
	Corpus  string
	Source  string
	Content string
	AddedAt time.Time
}

// Info holds summary information about one corpus.
type Info struct {
	Name      string
	Documents int
	Bytes     int64
	LastAdded time.Time
}

// SetupSchema initializes the tables used by the Store. It is idempotent and
// safe to call on an already-initialized database.
func SetupSchema(db *sql.DB) error {

	const (
		schemaDocuments = `
CREATE TABLE IF NOT EXISTS corpus_documents (
    doc_id TEXT PRIMARY KEY,
    corpus_name TEXT NOT NULL,
    source TEXT NOT NULL DEFAULT '',
    content TEXT NOT NULL,
    added_at INTEGER NOT NULL
);
`
		indexCorpusName = `CREATE INDEX IF NOT EXISTS idx_corpus_documents_name ON corpus_documents (corpus_name);`
	)

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer func(tx *sql.Tx) {
		_ = tx.Rollback()
	}(tx)

	if _, err = tx.Exec(schemaDocuments); err != nil {
		return fmt.Errorf("could not create schema: %w", err)
	}

	if _, err = tx.Exec(indexCorpusName); err != nil {
		return fmt.Errorf("could not create corpus index: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}

	return nil
}

// Store is a library of named corpora backed by a SQLite database. It holds
// prepared statements for every query it runs.
type Store struct {
	db                 *sql.DB
	stmtInsertDocument *sql.Stmt
	stmtGetDocuments   *sql.Stmt
	stmtGetCorpora     *sql.Stmt
	stmtRemoveCorpus   *sql.Stmt
	stmtRemoveDocument *sql.Stmt
	logger             *slog.Logger
}

// NewStore creates a Store on a database that SetupSchema has already been
// run against.
func NewStore(db *sql.DB) (*Store, error) {
	stmtInsertDocument, err := db.Prepare(`INSERT INTO corpus_documents (doc_id, corpus_name, source, content, added_at) VALUES (?, ?, ?, ?, ?);`)
	if err != nil {
		return nil, err
	}

	stmtGetDocuments, err := db.Prepare(`SELECT doc_id, source, content, added_at FROM corpus_documents WHERE corpus_name = ? ORDER BY rowid;`)
	if err != nil {
		return nil, err
	}

	stmtGetCorpora, err := db.Prepare(`SELECT corpus_name, COUNT(*), coalesce(SUM(LENGTH(CAST(content AS BLOB))), 0), MAX(added_at) FROM corpus_documents GROUP BY corpus_name ORDER BY corpus_name;`)
	if err != nil {
		return nil, err
	}

	stmtRemoveCorpus, err := db.Prepare(`DELETE FROM corpus_documents WHERE corpus_name = ?;`)
	if err != nil {
		return nil, err
	}

	stmtRemoveDocument, err := db.Prepare(`DELETE FROM corpus_documents WHERE doc_id = ?;`)
	if err != nil {
		return nil, err
	}

	return &Store{
		db:                 db,
		stmtInsertDocument: stmtInsertDocument,
		stmtGetDocuments:   stmtGetDocuments,
		stmtGetCorpora:     stmtGetCorpora,
		stmtRemoveCorpus:   stmtRemoveCorpus,
		stmtRemoveDocument: stmtRemoveDocument,
		logger:             slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, nil
}

// Close releases all prepared statements held by the Store. The database
// itself is left open.
func (s *Store) Close() {
	_ = s.stmtInsertDocument.Close()
	_ = s.stmtGetDocuments.Close()
	_ = s.stmtGetCorpora.Close()
	_ = s.stmtRemoveCorpus.Close()
	_ = s.stmtRemoveDocument.Close()
}

// SetLogger sets the logger for the Store. By default, all logs are discarded.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// AddDocument stores content as a new document of the named corpus, creating
// the corpus if needed. source is free-form provenance, usually a file path.
func (s *Store) AddDocument(ctx context.Context, name, source, content string) (Document, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Document{}, ErrEmptyName
	}

	doc := Document{
		ID:      uuid.NewString(),
		Corpus:  name,
		Source:  source,
		Content: content,
		AddedAt: time.Now().UTC(),
	}
	if _, err := s.stmtInsertDocument.ExecContext(ctx, doc.ID, doc.Corpus, doc.Source, doc.Content, doc.AddedAt.UnixNano()); err != nil {
		return Document{}, fmt.Errorf("could not insert document into corpus '%s': %w", name, err)
	}

	s.logger.InfoContext(ctx, "Document added",
		slog.String("corpus_name", name),
		slog.String("doc_id", doc.ID),
		slog.String("source", source),
		slog.Int("bytes", len(content)),
	)
	return doc, nil
}

// AddFile reads the file at path and stores it as a new document of the named
// corpus.
func (s *Store) AddFile(ctx context.Context, name, path string) (Document, error) {
	content, err := LoadFile(path)
	if err != nil {
		return Document{}, err
	}
	return s.AddDocument(ctx, name, path, content)
}

// Documents returns every document of the named corpus in the order they
// were added. ErrCorpusNotFound is returned if the corpus has no documents.
func (s *Store) Documents(ctx context.Context, name string) ([]Document, error) {
	rows, err := s.stmtGetDocuments.QueryContext(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("could not query documents for corpus '%s': %w", name, err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	var docs []Document
	for rows.Next() {
		var doc Document
		var addedAt int64
		if err = rows.Scan(&doc.ID, &doc.Source, &doc.Content, &addedAt); err != nil {
			return nil, err
		}
		doc.Corpus = name
		doc.AddedAt = time.Unix(0, addedAt).UTC()
		docs = append(docs, doc)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: '%s'", ErrCorpusNotFound, name)
	}
	return docs, nil
}

// Corpora returns summary information for every stored corpus, sorted by name.
func (s *Store) Corpora(ctx context.Context) ([]Info, error) {
	rows, err := s.stmtGetCorpora.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	infos := make([]Info, 0)
	for rows.Next() {
		var info Info
		var lastAdded int64
		if err = rows.Scan(&info.Name, &info.Documents, &info.Bytes, &lastAdded); err != nil {
			return nil, err
		}
		info.LastAdded = time.Unix(0, lastAdded).UTC()
		infos = append(infos, info)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return infos, nil
}

// RemoveCorpus deletes every document of the named corpus and returns how
// many were removed. An unknown name returns ErrCorpusNotFound.
func (s *Store) RemoveCorpus(ctx context.Context, name string) (int64, error) {
	res, err := s.stmtRemoveCorpus.ExecContext(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("could not remove corpus '%s': %w", name, err)
	}
	removed, _ := res.RowsAffected()
	if removed == 0 {
		return 0, fmt.Errorf("%w: %s", ErrCorpusNotFound, name)
	}

	s.logger.InfoContext(ctx, "Corpus removed",
		slog.String("corpus_name", name),
		slog.Int64("documents_removed", removed),
	)
	return removed, nil
}

// RemoveDocument deletes a single document by ID.
func (s *Store) RemoveDocument(ctx context.Context, id string) error {
	res, err := s.stmtRemoveDocument.ExecContext(ctx, id)
	if err != nil {
		return fmt.Errorf("could not remove document %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, id)
	}

	s.logger.InfoContext(ctx, "Document removed", slog.String("doc_id", id))
	return nil
}
