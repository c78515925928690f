package corpus

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func TestSetupSchemaIsIdempotent(t *testing.T) {
	db, _ := setupTestStore(t)
	if err := SetupSchema(db); err != nil {
		t.Errorf("second SetupSchema() error = %v", err)
	}
}

func TestAddAndGetDocuments(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.AddDocument(ctx, "fish", "a.txt", "one fish two fish")
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	if _, err = uuid.Parse(first.ID); err != nil {
		t.Errorf("document ID %q is not a UUID: %v", first.ID, err)
	}
	second, err := s.AddDocument(ctx, "  fish ", "b.txt", "red fish blue fish")
	if err != nil {
		t.Fatalf("AddDocument() error = %v", err)
	}
	if second.Corpus != "fish" {
		t.Errorf("corpus name should be trimmed, got %q", second.Corpus)
	}
	_, _ = s.AddDocument(ctx, "other", "", "unrelated")

	docs, err := s.Documents(ctx, "fish")
	if err != nil {
		t.Fatalf("Documents() error = %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}
	if docs[0].ID != first.ID || docs[1].ID != second.ID {
		t.Errorf("documents not returned in insertion order: %v, %v", docs[0].ID, docs[1].ID)
	}
	if docs[0].Content != "one fish two fish" || docs[0].Source != "a.txt" {
		t.Errorf("unexpected first document: %+v", docs[0])
	}
	if docs[0].AddedAt.IsZero() {
		t.Error("expected AddedAt to be set")
	}
}

func TestAddDocumentEmptyName(t *testing.T) {
	_, s := setupTestStore(t)
	for _, name := range []string{"", "   "} {
		if _, err := s.AddDocument(context.Background(), name, "", "text"); !errors.Is(err, ErrEmptyName) {
			t.Errorf("AddDocument(%q) error = %v, want ErrEmptyName", name, err)
		}
	}
}

func TestAddFile(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "corpus.txt")
	if err := os.WriteFile(path, []byte("abcabcabc"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := s.AddFile(ctx, "abc", path)
	if err != nil {
		t.Fatalf("AddFile() error = %v", err)
	}
	if doc.Source != path || doc.Content != "abcabcabc" {
		t.Errorf("unexpected document: %+v", doc)
	}

	if _, err = s.AddFile(ctx, "abc", filepath.Join(t.TempDir(), "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("AddFile() on a missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestDocumentsNotFound(t *testing.T) {
	_, s := setupTestStore(t)
	if _, err := s.Documents(context.Background(), "nope"); !errors.Is(err, ErrCorpusNotFound) {
		t.Errorf("Documents() error = %v, want ErrCorpusNotFound", err)
	}
}

func TestCorpora(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	infos, err := s.Corpora(ctx)
	if err != nil {
		t.Fatalf("Corpora() error = %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("expected no corpora, got %v", infos)
	}

	_, _ = s.AddDocument(ctx, "zeta", "", "zz")
	_, _ = s.AddDocument(ctx, "alpha", "", "héllo")
	_, _ = s.AddDocument(ctx, "alpha", "", "abc")

	infos, err = s.Corpora(ctx)
	if err != nil {
		t.Fatalf("Corpora() error = %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 corpora, got %d", len(infos))
	}
	if infos[0].Name != "alpha" || infos[1].Name != "zeta" {
		t.Errorf("corpora not sorted by name: %q, %q", infos[0].Name, infos[1].Name)
	}
	if infos[0].Documents != 2 {
		t.Errorf("alpha documents = %d, want 2", infos[0].Documents)
	}
	if infos[0].Bytes != int64(len("héllo")+len("abc")) {
		t.Errorf("alpha bytes = %d, want %d", infos[0].Bytes, len("héllo")+len("abc"))
	}
	if infos[0].LastAdded.IsZero() {
		t.Error("expected LastAdded to be set")
	}
}

func TestRemoveCorpus(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	_, _ = s.AddDocument(ctx, "to_delete", "", "delete this data")
	_, _ = s.AddDocument(ctx, "to_delete", "", "and this")
	_, _ = s.AddDocument(ctx, "to_keep", "", "keep this data")

	removed, err := s.RemoveCorpus(ctx, "to_delete")
	if err != nil {
		t.Fatalf("RemoveCorpus() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("RemoveCorpus() removed %d documents, want 2", removed)
	}
	if _, err = s.Documents(ctx, "to_delete"); !errors.Is(err, ErrCorpusNotFound) {
		t.Errorf("expected deleted corpus to be gone, got %v", err)
	}
	if docs, err := s.Documents(ctx, "to_keep"); err != nil || len(docs) != 1 {
		t.Errorf("expected kept corpus to survive, got %d documents, err %v", len(docs), err)
	}

	if _, err = s.RemoveCorpus(ctx, "to_delete"); !errors.Is(err, ErrCorpusNotFound) {
		t.Errorf("second RemoveCorpus() error = %v, want ErrCorpusNotFound", err)
	}
	if _, err = s.RemoveCorpus(ctx, "never_added"); !errors.Is(err, ErrCorpusNotFound) {
		t.Errorf("RemoveCorpus() on unknown corpus error = %v, want ErrCorpusNotFound", err)
	}
}

func TestRemoveDocument(t *testing.T) {
	_, s := setupTestStore(t)
	ctx := context.Background()

	doc, _ := s.AddDocument(ctx, "c", "", "one")
	_, _ = s.AddDocument(ctx, "c", "", "two")

	if err := s.RemoveDocument(ctx, doc.ID); err != nil {
		t.Fatalf("RemoveDocument() error = %v", err)
	}
	docs, _ := s.Documents(ctx, "c")
	if len(docs) != 1 || docs[0].Content != "two" {
		t.Errorf("unexpected documents after removal: %+v", docs)
	}

	if err := s.RemoveDocument(ctx, doc.ID); !errors.Is(err, ErrDocumentNotFound) {
		t.Errorf("second RemoveDocument() error = %v, want ErrDocumentNotFound", err)
	}
}
