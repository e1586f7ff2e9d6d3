package services

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/cloudshelf/internal/common"
	"github.com/dmitrijs2005/cloudshelf/internal/logging"
	"github.com/dmitrijs2005/cloudshelf/internal/server/models"
)

// --- fakes ---

type fakeFilesRepo struct {
	createdRows []*models.File
	createErr   error

	listOut []*models.File
	listErr error

	findOut *models.File
	findErr error

	deleteKey     string
	deleteDeleted bool
	deleteErr     error

	incremented []string
	incErr      error
}

func (f *fakeFilesRepo) Create(ctx context.Context, file *models.File) (*models.File, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	file.ID = int64(len(f.createdRows) + 1)
	f.createdRows = append(f.createdRows, file)
	return file, nil
}

func (f *fakeFilesRepo) ListByOwner(ctx context.Context, userID string) ([]*models.File, error) {
	return f.listOut, f.listErr
}

func (f *fakeFilesRepo) FindByPublicID(ctx context.Context, publicID string) (*models.File, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeFilesRepo) DeleteOwned(ctx context.Context, publicID, userID string) (string, bool, error) {
	return f.deleteKey, f.deleteDeleted, f.deleteErr
}

func (f *fakeFilesRepo) IncrementViewCount(ctx context.Context, publicID string) error {
	f.incremented = append(f.incremented, publicID)
	return f.incErr
}

type fakeGateway struct {
	putKeys    []string
	putBodies  [][]byte
	putErr     error
	deleteKeys []string
	deleteErr  error
}

func (g *fakeGateway) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	if g.putErr != nil {
		return g.putErr
	}
	b, _ := io.ReadAll(body)
	g.putKeys = append(g.putKeys, key)
	g.putBodies = append(g.putBodies, b)
	return nil
}

func (g *fakeGateway) Delete(ctx context.Context, key string) error {
	g.deleteKeys = append(g.deleteKeys, key)
	return g.deleteErr
}

func (g *fakeGateway) PublicURL(key string) string {
	return "https://bucket.s3.eu-west-1.amazonaws.com/" + key
}

func newFileService(repo *fakeFilesRepo, gw *fakeGateway) *FileService {
	return NewFileService(nil, &fakeRepoManager{files: repo}, gw, logging.NewDefault())
}

// --- tests ---

func TestUpload_ObjectWriteHappensBeforeInsert(t *testing.T) {
	repo := &fakeFilesRepo{}
	gw := &fakeGateway{}
	svc := newFileService(repo, gw)

	file, err := svc.Upload(context.Background(), "u-1", "cat.png", "image/png", bytes.NewReader([]byte("0123456789")), []string{"x"})
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if len(gw.putKeys) != 1 {
		t.Fatalf("expected 1 object write, got %d", len(gw.putKeys))
	}
	if file.StorageKey != gw.putKeys[0] {
		t.Fatalf("row points at %q, object written at %q", file.StorageKey, gw.putKeys[0])
	}
	if !strings.HasPrefix(file.StorageKey, "files/") || strings.Contains(file.StorageKey, "cat.png") {
		t.Fatalf("storage key must be opaque and filename-free: %q", file.StorageKey)
	}
	if file.PublicID == "" || file.PublicID == file.StorageKey {
		t.Fatalf("public id missing or key-derived: %q", file.PublicID)
	}
	if string(gw.putBodies[0]) != "0123456789" {
		t.Fatalf("unexpected body: %q", gw.putBodies[0])
	}
}

func TestUpload_StorageFailureLeavesNoRow(t *testing.T) {
	repo := &fakeFilesRepo{}
	gw := &fakeGateway{putErr: common.ErrStorageUnavailable}
	svc := newFileService(repo, gw)

	_, err := svc.Upload(context.Background(), "u-1", "cat.png", "image/png", bytes.NewReader(nil), nil)
	if !errors.Is(err, common.ErrStorageUnavailable) {
		t.Fatalf("expected common.ErrStorageUnavailable, got %v", err)
	}
	if len(repo.createdRows) != 0 {
		t.Fatal("registry row created despite failed object write")
	}
}

// Same original filename twice must still yield distinct storage keys.
func TestUpload_SameFilenameDistinctKeys(t *testing.T) {
	repo := &fakeFilesRepo{}
	gw := &fakeGateway{}
	svc := newFileService(repo, gw)

	f1, err := svc.Upload(context.Background(), "u-1", "report.pdf", "application/pdf", bytes.NewReader([]byte("a")), nil)
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}
	f2, err := svc.Upload(context.Background(), "u-1", "report.pdf", "application/pdf", bytes.NewReader([]byte("b")), nil)
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if f1.StorageKey == f2.StorageKey {
		t.Fatalf("storage keys collide: %q", f1.StorageKey)
	}
	if f1.PublicID == f2.PublicID {
		t.Fatalf("public ids collide: %q", f1.PublicID)
	}
}

func TestDelete_OwnedRemovesObject(t *testing.T) {
	repo := &fakeFilesRepo{deleteKey: "files/k1", deleteDeleted: true}
	gw := &fakeGateway{}
	svc := newFileService(repo, gw)

	if err := svc.Delete(context.Background(), "u-1", "pub-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(gw.deleteKeys) != 1 || gw.deleteKeys[0] != "files/k1" {
		t.Fatalf("expected object delete of files/k1, got %v", gw.deleteKeys)
	}
}

// Not-owned (or absent) must be indistinguishable from success and must not
// touch storage at all.
func TestDelete_NotOwnedIsSilentNoop(t *testing.T) {
	repo := &fakeFilesRepo{deleteDeleted: false}
	gw := &fakeGateway{}
	svc := newFileService(repo, gw)

	if err := svc.Delete(context.Background(), "u-2", "pub-1"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(gw.deleteKeys) != 0 {
		t.Fatalf("storage call performed for a row the caller does not own: %v", gw.deleteKeys)
	}
}

// A failed object delete is swallowed: the row is gone, the orphan is accepted.
func TestDelete_ObjectFailureSwallowed(t *testing.T) {
	repo := &fakeFilesRepo{deleteKey: "files/k1", deleteDeleted: true}
	gw := &fakeGateway{deleteErr: common.ErrStorageUnavailable}
	svc := newFileService(repo, gw)

	if err := svc.Delete(context.Background(), "u-1", "pub-1"); err != nil {
		t.Fatalf("expected success despite object delete failure, got %v", err)
	}
}

func TestServePublic_IncrementsAndResolves(t *testing.T) {
	repo := &fakeFilesRepo{findOut: &models.File{PublicID: "pub-1", StorageKey: "files/k1"}}
	gw := &fakeGateway{}
	svc := newFileService(repo, gw)

	url, err := svc.ServePublic(context.Background(), "pub-1")
	if err != nil {
		t.Fatalf("ServePublic error: %v", err)
	}
	if url != "https://bucket.s3.eu-west-1.amazonaws.com/files/k1" {
		t.Fatalf("unexpected url: %q", url)
	}
	if len(repo.incremented) != 1 || repo.incremented[0] != "pub-1" {
		t.Fatalf("expected exactly one increment for pub-1, got %v", repo.incremented)
	}
}

func TestServePublic_NotFound(t *testing.T) {
	repo := &fakeFilesRepo{findErr: common.ErrNotFound}
	svc := newFileService(repo, &fakeGateway{})

	_, err := svc.ServePublic(context.Background(), "missing")
	if !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected common.ErrNotFound, got %v", err)
	}
	if len(repo.incremented) != 0 {
		t.Fatal("view count incremented for a missing file")
	}
}

func TestServePublic_IncrementFailureDoesNotFail(t *testing.T) {
	repo := &fakeFilesRepo{
		findOut: &models.File{PublicID: "pub-1", StorageKey: "files/k1"},
		incErr:  errors.New("row gone"),
	}
	svc := newFileService(repo, &fakeGateway{})

	if _, err := svc.ServePublic(context.Background(), "pub-1"); err != nil {
		t.Fatalf("ServePublic must not fail on a lost increment: %v", err)
	}
}
