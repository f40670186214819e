package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestDiskStoreUpload(t *testing.T) {
	root := t.TempDir()
	store, err := NewDiskStore(root, "http://localhost:3001/files/")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	url, err := store.Upload(context.Background(), "delivery-proofs", "user-1/res-1.jpg", []byte("jpeg"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if url != "http://localhost:3001/files/delivery-proofs/user-1/res-1.jpg" {
		t.Errorf("url = %q", url)
	}

	data, err := os.ReadFile(filepath.Join(root, "delivery-proofs", "user-1", "res-1.jpg"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "jpeg" {
		t.Errorf("content = %q", data)
	}
}

func TestDiskStoreRejectsEscapingPaths(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:3001/files")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	for _, path := range []string{"../outside.txt", "/etc/passwd"} {
		if _, err := store.Upload(context.Background(), "kyc-documents", path, []byte("x")); err == nil {
			t.Errorf("path %q accepted", path)
		}
	}
}

func TestDiskStoreHonorsContext(t *testing.T) {
	store, err := NewDiskStore(t.TempDir(), "http://localhost:3001/files")
	if err != nil {
		t.Fatalf("NewDiskStore: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := store.Upload(ctx, "b", "p.txt", []byte("x")); err == nil {
		t.Fatal("cancelled upload accepted")
	}
}
