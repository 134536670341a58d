package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"filevault/internal/config"
	"filevault/internal/domain"
	"filevault/internal/domain/services"
)

func TestUpload(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "hello.txt", "text/plain", "hello world", nil)

	if file.ID == "" {
		t.Error("expected file to get an ID")
	}
	if file.SizeBytes != int64(len("hello world")) {
		t.Errorf("expected size %d, got %d", len("hello world"), file.SizeBytes)
	}
	if file.BlobKey == "" {
		t.Fatal("expected a blob key")
	}
	if !strings.HasPrefix(file.BlobKey, testOwner+"/") {
		t.Errorf("expected blob key namespaced by owner, got %q", file.BlobKey)
	}

	// The bytes actually landed in the blob store
	rc, err := env.blobs.Download(ctx, file.BlobKey)
	if err != nil {
		t.Fatalf("download blob: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(data) != "hello world" {
		t.Errorf("blob content mismatch: %q", data)
	}
}

func TestUpload_DuplicateName(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.mustUpload(t, "taken.txt", "text/plain", "a", nil)

	_, err := env.fileSvc.Upload(ctx, &services.UploadRequest{
		OwnerID:   testOwner,
		Name:      "taken.txt",
		Content:   strings.NewReader("b"),
		SizeBytes: 1,
	})
	if !errors.Is(err, domain.ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}

	// The failed insert must not leak a blob
	if env.blobs.Len() != 1 {
		t.Errorf("expected 1 blob after rejected upload, got %d", env.blobs.Len())
	}
}

func TestUpload_InvalidParent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	missing := "11111111-1111-1111-1111-111111111111"
	_, err := env.fileSvc.Upload(ctx, &services.UploadRequest{
		OwnerID:   testOwner,
		Name:      "lost.txt",
		ParentID:  &missing,
		Content:   strings.NewReader("x"),
		SizeBytes: 1,
	})
	if !errors.Is(err, domain.ErrInvalidParent) {
		t.Fatalf("expected ErrInvalidParent, got %v", err)
	}
	if env.blobs.Len() != 0 {
		t.Errorf("expected no blobs after rejected upload, got %d", env.blobs.Len())
	}
}

func TestUpload_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *services.UploadRequest
	}{
		{
			name: "missing name",
			req: &services.UploadRequest{
				OwnerID:   testOwner,
				Content:   strings.NewReader("x"),
				SizeBytes: 1,
			},
		},
		{
			name: "missing content",
			req: &services.UploadRequest{
				OwnerID:   testOwner,
				Name:      "x.txt",
				SizeBytes: 1,
			},
		},
		{
			name: "negative size",
			req: &services.UploadRequest{
				OwnerID:   testOwner,
				Name:      "x.txt",
				Content:   strings.NewReader("x"),
				SizeBytes: -1,
			},
		},
		{
			name: "over the size cap",
			req: &services.UploadRequest{
				OwnerID:   testOwner,
				Name:      "x.txt",
				Content:   strings.NewReader("x"),
				SizeBytes: config.MaxUploadBytes + 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.fileSvc.Upload(ctx, tt.req)
			if err == nil {
				t.Fatal("expected validation error")
			}
			var valErr *domain.ValidationError
			if !errors.As(err, &valErr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestDownloadURL(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	file := env.mustUpload(t, "get-me.txt", "text/plain", "content", nil)

	info, err := env.fileSvc.DownloadURL(ctx, file.ID, testOwner)
	if err != nil {
		t.Fatalf("download url: %v", err)
	}
	if info.URL == "" {
		t.Error("expected a signed URL")
	}
	if info.FileName != "get-me.txt" {
		t.Errorf("expected file name get-me.txt, got %q", info.FileName)
	}

	// Unknown file
	missing := "11111111-1111-1111-1111-111111111111"
	if _, err := env.fileSvc.DownloadURL(ctx, missing, testOwner); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
