package assets

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/inkpost/inkpost/internal/clock"
	"github.com/inkpost/inkpost/internal/storage"
)

type failingStorage struct {
	storage.Storage
	err error
}

func (f *failingStorage) Upload(context.Context, string, io.Reader, string) (string, error) {
	return "", f.err
}

func TestUploader_Upload(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	mem := storage.NewMemory()
	up := NewUploader(mem, clock.Fixed{T: at})

	url, err := up.Upload(ctx, NamespaceBanners, "hero.png", bytes.NewReader([]byte("img")), "image/png")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}

	wantKey := fmt.Sprintf("banners/%d-hero.png", at.UnixMilli())
	if !strings.HasSuffix(url, "/"+wantKey) {
		t.Errorf("url = %q, want suffix %q", url, wantKey)
	}
	body, err := mem.Download(ctx, wantKey)
	if err != nil {
		t.Fatalf("object not stored under %q: %v", wantKey, err)
	}
	defer body.Close()
	data, _ := io.ReadAll(body)
	if string(data) != "img" {
		t.Errorf("stored bytes = %q", data)
	}
}

func TestUploader_SameTickSameNameCollides(t *testing.T) {
	// Two same-named uploads in one millisecond share a key; the second
	// overwrites the first. Accepted behavior.
	ctx := context.Background()
	mem := storage.NewMemory()
	up := NewUploader(mem, clock.Fixed{T: time.Unix(0, 0)})

	a, _ := up.Upload(ctx, NamespaceEditorImages, "pic.jpg", strings.NewReader("one"), "image/jpeg")
	b, _ := up.Upload(ctx, NamespaceEditorImages, "pic.jpg", strings.NewReader("two"), "image/jpeg")
	if a != b {
		t.Errorf("expected identical keys within one tick: %q vs %q", a, b)
	}
}

func TestUploader_StorageErrorPropagates(t *testing.T) {
	ctx := context.Background()
	wantErr := errors.New("bucket gone")
	up := NewUploader(&failingStorage{err: wantErr}, nil)

	_, err := up.Upload(ctx, NamespaceBanners, "x.png", strings.NewReader("x"), "image/png")
	if !errors.Is(err, wantErr) {
		t.Errorf("got err %v, want %v", err, wantErr)
	}
}
