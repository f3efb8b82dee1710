// Package assets pushes opaque binary payloads (post banners, inline editor
// images) to object storage and hands back their public URLs.
package assets

import (
	"context"
	"fmt"
	"io"

	"github.com/inkpost/inkpost/internal/clock"
	"github.com/inkpost/inkpost/internal/storage"
)

const (
	// NamespaceBanners holds post hero images.
	NamespaceBanners = "banners"
	// NamespaceEditorImages holds images pasted into the rich-text editor.
	NamespaceEditorImages = "editor-images"
)

type Uploader struct {
	store storage.Storage
	clock clock.Clock
}

func NewUploader(store storage.Storage, clk clock.Clock) *Uploader {
	if clk == nil {
		clk = clock.System{}
	}
	return &Uploader{store: store, clock: clk}
}

// Upload writes one object under {namespace}/{millis}-{fileName} and returns
// its public URL. The millisecond timestamp keeps keys unique per call; two
// same-named uploads inside one tick would collide, which is accepted. The
// payload is not validated here — callers gate on the declared media type.
// Storage errors propagate unchanged; there is no retry.
func (u *Uploader) Upload(ctx context.Context, namespace, fileName string, body io.Reader, contentType string) (string, error) {
	key := fmt.Sprintf("%s/%d-%s", namespace, u.clock.Now().UnixMilli(), fileName)
	return u.store.Upload(ctx, key, body, contentType)
}
