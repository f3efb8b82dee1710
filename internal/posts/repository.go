package posts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/inkpost/inkpost/internal/assets"
	"github.com/inkpost/inkpost/internal/clock"
	"github.com/inkpost/inkpost/internal/events"
	"github.com/inkpost/inkpost/internal/storage"
)

const postsPrefix = "posts/"

// Repository persists posts as one JSON object each under the posts/ prefix
// of an object store. The store is the sole source of truth: listings are
// reconstructed from the namespace on every call, and a post that fails to
// fetch or parse is skipped rather than failing the whole listing.
type Repository struct {
	store   storage.Storage
	banners *assets.Uploader
	pub     events.Publisher
	idgen   IDGenerator
	clock   clock.Clock
	logger  *slog.Logger
}

func NewRepository(store storage.Storage, banners *assets.Uploader, pub events.Publisher, idgen IDGenerator, clk clock.Clock, logger *slog.Logger) *Repository {
	if pub == nil {
		pub = events.NoopPublisher{}
	}
	if idgen == nil {
		idgen = UUIDGenerator{}
	}
	if clk == nil {
		clk = clock.System{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		store:   store,
		banners: banners,
		pub:     pub,
		idgen:   idgen,
		clock:   clk,
		logger:  logger,
	}
}

// Create uploads the banner, then writes the post record. A banner upload
// failure aborts before any record exists; a record-write failure after a
// successful upload leaves the banner orphaned, which is accepted.
func (r *Repository) Create(ctx context.Context, np NewPost) (*BlogPost, error) {
	bannerURL, err := r.banners.Upload(ctx, assets.NamespaceBanners, np.Banner.FileName, np.Banner.Body, np.Banner.ContentType)
	if err != nil {
		return nil, fmt.Errorf("upload banner: %w", err)
	}

	now := r.clock.Now().UTC()
	post := &BlogPost{
		ID:        r.idgen.NewID(),
		Title:     np.Title,
		Slug:      Slugify(np.Title),
		Content:   np.Content,
		Excerpt:   np.Excerpt,
		BannerURL: bannerURL,
		CreatedAt: now,
		UpdatedAt: now,
		Published: np.Published,
	}

	body, err := json.Marshal(post)
	if err != nil {
		return nil, fmt.Errorf("marshal post: %w", err)
	}
	if _, err := r.store.Upload(ctx, postKey(post.ID), bytes.NewReader(body), "application/json"); err != nil {
		return nil, fmt.Errorf("write post record: %w", err)
	}

	if post.Published {
		e := events.NewPostPublished(post.ID, post.Slug, post.Title)
		if err := r.pub.PublishPostPublished(ctx, e); err != nil {
			r.logger.Error("publish post.published event failed", "post_id", post.ID, "error", err)
		}
	}

	return post, nil
}

// ListPublished returns every published post, newest first. Per-object
// fetch or decode failures are logged and skipped. A failed prefix listing
// degrades to an empty result instead of an error, keeping the reading
// list available at the cost of completeness.
func (r *Repository) ListPublished(ctx context.Context) ([]*BlogPost, error) {
	objects, err := r.store.List(ctx, postsPrefix)
	if err != nil {
		r.logger.Error("listing posts prefix failed", "error", err)
		return []*BlogPost{}, nil
	}

	published := make([]*BlogPost, 0, len(objects))
	for _, obj := range objects {
		post, err := r.fetch(ctx, obj.Key)
		if err != nil {
			r.logger.Warn("skipping unreadable post object", "key", obj.Key, "error", err)
			continue
		}
		if post.Published {
			published = append(published, post)
		}
	}

	// Stable so equal timestamps keep enumeration order across calls.
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].CreatedAt.After(published[j].CreatedAt)
	})
	return published, nil
}

// GetBySlug returns the first published post whose slug matches, in listing
// order. Slugs are not unique; on collision the earlier-listed post wins.
// A miss is ErrNotFound.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*BlogPost, error) {
	published, err := r.ListPublished(ctx)
	if err != nil {
		return nil, err
	}
	for _, post := range published {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the post record by id. The banner asset is left in place;
// the post holds only a URL reference to it, not ownership.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, postKey(id)); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete post %s: %w", id, err)
	}
	return nil
}

func (r *Repository) fetch(ctx context.Context, key string) (*BlogPost, error) {
	body, err := r.store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	var post BlogPost
	if err := json.Unmarshal(data, &post); err != nil {
		return nil, fmt.Errorf("decode post record: %w", err)
	}
	return &post, nil
}

func postKey(id string) string {
	return postsPrefix + id + ".json"
}
