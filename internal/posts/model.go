package posts

import (
	"io"
	"time"

	"github.com/google/uuid"
)

// BlogPost is the persisted record, one JSON object per post under the
// posts/ prefix. Field names are the on-disk format and must not change.
type BlogPost struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt"`
	BannerURL string    `json:"bannerUrl"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Published bool      `json:"published"`
}

// NewPost carries the caller-supplied fields for Create. The route layer
// validates that the strings are non-empty and a banner is present before
// the repository is invoked.
type NewPost struct {
	Title     string
	Content   string
	Excerpt   string
	Published bool
	Banner    BannerFile
}

// BannerFile is the banner image payload. ContentType is the declared media
// type, checked upstream; the repository does not inspect the bytes.
type BannerFile struct {
	FileName    string
	ContentType string
	Body        io.Reader
}

// IDGenerator mints post identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator is the production IDGenerator.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string { return uuid.NewString() }
