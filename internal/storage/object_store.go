package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// DefaultFolder receives images of items whose category has no slug.
const DefaultFolder = "outros"

// ObjectStore abstracts the image bucket so services and tests do not depend
// on a live S3 endpoint.
type ObjectStore interface {
	Upload(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

// ImageKey builds the storage key for an uploaded item image:
// <categorySlug>/<unix-millis>_<filename>. The timestamp qualifier avoids
// collisions between uploads of equally named files.
func ImageKey(categorySlug, fileName string, now time.Time) string {
	folder := categorySlug
	if folder == "" {
		folder = DefaultFolder
	}
	return fmt.Sprintf("%s/%d_%s", folder, now.UnixMilli(), sanitizeFileName(fileName))
}

// PublicObjectURL derives the public URL for a stored object:
// <baseURL>/storage/v1/object/public/<bucket>/<key>.
func PublicObjectURL(baseURL, bucket, key string) string {
	if key == "" {
		return ""
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", strings.TrimRight(baseURL, "/"), bucket, key)
}

func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "/", "_")
	return strings.ReplaceAll(name, "\\", "_")
}
