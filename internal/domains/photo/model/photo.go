package model

import (
	"path"
	"regexp"
	"strings"
	"time"
)

// Photo lifecycle states. Deletion is terminal and leaves no record,
// StatusDeleted only ever appears in responses.
const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusArchived  = "archived"
	StatusDeleted   = "deleted"
)

// Object key prefixes. The prefix of a photo's object key always
// matches its status: uploads/ for pending, originals/ for published,
// archive/ for archived.
const (
	PrefixUploads    = "uploads/"
	PrefixOriginals  = "originals/"
	PrefixArchive    = "archive/"
	PrefixThumbnails = "thumbnails/"
	PrefixDisplay    = "display/"
)

// MaxUploadSize is the largest file a client may declare for upload.
const MaxUploadSize = 10 * 1024 * 1024

// ExtensionByMIME maps the accepted upload content types to the file
// extension used in object keys.
var ExtensionByMIME = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// IsAllowedStatus reports whether status is one a stored photo can
// carry. StatusDeleted is response-only and deliberately excluded.
func IsAllowedStatus(status string) bool {
	switch status {
	case StatusPending, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

var uuidV4Pattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

// IsValidPhotoID reports whether id is a well-formed UUID v4.
func IsValidPhotoID(id string) bool {
	return uuidV4Pattern.MatchString(id)
}

// Photo is a portfolio photo record.
type Photo struct {
	ID          string     `json:"photoId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Alt         string     `json:"alt"`
	Copyright   string     `json:"copyright"`
	Gallery     string     `json:"gallery"`
	UploadedBy  string     `json:"uploadedBy,omitempty"`
	ObjectKey   string     `json:"originalKey"`
	FileSize    int64      `json:"fileSize"`
	MimeType    string     `json:"mimeType"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	ArchivedAt  *time.Time `json:"archivedAt,omitempty"`
}

func UploadKey(id, ext string) string {
	return PrefixUploads + id + "." + ext
}

func OriginalKey(id, ext string) string {
	return PrefixOriginals + id + "." + ext
}

func ArchiveKey(id, ext string) string {
	return PrefixArchive + id + "." + ext
}

// KeyFilename returns the filename portion of an object key.
func KeyFilename(key string) string {
	return path.Base(key)
}

// KeyExtension returns the lowercase extension of an object key
// without the leading dot, or "" when there is none.
func KeyExtension(key string) string {
	ext := path.Ext(key)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// derivedExtension is the extension resized variants carry. PNG stays
// PNG, every other source format is re-encoded as JPEG.
func derivedExtension(srcExt string) string {
	if srcExt == "png" {
		return "png"
	}
	return "jpg"
}

// ThumbnailKeyFor maps a source object key to its thumbnail key.
func ThumbnailKeyFor(objectKey string) string {
	return PrefixThumbnails + derivedFilename(objectKey)
}

// DisplayKeyFor maps a source object key to its display variant key.
func DisplayKeyFor(objectKey string) string {
	return PrefixDisplay + derivedFilename(objectKey)
}

func derivedFilename(objectKey string) string {
	filename := KeyFilename(objectKey)
	ext := KeyExtension(objectKey)
	base := strings.TrimSuffix(filename, path.Ext(filename))
	if ext == "" {
		return filename
	}
	return base + "." + derivedExtension(ext)
}
