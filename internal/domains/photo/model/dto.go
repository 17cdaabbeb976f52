package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// DefaultListLimit applies when a list request omits limit.
	DefaultListLimit = 50
	// MaxListLimit caps a single page of photos.
	MaxListLimit = 100
	// MaxBulkPhotos caps the ids accepted by a bulk update.
	MaxBulkPhotos = 100
)

var photoIDRule = []validation.Rule{
	validation.Required.Error("photoId is required"),
	validation.Match(uuidV4Pattern).Error("photoId must be a valid UUID"),
}

// UploadURLRequest asks for a presigned upload slot.
type UploadURLRequest struct {
	FileType string `json:"fileType"`
	FileSize int64  `json:"fileSize"`
	FileName string `json:"fileName"`
}

func (r UploadURLRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FileType,
			validation.Required.Error("fileType is required"),
			validation.In("image/jpeg", "image/png", "image/webp").
				Error("fileType must be image/jpeg, image/png or image/webp"),
		),
		validation.Field(&r.FileSize,
			validation.Required.Error("fileSize is required"),
			validation.Min(int64(1)).Error("fileSize must be positive"),
			validation.Max(int64(MaxUploadSize)).Error("fileSize exceeds the 10MB limit"),
		),
	)
}

// CreatePhotoRequest registers metadata for a completed upload.
type CreatePhotoRequest struct {
	PhotoID     string `json:"photoId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Alt         string `json:"alt"`
	Gallery     string `json:"gallery"`
}

func (r CreatePhotoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PhotoID, photoIDRule...),
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Alt, validation.Required.Error("alt is required")),
	)
}

// UpdatePhotoRequest carries a partial metadata update. Nil fields are
// left untouched.
type UpdatePhotoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Alt         *string `json:"alt"`
	Copyright   *string `json:"copyright"`
	Gallery     *string `json:"gallery"`
	Status      *string `json:"status"`
}

func (r UpdatePhotoRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Status,
			validation.In(StatusPending, StatusPublished, StatusArchived).
				Error("status must be pending, published or archived"),
		),
	)
}

// IsEmpty reports whether the update changes nothing.
func (r UpdatePhotoRequest) IsEmpty() bool {
	return r.Title == nil && r.Description == nil && r.Alt == nil &&
		r.Copyright == nil && r.Gallery == nil && r.Status == nil
}

// BulkUpdateRequest applies the same field changes to many photos.
type BulkUpdateRequest struct {
	PhotoIDs []string           `json:"photoIds"`
	Updates  UpdatePhotoRequest `json:"updates"`
}

func (r BulkUpdateRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.PhotoIDs,
			validation.Required.Error("photoIds is required"),
			validation.Length(1, MaxBulkPhotos).
				Error("photoIds must contain between 1 and 100 ids"),
			validation.Each(validation.Match(uuidV4Pattern).
				Error("photoIds must contain valid UUIDs")),
		),
		validation.Field(&r.Updates,
			validation.By(func(interface{}) error {
				if r.Updates.IsEmpty() {
					return validation.NewError("validation_empty", "updates must set at least one field")
				}
				return r.Updates.Validate()
			}),
		),
	)
}

// UploadURLResponse hands the client a presigned PUT target.
type UploadURLResponse struct {
	UploadURL string    `json:"uploadUrl"`
	PhotoID   string    `json:"photoId"`
	ObjectKey string    `json:"objectKey"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DeleteResult describes what a delete call did: archive on the first
// call, permanent removal on the second.
type DeleteResult struct {
	PhotoID       string    `json:"photoId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	CleanupErrors []string  `json:"-"`
}

// BulkFailure reports why one photo in a bulk update was skipped.
type BulkFailure struct {
	PhotoID string `json:"photoId"`
	Reason  string `json:"reason"`
}

// BulkUpdateResult summarizes a bulk update.
type BulkUpdateResult struct {
	Updated []string      `json:"updated"`
	Failed  []BulkFailure `json:"failed"`
}

// PhotoView is the public JSON shape of a photo, with resolved
// variant URLs.
type PhotoView struct {
	Photo
	ThumbnailURL string `json:"thumbnailUrl"`
	FullResURL   string `json:"fullResUrl"`
}

// NewPhotoView resolves variant URLs for a photo. The uploader
// identity is stripped unless the caller is authenticated.
func NewPhotoView(p *Photo, publicURL func(key string) string, includeUploader bool) PhotoView {
	view := PhotoView{
		Photo:        *p,
		ThumbnailURL: publicURL(ThumbnailKeyFor(p.ObjectKey)),
		FullResURL:   publicURL(DisplayKeyFor(p.ObjectKey)),
	}
	if !includeUploader {
		view.UploadedBy = ""
	}
	return view
}

// NewPhotoViews maps a photo slice into views.
func NewPhotoViews(photos []*Photo, publicURL func(key string) string, includeUploader bool) []PhotoView {
	views := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		views = append(views, NewPhotoView(p, publicURL, includeUploader))
	}
	return views
}
