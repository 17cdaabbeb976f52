package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const validID = "6f1b4a2c-9d3e-4f5a-8b6c-7d8e9f0a1b2c"

func TestIsValidPhotoID(t *testing.T) {
	tests := []struct {
		name  string
		id    string
		valid bool
	}{
		{"uuid v4", validID, true},
		{"uppercase hex", "6F1B4A2C-9D3E-4F5A-8B6C-7D8E9F0A1B2C", true},
		{"empty", "", false},
		{"not a uuid", "sunset.jpg", false},
		{"uuid v1", "6f1b4a2c-9d3e-1f5a-8b6c-7d8e9f0a1b2c", false},
		{"wrong variant", "6f1b4a2c-9d3e-4f5a-1b6c-7d8e9f0a1b2c", false},
		{"missing dashes", "6f1b4a2c9d3e4f5a8b6c7d8e9f0a1b2c", false},
		{"path traversal", "../originals/x", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsValidPhotoID(tt.id))
		})
	}
}

func TestIsAllowedStatus(t *testing.T) {
	assert.True(t, IsAllowedStatus(StatusPending))
	assert.True(t, IsAllowedStatus(StatusPublished))
	assert.True(t, IsAllowedStatus(StatusArchived))
	assert.False(t, IsAllowedStatus(StatusDeleted), "deleted is response-only")
	assert.False(t, IsAllowedStatus("draft"))
	assert.False(t, IsAllowedStatus(""))
}

func TestKeyHelpers(t *testing.T) {
	assert.Equal(t, "uploads/"+validID+".jpg", UploadKey(validID, "jpg"))
	assert.Equal(t, "originals/"+validID+".png", OriginalKey(validID, "png"))
	assert.Equal(t, "archive/"+validID+".webp", ArchiveKey(validID, "webp"))

	assert.Equal(t, "jpg", KeyExtension("uploads/"+validID+".JPG"))
	assert.Equal(t, "", KeyExtension("uploads/noext"))
	assert.Equal(t, validID+".jpg", KeyFilename("uploads/"+validID+".jpg"))
}

func TestDerivedKeysFollowOutputEncoding(t *testing.T) {
	// PNG stays PNG, everything else becomes JPEG
	assert.Equal(t, "thumbnails/"+validID+".png", ThumbnailKeyFor("originals/"+validID+".png"))
	assert.Equal(t, "thumbnails/"+validID+".jpg", ThumbnailKeyFor("originals/"+validID+".jpg"))
	assert.Equal(t, "thumbnails/"+validID+".jpg", ThumbnailKeyFor("originals/"+validID+".webp"))
	assert.Equal(t, "display/"+validID+".jpg", DisplayKeyFor("uploads/"+validID+".jpeg"))
}

func TestUploadURLRequestValidation(t *testing.T) {
	valid := UploadURLRequest{FileType: "image/jpeg", FileSize: 1024}
	assert.NoError(t, valid.Validate())

	oversized := UploadURLRequest{FileType: "image/jpeg", FileSize: MaxUploadSize + 1}
	assert.Error(t, oversized.Validate())

	badType := UploadURLRequest{FileType: "image/tiff", FileSize: 1024}
	assert.Error(t, badType.Validate())

	zeroSize := UploadURLRequest{FileType: "image/png", FileSize: 0}
	assert.Error(t, zeroSize.Validate())
}

func TestCreatePhotoRequestValidation(t *testing.T) {
	valid := CreatePhotoRequest{PhotoID: validID, Title: "Sunset", Alt: "A sunset"}
	assert.NoError(t, valid.Validate())

	assert.Error(t, CreatePhotoRequest{PhotoID: "nope", Title: "T", Alt: "A"}.Validate())
	assert.Error(t, CreatePhotoRequest{PhotoID: validID, Alt: "A"}.Validate())
	assert.Error(t, CreatePhotoRequest{PhotoID: validID, Title: "T"}.Validate())
}

func TestUpdatePhotoRequestValidation(t *testing.T) {
	published := StatusPublished
	assert.NoError(t, UpdatePhotoRequest{Status: &published}.Validate())

	bogus := "starred"
	assert.Error(t, UpdatePhotoRequest{Status: &bogus}.Validate())

	assert.True(t, UpdatePhotoRequest{}.IsEmpty())
	title := "T"
	assert.False(t, UpdatePhotoRequest{Title: &title}.IsEmpty())
}

func TestBulkUpdateRequestValidation(t *testing.T) {
	gallery := "landscapes"
	updates := UpdatePhotoRequest{Gallery: &gallery}

	valid := BulkUpdateRequest{PhotoIDs: []string{validID}, Updates: updates}
	assert.NoError(t, valid.Validate())

	assert.Error(t, BulkUpdateRequest{PhotoIDs: nil, Updates: updates}.Validate())

	assert.Error(t, BulkUpdateRequest{
		PhotoIDs: []string{"not-a-uuid"},
		Updates:  updates,
	}.Validate())

	// one over the limit must fail outright
	ids := make([]string, MaxBulkPhotos+1)
	for i := range ids {
		ids[i] = fmt.Sprintf("6f1b4a2c-9d3e-4f5a-8b6c-%012d", i)
	}
	assert.Error(t, BulkUpdateRequest{PhotoIDs: ids, Updates: updates}.Validate())

	assert.Error(t, BulkUpdateRequest{PhotoIDs: []string{validID}}.Validate())
}
