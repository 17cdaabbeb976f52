package model

import (
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Well-known setting ids. Unknown ids fall through to records the
// owner may have created, with no defaults.
const (
	SettingHero  = "hero"
	SettingAbout = "about"
)

const (
	MinGalleryColumns = 1
	MaxGalleryColumns = 6
)

var uuidV4Pattern = regexp.MustCompile(
	`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)

var settingIDPattern = regexp.MustCompile(`^[a-z][a-z0-9-]{0,63}$`)

// IsValidSettingID reports whether id is a usable settings key.
func IsValidSettingID(id string) bool {
	return settingIDPattern.MatchString(id)
}

// Section is one block of prose on a content page.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

func (s Section) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Heading, validation.Required.Error("section heading is required")),
		validation.Field(&s.Body, validation.Required.Error("section body is required")),
	)
}

// SettingData is the typed payload of a site setting. Every field is
// optional; which ones matter depends on the setting id.
type SettingData struct {
	Title               string    `json:"title,omitempty"`
	Subtitle            string    `json:"subtitle,omitempty"`
	HeroPhotoID         string    `json:"heroPhotoId,omitempty"`
	GalleryColumns      int       `json:"galleryColumns,omitempty"`
	FitImageToContainer *bool     `json:"fitImageToContainer,omitempty"`
	Sections            []Section `json:"sections,omitempty"`
}

func (d SettingData) Validate() error {
	return validation.ValidateStruct(&d,
		validation.Field(&d.Title, validation.Required.Error("title is required")),
		validation.Field(&d.HeroPhotoID,
			validation.Match(uuidV4Pattern).Error("heroPhotoId must be a valid UUID"),
		),
		validation.Field(&d.GalleryColumns,
			validation.Min(MinGalleryColumns).Error("galleryColumns must be between 1 and 6"),
			validation.Max(MaxGalleryColumns).Error("galleryColumns must be between 1 and 6"),
		),
		validation.Field(&d.Sections),
	)
}

// SiteSetting is a stored settings record.
type SiteSetting struct {
	SettingID string      `json:"settingId"`
	Data      SettingData `json:"data"`
	UpdatedAt time.Time   `json:"updatedAt"`
	UpdatedBy string      `json:"updatedBy,omitempty"`
}

// SettingView is the public response shape: the payload flattened next
// to the id, with the hero photo resolved to a URL when it exists.
type SettingView struct {
	SettingID string `json:"settingId"`
	SettingData
	HeroImageURL string    `json:"heroImageUrl,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// DefaultSetting returns the built-in content served before the owner
// has saved anything, or nil for ids without defaults.
func DefaultSetting(settingID string) *SiteSetting {
	switch settingID {
	case SettingHero:
		return &SiteSetting{
			SettingID: SettingHero,
			Data: SettingData{
				Title:          "Photography Portfolio",
				Subtitle:       "Capturing life one frame at a time",
				GalleryColumns: 3,
			},
		}
	case SettingAbout:
		return &SiteSetting{
			SettingID: SettingAbout,
			Data: SettingData{
				Title: "About Me",
				Sections: []Section{
					{
						Heading: "My Story",
						Body:    "I am a photographer with a passion for capturing the quiet moments most people walk past.",
					},
					{
						Heading: "My Work",
						Body:    "From landscapes to portraits, every photo here was taken with care and a lot of patience.",
					},
				},
			},
		}
	default:
		return nil
	}
}
