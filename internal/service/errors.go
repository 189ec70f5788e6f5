package service

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrTitleRequired      = errors.New("title is required")
	ErrSlugInvalid        = errors.New("slug must contain at least one letter or digit")
	ErrSlugTaken          = errors.New("slug is already in use")
	ErrDocumentNotFound   = errors.New("document not found")
	ErrFeaturedNotFound   = errors.New("featured document does not exist")
	ErrDraftModeDisabled  = errors.New("draft mode is not configured")
	ErrDraftSecretInvalid = errors.New("invalid draft mode secret")
)

func translateNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrDocumentNotFound
	}
	return err
}
