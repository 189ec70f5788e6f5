package service

import (
	"fmt"
	"strings"

	"konsert-backend/pkg/utils"
)

const maxSlugAttempts = 1000

type slugRepository interface {
	ExistsBySlug(slug string) (bool, error)
	ExistsBySlugExceptID(slug string, excludeID uint) (bool, error)
}

// repairSlug returns value unchanged when it already is a valid slug and the
// normalized form otherwise.
func repairSlug(value string) string {
	if utils.ValidateSlug(value) {
		return value
	}
	return utils.NormalizeSlug(value)
}

// slugFromTitle derives a strict slug from a title. GenerateSlug keeps
// underscores, which the strict form does not allow.
func slugFromTitle(title string) string {
	return repairSlug(utils.GenerateSlug(title))
}

// resolveNewSlug picks the slug of a document being created. An explicit slug
// must be free; a slug derived from the title gets a numeric suffix on
// collision.
func resolveNewSlug(repo slugRepository, requested, title string) (string, error) {
	if strings.TrimSpace(requested) != "" {
		slug := repairSlug(requested)
		if slug == "" {
			return "", ErrSlugInvalid
		}
		exists, err := repo.ExistsBySlug(slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug availability: %w", err)
		}
		if exists {
			return "", ErrSlugTaken
		}
		return slug, nil
	}

	base := slugFromTitle(title)
	if base == "" {
		return "", ErrSlugInvalid
	}
	return uniqueSlug(base, func(candidate string) (bool, error) {
		return repo.ExistsBySlug(candidate)
	})
}

// resolveEditedSlug handles a slug edited on an existing document. A blank
// value regenerates from the title; anything else is validated and repaired.
func resolveEditedSlug(repo slugRepository, requested, title string, id uint) (string, error) {
	exists := func(candidate string) (bool, error) {
		return repo.ExistsBySlugExceptID(candidate, id)
	}

	if strings.TrimSpace(requested) == "" {
		base := slugFromTitle(title)
		if base == "" {
			return "", ErrSlugInvalid
		}
		return uniqueSlug(base, exists)
	}

	slug := repairSlug(requested)
	if slug == "" {
		return "", ErrSlugInvalid
	}
	taken, err := exists(slug)
	if err != nil {
		return "", fmt.Errorf("failed to check slug availability: %w", err)
	}
	if taken {
		return "", ErrSlugTaken
	}
	return slug, nil
}

func uniqueSlug(base string, exists func(string) (bool, error)) (string, error) {
	slug := base
	for attempt := 1; attempt < maxSlugAttempts; attempt++ {
		taken, err := exists(slug)
		if err != nil {
			return "", fmt.Errorf("failed to check slug availability: %w", err)
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, attempt)
	}
	return "", fmt.Errorf("failed to find a free slug for %q", base)
}
