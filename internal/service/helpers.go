package service

import (
	"strings"
	"time"

	"konsert-backend/pkg/cache"
	"konsert-backend/pkg/logger"
	"konsert-backend/pkg/validator"
)

// publicationTimestamp keeps the first publication time while a document
// stays published and clears it when the document is withdrawn.
func publicationTimestamp(published bool, current *time.Time, now time.Time) *time.Time {
	if !published {
		return nil
	}
	if current != nil {
		return current
	}
	stamp := now.UTC()
	return &stamp
}

func cleanTitle(value string) (string, error) {
	title := validator.NormalizeSpaces(value)
	if title == "" {
		return "", ErrTitleRequired
	}
	return title, nil
}

func cleanList(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(validator.SanitizeString(value))
		if value == "" {
			continue
		}
		key := strings.ToLower(value)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, value)
	}
	return result
}

// cachedDocument serves a published document from the cache and fills the
// cache on a miss.
func cachedDocument[T any](c *cache.Cache, kind, slug string, load func(string) (*T, error)) (*T, error) {
	if c.Enabled() {
		var document T
		if err := c.GetCachedDocument(kind, slug, &document); err == nil {
			return &document, nil
		}
	}

	document, err := load(slug)
	if err != nil {
		return nil, translateNotFound(err)
	}

	if c.Enabled() {
		if err := c.CacheDocument(kind, slug, document); err != nil {
			logger.Warn("Failed to cache document", map[string]interface{}{"kind": kind, "slug": slug, "error": err.Error()})
		}
	}

	return document, nil
}

func cachedList[T any](c *cache.Cache, kind string, load func() ([]T, error)) ([]T, error) {
	if c.Enabled() {
		var documents []T
		if err := c.GetCachedList(kind, &documents); err == nil {
			return documents, nil
		}
	}

	documents, err := load()
	if err != nil {
		return nil, err
	}

	if c.Enabled() {
		if err := c.CacheList(kind, documents); err != nil {
			logger.Warn("Failed to cache document list", map[string]interface{}{"kind": kind, "error": err.Error()})
		}
	}

	return documents, nil
}

func invalidate(c *cache.Cache, kind string, slugs ...string) {
	if !c.Enabled() {
		return
	}
	if err := c.InvalidateDocument(kind, slugs...); err != nil {
		logger.Warn("Failed to invalidate cache", map[string]interface{}{"kind": kind, "error": err.Error()})
	}
}

// orderByIDs returns documents in the order of ids, dropping ids that were
// not found.
func orderByIDs[T any](ids []uint, documents []T, idOf func(T) uint) []T {
	index := make(map[uint]T, len(documents))
	for _, document := range documents {
		index[idOf(document)] = document
	}
	ordered := make([]T, 0, len(ids))
	for _, id := range ids {
		if document, ok := index[id]; ok {
			ordered = append(ordered, document)
		}
	}
	return ordered
}
