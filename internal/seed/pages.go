package seed

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"konsert-backend/internal/models"
	"konsert-backend/pkg/logger"
	"konsert-backend/pkg/utils"
)

//go:embed data/pages/*.json
var defaultPagesFS embed.FS

type PageEnsurer interface {
	Ensure(req models.CreatePageRequest) (*models.Page, bool, error)
}

// EnsureDefaultPages loads the embedded page definitions and makes sure they
// exist in the database. Pages that already exist are never overwritten.
func EnsureDefaultPages(pages PageEnsurer) error {
	return ensurePages(defaultPagesFS, "data/pages", pages)
}

func ensurePages(fsys fs.FS, dir string, pages PageEnsurer) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return fmt.Errorf("failed to read page definitions: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".json" {
			continue
		}

		name := entry.Name()
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}

		definitions, err := parsePageDefinitions(data)
		if err != nil {
			logger.Error(err, "Failed to parse page definition", map[string]interface{}{"file": name})
			continue
		}

		for _, definition := range definitions {
			if err := ensurePage(pages, definition, name); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}

func ensurePage(pages PageEnsurer, definition models.CreatePageRequest, source string) error {
	if definition.Slug == "" {
		definition.Slug = utils.GenerateSlug(definition.Title)
	} else {
		definition.Slug = utils.GenerateSlug(definition.Slug)
	}

	page, created, err := pages.Ensure(definition)
	if err != nil {
		return fmt.Errorf("failed to ensure page %q from %s: %w", definition.Slug, source, err)
	}

	if created {
		logger.Info("Created default page", map[string]interface{}{"slug": page.Slug, "source": source})
	} else {
		logger.Debug("Default page already present", map[string]interface{}{"slug": page.Slug, "source": source})
	}
	return nil
}

func parsePageDefinitions(data []byte) ([]models.CreatePageRequest, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var definitions []models.CreatePageRequest
		if err := json.Unmarshal(trimmed, &definitions); err != nil {
			return nil, err
		}
		return definitions, nil
	}

	var definition models.CreatePageRequest
	if err := json.Unmarshal(trimmed, &definition); err != nil {
		return nil, err
	}

	return []models.CreatePageRequest{definition}, nil
}
