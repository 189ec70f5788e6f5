package utils

import (
	"html/template"
	"net/url"
	"path"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func GetTemplateFuncs() template.FuncMap {
	titleCaser := cases.Title(language.Und)

	return template.FuncMap{
		"upper": strings.ToUpper,
		"title": func(s string) string { return titleCaser.String(s) },
		"join":  strings.Join,
		"truncate": func(s string, length int) string {
			runes := []rune(s)
			if length < 0 || len(runes) <= length {
				return s
			}
			return string(runes[:length]) + "..."
		},
		"pathEquals": func(current, value string) bool {
			value = strings.TrimSpace(value)
			if value == "" {
				return false
			}
			return NormalizePath(current) == NormalizePath(value)
		},
		"slugify": GenerateSlug,

		"formatDate": func(t time.Time, format string) string {
			if layout, ok := dateLayouts[format]; ok {
				return t.Format(layout)
			}
			return t.Format(format)
		},

		"default": func(defaultValue, value interface{}) interface{} {
			if isEmpty(value) {
				return defaultValue
			}
			return value
		},

		// safe must only receive markup that went through the HTML sanitizer.
		"safe": func(s string) template.HTML { return template.HTML(s) },
	}
}

var dateLayouts = map[string]string{
	"short":  "02.01.2006",
	"medium": "2. Jan 2006",
	"time":   "15:04",
}

func isEmpty(value interface{}) bool {
	if value == nil {
		return true
	}

	v := reflect.ValueOf(value)

	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Bool:
		return false
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	}

	zero := reflect.Zero(v.Type())
	return reflect.DeepEqual(value, zero.Interface())
}

func NormalizePath(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "/"
	}

	if strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://") {
		if parsed, err := url.Parse(trimmed); err == nil {
			if parsed.Path != "" {
				trimmed = parsed.Path
			} else {
				trimmed = "/"
			}
		}
	}

	if !strings.HasPrefix(trimmed, "/") {
		trimmed = "/" + trimmed
	}

	cleaned := path.Clean(trimmed)
	if cleaned == "." || cleaned == "" {
		return "/"
	}

	if cleaned != "/" && strings.HasSuffix(cleaned, "/") {
		cleaned = strings.TrimSuffix(cleaned, "/")
	}

	return cleaned
}
