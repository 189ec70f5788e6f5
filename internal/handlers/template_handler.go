package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"konsert-backend/internal/config"
	"konsert-backend/internal/middleware"
	"konsert-backend/internal/service"
	"konsert-backend/pkg/logger"
	"konsert-backend/pkg/navigation"
	"konsert-backend/pkg/utils"
	"konsert-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

// TemplateHandler renders the public site. Every page is rendered into its
// content template first and then wrapped by base.html.
type TemplateHandler struct {
	artistService   *service.ArtistService
	venueService    *service.VenueService
	pageService     *service.PageService
	homepageService *service.HomepageService
	templates       *template.Template
	config          *config.Config
}

func NewTemplateHandler(
	artistService *service.ArtistService,
	venueService *service.VenueService,
	pageService *service.PageService,
	homepageService *service.HomepageService,
	cfg *config.Config,
	templates *template.Template,
) (*TemplateHandler, error) {
	if templates == nil {
		return nil, fmt.Errorf("templates are required")
	}

	return &TemplateHandler{
		artistService:   artistService,
		venueService:    venueService,
		pageService:     pageService,
		homepageService: homepageService,
		templates:       templates,
		config:          cfg,
	}, nil
}

func (h *TemplateHandler) RenderIndex(c *gin.Context) {
	draft := middleware.IsDraftMode(c)

	homepage, err := h.homepageService.Resolve(draft)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.renderTemplate(c, "home", homepage.Title, h.config.SiteDescription, gin.H{
		"Homepage": homepage,
	})
}

func (h *TemplateHandler) RenderArtists(c *gin.Context) {
	artists, err := h.artistService.GetAll(middleware.IsDraftMode(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.renderTemplate(c, "artists", "Artister", "", gin.H{"Artists": artists})
}

func (h *TemplateHandler) RenderArtist(c *gin.Context) {
	slug, ok := h.canonicalSlug(c, "/artists/")
	if !ok {
		return
	}

	artist, err := h.artistService.GetBySlug(slug, middleware.IsDraftMode(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.renderTemplate(c, "artist", artist.Title, metaDescription(artist.Bio), gin.H{
		"Artist": artist,
		"Bio":    template.HTML(artist.Bio),
	})
}

func (h *TemplateHandler) RenderVenues(c *gin.Context) {
	venues, err := h.venueService.GetAll(middleware.IsDraftMode(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.renderTemplate(c, "venues", "Scener", "", gin.H{"Venues": venues})
}

func (h *TemplateHandler) RenderVenue(c *gin.Context) {
	slug, ok := h.canonicalSlug(c, "/venues/")
	if !ok {
		return
	}

	venue, err := h.venueService.GetBySlug(slug, middleware.IsDraftMode(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.renderTemplate(c, "venue", venue.Title, metaDescription(venue.Description), gin.H{
		"Venue": venue,
		"Body":  template.HTML(venue.Description),
	})
}

func (h *TemplateHandler) RenderPage(c *gin.Context) {
	slug, ok := h.canonicalSlug(c, "/")
	if !ok {
		return
	}

	page, err := h.pageService.GetBySlug(slug, middleware.IsDraftMode(c))
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	h.renderTemplate(c, "page", page.Title, page.Description, gin.H{
		"Page": page,
		"Body": template.HTML(page.Body),
	})
}

// RenderNotFound serves unmatched routes: JSON under /api, HTML elsewhere.
func (h *TemplateHandler) RenderNotFound(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api") {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "route not found",
			"path":  c.Request.URL.Path,
		})
		return
	}
	h.renderError(c, http.StatusNotFound, "404 - Fant ikke siden", "Siden du leter etter finnes ikke.")
}

// canonicalSlug redirects to the normalized form of the :slug parameter when
// it differs. It reports false when the response has already been written.
func (h *TemplateHandler) canonicalSlug(c *gin.Context, prefix string) (string, bool) {
	requested := c.Param("slug")
	canonical := utils.NormalizeSlug(requested)
	if canonical == "" {
		h.renderError(c, http.StatusNotFound, "404 - Fant ikke siden", "Siden du leter etter finnes ikke.")
		return "", false
	}

	if canonical != requested {
		target := url.URL{Path: prefix + canonical, RawQuery: c.Request.URL.RawQuery}
		c.Redirect(http.StatusMovedPermanently, target.String())
		return "", false
	}

	return canonical, true
}

func (h *TemplateHandler) renderServiceError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrDocumentNotFound) {
		h.renderError(c, http.StatusNotFound, "404 - Fant ikke siden", "Siden du leter etter finnes ikke.")
		return
	}

	logger.FromContext(c.Request.Context()).WithError(err).Error("Failed to load content")
	h.renderError(c, http.StatusInternalServerError, "500 - Serverfeil", "Noe gikk galt. Prøv igjen senere.")
}

func (h *TemplateHandler) basePageData(c *gin.Context, title, description string, extra gin.H) gin.H {
	draft := middleware.IsDraftMode(c)

	data := gin.H{
		"Site": gin.H{
			"Name":        h.config.SiteName,
			"Description": h.config.SiteDescription,
			"URL":         strings.TrimRight(h.config.SiteURL, "/"),
			"Language":    h.config.SiteLanguage,
		},
		"Navigation":  navigation.Primary(),
		"FooterLinks": h.pageLinks(draft),
		"Title":       title,
		"Description": description,
		"Draft":       draft,
	}
	if draft {
		data["DraftExitURL"] = "/api/draft-mode/disable?redirect=" + url.QueryEscape(c.Request.URL.Path)
	}
	for key, value := range extra {
		data[key] = value
	}

	h.setNavigationState(c, data)
	return data
}

func (h *TemplateHandler) setNavigationState(c *gin.Context, data gin.H) {
	cleanedPath := utils.NormalizePath(c.Request.URL.Path)
	data["ActivePath"] = cleanedPath

	if _, exists := data["ActiveNav"]; exists {
		return
	}

	items := navigation.Primary()
	if footer, ok := data["FooterLinks"].([]navigation.Item); ok {
		items = append(items, footer...)
	}
	data["ActiveNav"] = navigation.Active(items, cleanedPath)
}

// pageLinks lists the pages shown in the footer. Lookup errors are logged
// and leave the footer empty.
func (h *TemplateHandler) pageLinks(draft bool) []navigation.Item {
	if h.pageService == nil {
		return nil
	}

	pages, err := h.pageService.GetAll(draft)
	if err != nil {
		logger.Error(err, "Failed to load footer pages", nil)
		return nil
	}

	items := make([]navigation.Item, 0, len(pages))
	for _, page := range pages {
		items = append(items, navigation.Item{
			Key:   "page:" + page.Slug,
			Label: page.Title,
			Path:  "/" + page.Slug,
		})
	}
	return items
}

func (h *TemplateHandler) renderTemplate(c *gin.Context, templateName, title, description string, extra gin.H) {
	h.render(c, http.StatusOK, templateName+".html", h.basePageData(c, title, description, extra))
}

func (h *TemplateHandler) renderError(c *gin.Context, status int, title, message string) {
	data := h.basePageData(c, title, message, gin.H{
		"StatusCode": status,
		"Message":    message,
		"NoIndex":    true,
	})
	h.render(c, status, "error.html", data)
}

func (h *TemplateHandler) render(c *gin.Context, status int, content string, data gin.H) {
	if noIndex, ok := data["NoIndex"].(bool); ok && noIndex {
		c.Header("X-Robots-Tag", "noindex, nofollow")
	}
	if draft, ok := data["Draft"].(bool); ok && draft {
		c.Header("Cache-Control", "no-store")
		c.Header("X-Robots-Tag", "noindex, nofollow")
	}

	contentTmpl := h.templates.Lookup(content)
	if contentTmpl == nil {
		logger.Error(nil, "Content template not found", map[string]interface{}{"template": content})
		c.String(http.StatusInternalServerError, "template not found")
		return
	}

	buf, err := h.executeTemplate(contentTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render content", map[string]interface{}{"template": content})
		c.String(http.StatusInternalServerError, "failed to render content")
		return
	}
	data["Content"] = template.HTML(buf)

	layoutTmpl := h.templates.Lookup("base.html")
	if layoutTmpl == nil {
		logger.Error(nil, "Layout template not found", map[string]interface{}{"template": "base.html"})
		c.String(http.StatusInternalServerError, "template not found")
		return
	}

	output, err := h.executeTemplate(layoutTmpl, data)
	if err != nil {
		logger.Error(err, "Failed to render layout", map[string]interface{}{"template": "base.html"})
		c.String(http.StatusInternalServerError, "failed to render layout")
		return
	}

	c.Data(status, "text/html; charset=utf-8", output)
}

const metaDescriptionLength = 160

func metaDescription(markup string) string {
	text := []rune(validator.NormalizeSpaces(html.UnescapeString(validator.SanitizeString(markup))))
	if len(text) <= metaDescriptionLength {
		return string(text)
	}
	return strings.TrimSpace(string(text[:metaDescriptionLength-1])) + "…"
}

func (h *TemplateHandler) executeTemplate(tmpl *template.Template, data interface{}) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
