package handlers

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed i18n/*.json
var i18nFS embed.FS

// supportedLangs lists the languages the i18n system knows about.
// Anything else falls back to English.
var supportedLangs = map[string]bool{
	"en": true, "ko": true, "zh-CN": true, "zh-TW": true, "ja": true,
	"fr": true, "de": true, "es": true, "it": true, "pl": true,
	"pt": true, "tr": true, "ar": true, "th": true, "id": true,
}

// dateFormats maps a language to its "last updated" date layout.
var dateFormats = map[string]string{
	"en":    "January 2, 2006",
	"ko":    "2006년 1월 2일",
	"zh-CN": "2006年1月2日",
	"zh-TW": "2006年1月2日",
	"ja":    "2006年1月2日",
	"fr":    "2 January 2006",
	"de":    "2. January 2006",
	"es":    "2 de January de 2006",
	"it":    "2 January 2006",
	"pl":    "2 January 2006",
	"pt":    "2 de January de 2006",
	"tr":    "2 January 2006",
	"ar":    "2 January 2006",
	"th":    "2 January 2006",
	"id":    "2 January 2006",
}

// LegalSection is one titled block of a legal page.
type LegalSection struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// LegalContent is the content of one legal page in one language.
type LegalContent struct {
	Title    string         `json:"title"`
	Intro    string         `json:"intro"`
	Sections []LegalSection `json:"sections"`
}

// legalFile is the on-disk shape of a legal_<lang>.json file.
type legalFile struct {
	Privacy *LegalContent     `json:"privacy"`
	Terms   *LegalContent     `json:"terms"`
	Footer  map[string]string `json:"footer"`
}

// PagesHandler renders the static site pages: index plus the
// multilingual privacy and terms pages.
type PagesHandler struct {
	templates *template.Template
	logger    *zap.Logger
}

// NewPagesHandler parses the embedded templates.
func NewPagesHandler(logger *zap.Logger) (*PagesHandler, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}

	return &PagesHandler{
		templates: templates,
		logger:    logger,
	}, nil
}

// RegisterPageRoutes mounts the HTML pages directly on the router.
func RegisterPageRoutes(mux *chi.Mux, h *PagesHandler) {
	mux.Get("/", h.Index)
	mux.Get("/privacy", h.Privacy)
	mux.Get("/terms", h.Terms)
}

// Index renders the main page.
func (h *PagesHandler) Index(w http.ResponseWriter, r *http.Request) {
	lang := pageLang(r)

	h.render(w, "index.html", map[string]any{
		"Lang": lang,
	})
}

// Privacy renders the privacy policy in the requested language.
func (h *PagesHandler) Privacy(w http.ResponseWriter, r *http.Request) {
	h.legalPage(w, r, "privacy")
}

// Terms renders the terms of service in the requested language.
func (h *PagesHandler) Terms(w http.ResponseWriter, r *http.Request) {
	h.legalPage(w, r, "terms")
}

func (h *PagesHandler) legalPage(w http.ResponseWriter, r *http.Request, page string) {
	lang := pageLang(r)

	content, footer, actualLang, err := LoadLegalContent(lang, page)
	if err != nil {
		h.logger.Error("legal content not available",
			zap.String("page", page),
			zap.String("lang", lang),
			zap.Error(err),
		)
		http.Error(w, "legal content not available", http.StatusInternalServerError)

		return
	}

	layout, ok := dateFormats[actualLang]
	if !ok {
		layout = dateFormats["en"]
	}

	h.render(w, "legal.html", map[string]any{
		"Lang":              actualLang,
		"PageTitle":         content.Title,
		"Content":           content,
		"Footer":            footer,
		"LastUpdated":       time.Now().Format(layout),
		"MachineTranslated": actualLang != "en" && actualLang != "ko",
	})
}

func (h *PagesHandler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("template render failed", zap.String("template", name), zap.Error(err))
	}
}

func pageLang(r *http.Request) string {
	lang := r.URL.Query().Get("lang")
	if lang == "" {
		return "en"
	}

	return lang
}

// LoadLegalContent loads one legal page in the given language from the
// embedded content files. Unknown languages and missing files fall back
// to English; the language actually used is returned.
func LoadLegalContent(lang, page string) (*LegalContent, map[string]string, string, error) {
	if !supportedLangs[lang] {
		lang = "en"
	}

	raw, err := i18nFS.ReadFile("i18n/legal_" + lang + ".json")
	if err != nil {
		lang = "en"

		raw, err = i18nFS.ReadFile("i18n/legal_en.json")
		if err != nil {
			return nil, nil, lang, err
		}
	}

	var file legalFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return nil, nil, lang, err
	}

	var content *LegalContent

	switch page {
	case "privacy":
		content = file.Privacy
	case "terms":
		content = file.Terms
	}

	if content == nil {
		return nil, nil, lang, fmt.Errorf("no %q content for language %q", page, lang)
	}

	return content, file.Footer, lang, nil
}
