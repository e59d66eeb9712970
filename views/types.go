package views

import (
	"github.com/Xav0929/portfolio/content"
	"github.com/Xav0929/portfolio/viewstate"
)

// SiteConfig holds site-wide settings the templates need.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "profile"
	Image       string
}

// ContactForm is the contact section's view model.
type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string

	Errors    map[string]string // field name -> message
	Flash     string
	CSRFToken string
}

// Page is everything needed to render one view state.
type Page struct {
	Site    SiteConfig
	Meta    PageMeta
	Catalog *content.Catalog
	State   viewstate.State
	Contact ContactForm
}
