package views

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/Xav0929/portfolio/content"
	"github.com/Xav0929/portfolio/viewstate"
)

type heroAction struct {
	To    viewstate.Section
	Label string
	Class string
}

var heroActions = []heroAction{
	{viewstate.Projects, "View Projects", "btn btn-primary"},
	{viewstate.Certificates, "Certificates", "btn"},
	{viewstate.Contact, "Contact Me", "btn"},
}

// imageFallback swaps a project image for the fallback when the browser
// fails to load it.
var imageFallback = templ.Attributes{
	"onerror": "this.onerror=null;this.src='" + content.FallbackImage + "'",
}

// ProjectImageSrc serves local project images through the thumbnail route,
// which redirects to the fallback when the asset cannot be decoded.
func ProjectImageSrc(image string) string {
	if name, ok := strings.CutPrefix(image, "/assets/"); ok && name != "" && !strings.Contains(name, "/") {
		return "/thumbs/" + url.PathEscape(name)
	}
	if image == "" {
		return content.FallbackImage
	}
	return image
}

// skillWidth clamps a skill level to a CSS width percentage.
func skillWidth(level int) templ.SafeCSS {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return templ.SafeCSS("width: " + strconv.Itoa(level) + "%;")
}

func navClass(active bool) string {
	if active {
		return "nav-link nav-link-active"
	}
	return "nav-link"
}

func linkText(l content.Link, withHandle bool) string {
	if withHandle && l.Handle != "" {
		return l.Handle
	}
	return l.Label
}

func hasError(errs map[string]string, name string) bool {
	_, ok := errs[name]
	return ok
}

func badRequestMessage(reason string) string {
	if reason == "" {
		return "That link is not valid."
	}
	return "That link is not valid. " + reason
}

// PageTitle names the page after the open overlay or the section.
func PageTitle(site SiteConfig, s viewstate.State) string {
	if p, ok := s.Overlay.Project(); ok {
		return p.Title + " · " + site.Name
	}
	if c, ok := s.Overlay.Certificate(); ok {
		return c.Title + " · " + site.Name
	}
	if s.Section == viewstate.Home {
		return site.Name
	}
	return s.Section.Label() + " · " + site.Name
}

// PersonSchema is the Schema.org Person rendered as JSON-LD in every page
// head. templ.JSONScript escapes markup in the encoded values.
func PersonSchema(site SiteConfig, profile content.Profile) map[string]any {
	data := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     profile.Name,
		"url":      site.URL,
	}
	if profile.Headline != "" {
		data["jobTitle"] = profile.Headline
	}
	if profile.Location != "" {
		data["address"] = map[string]string{
			"@type":          "PostalAddress",
			"addressCountry": profile.Location,
		}
	}
	if len(profile.Links) > 0 {
		same := make([]string, 0, len(profile.Links))
		for _, l := range profile.Links {
			same = append(same, l.URL)
		}
		data["sameAs"] = same
	}
	return data
}
