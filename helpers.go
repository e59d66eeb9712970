package portfolio

import (
	"net/url"
	"path"
	"strings"

	"github.com/Xav0929/portfolio/content"
	"github.com/Xav0929/portfolio/views"
	"github.com/Xav0929/portfolio/viewstate"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// absURL resolves a site-relative URL, query included, against base. Other
// URLs are returned unchanged.
func absURL(base, rel string) string {
	if !strings.HasPrefix(rel, "/") {
		return rel
	}
	return strings.TrimRight(base, "/") + rel
}

// pageMeta builds the OpenGraph and canonical metadata for a view state.
func pageMeta(site views.SiteConfig, cat *content.Catalog, s viewstate.State) views.PageMeta {
	meta := views.PageMeta{
		Title:       views.PageTitle(site, s),
		Description: site.Description,
		URL:         absURL(site.URL, s.URL()),
		OGType:      "website",
	}
	if meta.Description == "" && cat != nil {
		meta.Description = cat.Profile.Headline
	}
	if p, ok := s.Overlay.Project(); ok {
		meta.Description = p.Description
		meta.Image = absURL(site.URL, p.Image)
	}
	if c, ok := s.Overlay.Certificate(); ok {
		meta.Description = c.Description
		meta.Image = absURL(site.URL, c.Image)
	}
	if s.Section == viewstate.About {
		meta.OGType = "profile"
	}
	return meta
}
