package portfolio

import (
	"encoding/xml"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Xav0929/portfolio/content"
	"github.com/Xav0929/portfolio/viewstate"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq,omitempty"`
}

func (a *App) handleSitemap(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	return a.renderSitemap(c, cat)
}

// renderSitemap lists every section plus each detail overlay that has its
// own URL. Live projects are external and not listed.
func (a *App) renderSitemap(c echo.Context, cat *content.Catalog) error {
	base := a.Config.URL
	var urls []sitemapURL
	for _, sec := range viewstate.Sections() {
		loc := BuildURL(base)
		if sec != viewstate.Home {
			loc = BuildURL(base, string(sec))
		}
		urls = append(urls, sitemapURL{Loc: loc, ChangeFreq: "monthly"})
	}
	for _, p := range cat.Projects {
		if p.HasLiveURL() {
			continue
		}
		s := viewstate.State{Section: viewstate.Projects, Overlay: viewstate.ProjectDetail(p)}
		urls = append(urls, sitemapURL{Loc: absURL(base, s.URL())})
	}
	for _, cert := range cat.Certificates {
		s := viewstate.State{Section: viewstate.Certificates, Overlay: viewstate.CertificateDetail(cert)}
		urls = append(urls, sitemapURL{Loc: absURL(base, s.URL())})
	}

	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	if _, err := c.Response().Write([]byte(xml.Header)); err != nil {
		return err
	}
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}
