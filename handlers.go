package portfolio

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Xav0929/portfolio/content"
	"github.com/Xav0929/portfolio/views"
	"github.com/Xav0929/portfolio/viewstate"
)

// handleSection renders one section with the overlay and menu state decoded
// from the query string.
func (a *App) handleSection(sec viewstate.Section) echo.HandlerFunc {
	return func(c echo.Context) error {
		cat, err := a.Cache.Catalog(c.Request().Context())
		if err != nil {
			return err
		}
		state, err := viewstate.Decode(string(sec), c.QueryParams(), cat)
		if err != nil {
			return stateError(err)
		}
		page := a.page(c, cat, state)
		if sec == viewstate.Contact {
			page.Contact.Flash = popFlash(c)
		}
		return Render(c, a.Views.Page(page))
	}
}

func (a *App) page(c echo.Context, cat *content.Catalog, state viewstate.State) views.Page {
	site := a.siteView()
	return views.Page{
		Site:    site,
		Meta:    pageMeta(site, cat, state),
		Catalog: cat,
		State:   state,
		Contact: views.ContactForm{CSRFToken: CsrfToken(c)},
	}
}

// stateError maps a decode failure to an HTTP error: unknown sections and
// items are missing pages, anything else is a malformed link.
func stateError(err error) error {
	switch {
	case errors.Is(err, viewstate.ErrUnknownSection), errors.Is(err, viewstate.ErrUnknownItem):
		return echo.ErrNotFound
	case errors.Is(err, viewstate.ErrInvalidState):
		return echo.NewHTTPError(http.StatusBadRequest, strings.TrimPrefix(err.Error(), viewstate.ErrInvalidState.Error()+": "))
	}
	return err
}

func handleHomeRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

// handleProjectPermalink resolves a shareable project link. A live project
// sends the visitor to its site without a referrer; any other project opens
// its overlay on the projects section.
func (a *App) handleProjectPermalink(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}
	p, ok := cat.Project(id)
	if !ok {
		return echo.ErrNotFound
	}
	from := viewstate.State{Section: viewstate.Projects}
	next, eff := viewstate.Apply(from, viewstate.OpenProject{Project: p})
	if !eff.None() {
		c.Response().Header().Set("Referrer-Policy", "no-referrer")
		return c.Redirect(http.StatusSeeOther, eff.OpenURL)
	}
	return c.Redirect(http.StatusSeeOther, next.URL())
}

func (a *App) handleCertificatePermalink(c echo.Context) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.ErrNotFound
	}
	cert, ok := cat.Certificate(id)
	if !ok {
		return echo.ErrNotFound
	}
	from := viewstate.State{Section: viewstate.Certificates}
	next, _ := viewstate.Apply(from, viewstate.SelectCertificate{Certificate: cert})
	return c.Redirect(http.StatusSeeOther, next.URL())
}

func (a *App) handleRobots(c echo.Context) error {
	sitemap := strings.TrimRight(a.Config.URL, "/") + "/sitemap.xml"
	return c.String(http.StatusOK, fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /thumbs/\n\nSitemap: %s\n", sitemap))
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	site := a.siteView()
	switch {
	case code == http.StatusNotFound:
		_ = RenderStatus(c, code, a.Views.NotFound(site))
	case code == http.StatusBadRequest:
		reason, _ := he.Message.(string)
		_ = RenderStatus(c, code, a.Views.BadRequest(site, reason))
	case code >= 500:
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError(site))
	default:
		a.Echo.DefaultHTTPErrorHandler(err, c)
	}
}
