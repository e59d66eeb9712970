// Package portfolio serves a personal portfolio site built with Go, Echo,
// and templ: a hero, a project gallery, a certificate gallery with detail
// overlays, an about section with skill bars, and a contact form.
//
// Content comes from a read-only catalog seeded into SQLite at startup. The
// view state of every page lives in its URL; see package viewstate.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path/filepath"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/Xav0929/portfolio/content"
	"github.com/Xav0929/portfolio/views"
	"github.com/Xav0929/portfolio/viewstate"
)

// ViewFuncs holds the templ components the app renders. Callers may swap
// any of them through WithViews.
type ViewFuncs struct {
	Page        func(p views.Page) templ.Component
	NotFound    func(site views.SiteConfig) templ.Component
	BadRequest  func(site views.SiteConfig, reason string) templ.Component
	ServerError func(site views.SiteConfig) templ.Component
}

// DefaultViews returns the built-in templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Page:        views.PageView,
		NotFound:    views.NotFound,
		BadRequest:  views.BadRequest,
		ServerError: views.ServerError,
	}
}

// App is the central portfolio application. It wires together the store,
// cache, handlers, middleware, and templates.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Store  *Store
	Cache  *CatalogCache
	Views  ViewFuncs

	seed           *content.Catalog
	contactLimiter *RateLimiter
	contactSink    ContactSink
	thumbs         *Thumbnailer
	customRoutes   []func(*App)
}

// New creates an App that will seed catalog into its store on Init.
func New(cfg SiteConfig, catalog *content.Catalog, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
		seed:   catalog,
	}
	a.Echo.HideBanner = true

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Init opens and seeds the store, then installs middleware and routes.
// Start calls it; tests call it directly and drive a.Echo.
func (a *App) Init(ctx context.Context) error {
	if a.Config.SessionSecret == "" {
		return errors.New("portfolio: SessionSecret is required")
	}
	if a.seed == nil {
		return errors.New("portfolio: catalog is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("portfolio: init store: %w", err)
	}
	a.Store = store
	if err := a.Store.Seed(ctx, a.seed); err != nil {
		return fmt.Errorf("portfolio: seed store: %w", err)
	}

	a.Cache = NewCatalogCache(a.Store, a.Config.CacheTTL)
	a.contactLimiter = NewRateLimiter(a.Config.ContactLimit, a.Config.ContactWindow)
	a.thumbs = NewThumbnailer(filepath.Join(a.Config.StaticDir, "assets"), maxThumbWidth)
	if a.contactSink == nil {
		a.contactSink = LogSink{Logger: a.Echo.Logger}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start initializes the app and serves until the server is shut down.
func (a *App) Start(ctx context.Context) error {
	if err := a.Init(ctx); err != nil {
		return err
	}
	a.Echo.Logger.Infof("portfolio listening on %s", a.Config.Addr)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully, waiting up to 10 seconds for
// in-flight requests.
func (a *App) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return a.Echo.Shutdown(ctx)
}

func (a *App) setupRoutes() {
	e := a.Echo

	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/portfolio.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/favicon.svg", echo.WrapHandler(embeddedHandler))

	// User's static assets
	e.Static("/public", a.Config.StaticDir)
	e.Static("/assets", filepath.Join(a.Config.StaticDir, "assets"))
	e.GET("/thumbs/:name", a.handleThumbnail)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	for _, sec := range viewstate.Sections() {
		e.GET(sec.Path(), a.handleSection(sec))
	}
	e.GET("/home/", handleHomeRedirect)
	e.GET("/projects/:id/", a.handleProjectPermalink)
	e.GET("/certificates/:id/", a.handleCertificatePermalink)
	e.POST("/contact/", a.handleContactSubmit)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.contactLimiter != nil {
		a.contactLimiter.Stop()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// siteView is the slice of config the templates see.
func (a *App) siteView() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
	}
}
