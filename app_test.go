package portfolio

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Xav0929/portfolio/content"
)

type recordingSink struct {
	mu   sync.Mutex
	msgs []ContactMessage
}

func (s *recordingSink) Deliver(_ context.Context, msg ContactMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, msg)
	return nil
}

func newTestApp(t *testing.T, cfg SiteConfig, opts ...Option) *App {
	t.Helper()
	dir := t.TempDir()
	if cfg.URL == "" {
		cfg.URL = "https://example.com"
	}
	cfg.Name = "Test Portfolio"
	cfg.DatabasePath = filepath.Join(dir, "portfolio.db")
	cfg.StaticDir = filepath.Join(dir, "public")
	cfg.SessionSecret = "test-secret-with-enough-entropy-0123456789"

	a := New(cfg, defaultCatalog(t), opts...)
	if err := a.Init(context.Background()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func serve(a *App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func get(a *App, target string) *httptest.ResponseRecorder {
	return serve(a, httptest.NewRequest(http.MethodGet, target, nil))
}

const testCSRF = "test-csrf-token"

func contactRequest(form url.Values) *http.Request {
	if form.Get("_csrf") == "" {
		form.Set("_csrf", testCSRF)
	}
	req := httptest.NewRequest(http.MethodPost, "/contact/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(&http.Cookie{Name: "_csrf", Value: testCSRF})
	return req
}

func validContactForm() url.Values {
	return url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Hello"},
		"message": {"I liked the clinic project."},
	}
}

func TestInitRequiresSessionSecret(t *testing.T) {
	a := New(SiteConfig{DatabasePath: filepath.Join(t.TempDir(), "x.db")}, defaultCatalog(t))
	if err := a.Init(context.Background()); err == nil {
		t.Fatal("expected an error without a session secret")
	}
}

func TestSectionPages(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	tests := []struct {
		path string
		want string
	}{
		{"/", "Francis Xaviery Miguel Tonzo"},
		{"/projects/", "Clinic Appointment System"},
		{"/certificates/", "Oracle Cloud Networking Professional"},
		{"/about/", "Skills &amp; Expertise"},
		{"/contact/", `name="_csrf"`},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := get(a, tt.path)
			if rec.Code != http.StatusOK {
				t.Fatalf("GET %s = %d, want 200", tt.path, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("GET %s body missing %q", tt.path, tt.want)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q", ct)
			}
		})
	}
}

func TestOverlayStates(t *testing.T) {
	a := newTestApp(t, SiteConfig{})

	rec := get(a, "/projects/?project=3")
	if rec.Code != http.StatusOK {
		t.Fatalf("project overlay = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `role="dialog"`) {
		t.Error("expected the project overlay to render")
	}

	rec = get(a, "/certificates/?certificate=2&menu=open")
	if rec.Code != http.StatusOK {
		t.Fatalf("certificate overlay = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Oracle Database Administration · Test Portfolio") {
		t.Error("expected the certificate title in the page title")
	}
	if !strings.Contains(body, "mobile-menu") {
		t.Error("expected the open menu")
	}
}

func TestPageMetaAbsoluteURLs(t *testing.T) {
	a := newTestApp(t, SiteConfig{})

	body := get(a, "/projects/?project=3").Body.String()
	for _, want := range []string{
		`<link rel="canonical" href="https://example.com/projects/?project=3">`,
		`<meta property="og:url" content="https://example.com/projects/?project=3">`,
		`<meta property="og:image" content="https://example.com/assets/test.jpg">`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %s", want)
		}
	}

	body = get(a, "/about/").Body.String()
	if !strings.Contains(body, `<meta property="og:type" content="profile">`) {
		t.Error("expected og:type profile on the about page")
	}
}

func TestBadStates(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	tests := []struct {
		target string
		code   int
	}{
		{"/projects/?project=99", http.StatusNotFound},
		{"/certificates/?certificate=0", http.StatusNotFound},
		{"/nowhere/", http.StatusNotFound},
		{"/projects/?project=1", http.StatusBadRequest},
		{"/projects/?project=abc", http.StatusBadRequest},
		{"/about/?menu=sideways", http.StatusBadRequest},
		{"/projects/?project=3&certificate=1", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(a, tt.target)
			if rec.Code != tt.code {
				t.Fatalf("GET %s = %d, want %d", tt.target, rec.Code, tt.code)
			}
			if !strings.Contains(rec.Body.String(), "<html") {
				t.Error("expected a rendered error page")
			}
		})
	}
}

func TestRedirects(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	tests := []struct {
		target   string
		code     int
		location string
	}{
		{"/projects", http.StatusMovedPermanently, "/projects/"},
		{"/home/", http.StatusMovedPermanently, "/"},
		{"/projects/3/", http.StatusSeeOther, "/projects/?project=3"},
		{"/projects/1/", http.StatusSeeOther, "https://final-hksamms.vercel.app/"},
		{"/certificates/2/", http.StatusSeeOther, "/certificates/?certificate=2"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			rec := get(a, tt.target)
			if rec.Code != tt.code {
				t.Fatalf("GET %s = %d, want %d", tt.target, rec.Code, tt.code)
			}
			if loc := rec.Header().Get("Location"); loc != tt.location {
				t.Errorf("Location = %q, want %q", loc, tt.location)
			}
		})
	}
}

func TestLiveProjectPermalinkDropsReferrer(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/projects/2/")
	if got := rec.Header().Get("Referrer-Policy"); got != "no-referrer" {
		t.Errorf("Referrer-Policy = %q, want no-referrer", got)
	}
}

func TestPermalinkUnknownItems(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	for _, target := range []string{"/projects/42/", "/projects/x/", "/certificates/42/"} {
		if rec := get(a, target); rec.Code != http.StatusNotFound {
			t.Errorf("GET %s = %d, want 404", target, rec.Code)
		}
	}
}

func TestContactValidationErrors(t *testing.T) {
	sink := &recordingSink{}
	a := newTestApp(t, SiteConfig{}, WithContactSink(sink))

	form := url.Values{
		"name":    {"  "},
		"email":   {"not-an-email"},
		"message": {"<b>hi</b>"},
	}
	rec := serve(a, contactRequest(form))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("POST /contact/ = %d, want 422", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Name is required.", "Please enter a valid email address.", "&lt;b&gt;hi&lt;/b&gt;"} {
		if !strings.Contains(body, want) {
			t.Errorf("422 page missing %q", want)
		}
	}
	if len(sink.msgs) != 0 {
		t.Errorf("invalid message was delivered: %+v", sink.msgs)
	}
}

func TestContactSuccessSetsFlash(t *testing.T) {
	sink := &recordingSink{}
	a := newTestApp(t, SiteConfig{}, WithContactSink(sink))

	rec := serve(a, contactRequest(validContactForm()))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /contact/ = %d, want 303", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/contact/" {
		t.Errorf("Location = %q, want /contact/", loc)
	}
	if len(sink.msgs) != 1 {
		t.Fatalf("delivered %d messages, want 1", len(sink.msgs))
	}
	msg := sink.msgs[0]
	if msg.ID == "" || msg.Name != "Ada" || msg.Email != "ada@example.com" {
		t.Errorf("delivered message = %+v", msg)
	}

	req := httptest.NewRequest(http.MethodGet, "/contact/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	page := serve(a, req)
	if !strings.Contains(page.Body.String(), contactThanks) {
		t.Error("expected the flash on the next contact page")
	}
	if got := page.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("contact Cache-Control = %q, want no-store", got)
	}
}

func TestContactNonPositiveLimitsUseDefaults(t *testing.T) {
	sink := &recordingSink{}
	a := newTestApp(t, SiteConfig{ContactLimit: -1, ContactWindow: -time.Minute, CacheTTL: -time.Second}, WithContactSink(sink))

	if a.Config.ContactLimit != 5 || a.Config.ContactWindow != 10*time.Minute || a.Config.CacheTTL != 5*time.Minute {
		t.Errorf("defaults not applied: %+v", a.Config)
	}
	if rec := serve(a, contactRequest(validContactForm())); rec.Code != http.StatusSeeOther {
		t.Fatalf("first submission = %d, want 303", rec.Code)
	}
	if len(sink.msgs) != 1 {
		t.Errorf("delivered %d messages, want 1", len(sink.msgs))
	}
}

func TestContactRequiresCSRF(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	form := validContactForm()
	form.Set("_csrf", "wrong")
	if rec := serve(a, contactRequest(form)); rec.Code != http.StatusForbidden {
		t.Fatalf("POST with bad token = %d, want 403", rec.Code)
	}
}

func TestContactRateLimit(t *testing.T) {
	sink := &recordingSink{}
	a := newTestApp(t, SiteConfig{ContactLimit: 2}, WithContactSink(sink))

	for i := 0; i < 2; i++ {
		if rec := serve(a, contactRequest(validContactForm())); rec.Code != http.StatusSeeOther {
			t.Fatalf("submission %d = %d, want 303", i+1, rec.Code)
		}
	}
	rec := serve(a, contactRequest(validContactForm()))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third submission = %d, want 429", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), contactTooMany) {
		t.Error("expected the rate limit notice")
	}
	if len(sink.msgs) != 2 {
		t.Errorf("delivered %d messages, want 2", len(sink.msgs))
	}
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestThumbnailScalesWideImages(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	writePNG(t, filepath.Join(a.Config.StaticDir, "assets", "wide.png"), 1600, 400)

	rec := get(a, "/thumbs/wide.png")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /thumbs/wide.png = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("Content-Type = %q", ct)
	}
	cfg, err := jpeg.DecodeConfig(rec.Body)
	if err != nil {
		t.Fatalf("decode thumbnail: %v", err)
	}
	if cfg.Width != maxThumbWidth || cfg.Height != 200 {
		t.Errorf("thumbnail = %dx%d, want %dx200", cfg.Width, cfg.Height, maxThumbWidth)
	}
}

func TestThumbnailFallback(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	broken := filepath.Join(a.Config.StaticDir, "assets", "broken.jpg")
	if err := os.MkdirAll(filepath.Dir(broken), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, target := range []string{"/thumbs/missing.jpg", "/thumbs/broken.jpg", "/thumbs/.hidden.png"} {
		rec := get(a, target)
		if rec.Code != http.StatusFound {
			t.Errorf("GET %s = %d, want 302", target, rec.Code)
			continue
		}
		if loc := rec.Header().Get("Location"); loc != content.FallbackImage {
			t.Errorf("GET %s Location = %q, want fallback", target, loc)
		}
	}
}

func TestSitemap(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/sitemap.xml")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /sitemap.xml = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		"<loc>https://example.com</loc>",
		"<loc>https://example.com/projects/</loc>",
		"<loc>https://example.com/projects/?project=3</loc>",
		"<loc>https://example.com/certificates/?certificate=4</loc>",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing %s", want)
		}
	}
	if strings.Contains(body, "project=1") {
		t.Error("live projects should not be listed")
	}
}

func TestRobotsAndEmbeddedAssets(t *testing.T) {
	a := newTestApp(t, SiteConfig{})

	rec := get(a, "/robots.txt")
	if !strings.Contains(rec.Body.String(), "Sitemap: https://example.com/sitemap.xml") {
		t.Errorf("robots.txt = %q", rec.Body.String())
	}

	for _, target := range []string{"/public/portfolio.css", "/favicon.svg"} {
		if rec := get(a, target); rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", target, rec.Code)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	rec := get(a, "/")
	if rec.Header().Get("X-Frame-Options") != "DENY" {
		t.Error("missing X-Frame-Options")
	}
	if rec.Header().Get("Content-Security-Policy") == "" {
		t.Error("missing Content-Security-Policy")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Error("missing request id")
	}
}

func TestMissingAssets(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "assets", "test.jpg"), 10, 10)
	cat := &content.Catalog{
		Profile:  content.Profile{Photo: "https://cdn.example.com/me.png"},
		Projects: []content.Project{{ID: 1, Image: "/assets/test.jpg"}, {ID: 2, Image: "/assets/gone.jpg"}},
	}
	got := MissingAssets(dir, cat)
	if len(got) != 1 || got[0] != "/assets/gone.jpg" {
		t.Errorf("MissingAssets = %v, want [/assets/gone.jpg]", got)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("PORTFOLIO_ADDR", ":8080")
	t.Setenv("PORTFOLIO_CACHE_TTL", "90s")
	t.Setenv("PORTFOLIO_COOKIE_SECURE", "true")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.Addr != ":8080" || cfg.CacheTTL.Seconds() != 90 || !cfg.CookieSecure {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Name != "Portfolio" || cfg.ContactLimit != 5 || cfg.StaticDir != "public" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}

func TestConfigFromEnvNonPositiveValues(t *testing.T) {
	t.Setenv("PORTFOLIO_CONTACT_WINDOW", "-1m")
	t.Setenv("PORTFOLIO_CONTACT_LIMIT", "-1")
	t.Setenv("PORTFOLIO_CACHE_TTL", "0s")

	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv: %v", err)
	}
	if cfg.ContactWindow != 10*time.Minute || cfg.ContactLimit != 5 || cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("non-positive values not replaced: %+v", cfg)
	}

	a := newTestApp(t, cfg)
	if rec := serve(a, contactRequest(validContactForm())); rec.Code != http.StatusSeeOther {
		t.Fatalf("first submission = %d, want 303", rec.Code)
	}
}

func TestPublicPagesSetNoCookies(t *testing.T) {
	a := newTestApp(t, SiteConfig{})
	for _, target := range []string{"/", "/projects/?project=3", "/about/?menu=open", "/certificates/2/"} {
		rec := get(a, target)
		if cookies := rec.Header().Values("Set-Cookie"); len(cookies) > 0 {
			t.Errorf("GET %s set cookies %v", target, cookies)
		}
		if cc := rec.Header().Get("Cache-Control"); !strings.HasPrefix(cc, "public") {
			t.Errorf("GET %s Cache-Control = %q, want public", target, cc)
		}
	}

	rec := get(a, "/contact/")
	var csrf bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == "_csrf" {
			csrf = true
		}
	}
	if !csrf {
		t.Error("contact page should issue a CSRF cookie")
	}
	if cc := rec.Header().Get("Cache-Control"); cc != "no-store" {
		t.Errorf("contact Cache-Control = %q, want no-store", cc)
	}
}

func TestConfigFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("PORTFOLIO_CONTACT_LIMIT", "lots")
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatal("expected a parse error")
	}
}
