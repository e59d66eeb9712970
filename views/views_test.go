package views

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/a-h/templ"

	"github.com/Xav0929/portfolio/content"
	"github.com/Xav0929/portfolio/viewstate"
)

func render(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	if err := c.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	return buf.String()
}

func defaultCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return cat
}

func testPage(t *testing.T, s viewstate.State) Page {
	t.Helper()
	site := SiteConfig{Name: "Test Site", URL: "https://example.com"}
	return Page{
		Site:    site,
		Meta:    PageMeta{Title: PageTitle(site, s), OGType: "website"},
		Catalog: defaultCatalog(t),
		State:   s,
	}
}

func TestPageViewNavigation(t *testing.T) {
	html := render(t, PageView(testPage(t, viewstate.Initial())))

	for _, want := range []string{
		`href="/projects/"`,
		`href="/certificates/"`,
		`href="/about/"`,
		`href="/contact/"`,
		`<title>Test Site</title>`,
		`href="/?menu=open"`,
		`aria-current="page"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("home page missing %q", want)
		}
	}
	if strings.Contains(html, "mobile-menu") {
		t.Error("closed menu should not render the mobile menu")
	}
}

func TestPageViewMenuOpen(t *testing.T) {
	s := viewstate.State{Section: viewstate.About, MenuOpen: true}
	html := render(t, PageView(testPage(t, s)))

	if !strings.Contains(html, `class="mobile-menu"`) {
		t.Error("open menu should render the mobile menu")
	}
	// The toggle closes the menu.
	if !strings.Contains(html, `class="menu-toggle" href="/about/"`) {
		t.Error("toggle should point at the closed-menu URL")
	}
	// Navigating closes the menu.
	if strings.Contains(html, `href="/projects/?menu=open"`) {
		t.Error("nav links should close the menu")
	}
}

func TestProjectsSectionLinks(t *testing.T) {
	cat := defaultCatalog(t)
	html := render(t, ProjectsSection(cat, viewstate.State{Section: viewstate.Projects}))

	live, _ := cat.Project(1)
	if !strings.Contains(html, `href="`+live.LiveURL+`" target="_blank" rel="noopener noreferrer"`) {
		t.Errorf("live project should open externally without opener or referrer")
	}
	if !strings.Contains(html, `href="/projects/?project=3"`) {
		t.Errorf("project without live URL should open its overlay")
	}
	if strings.Contains(html, `href="/projects/?project=3" target="_blank"`) {
		t.Errorf("overlay link should stay in the same browsing context")
	}
	if !strings.Contains(html, `src="/thumbs/test.jpg"`) {
		t.Errorf("local project images should go through the thumbnail route")
	}
	if !strings.Contains(html, "onerror=") {
		t.Errorf("project images should carry the fallback handler")
	}
}

func TestOverlayProject(t *testing.T) {
	cat := defaultCatalog(t)
	p, _ := cat.Project(3)
	s := viewstate.State{Section: viewstate.Projects, Overlay: viewstate.ProjectDetail(p)}
	html := render(t, PageView(testPage(t, s)))

	if !strings.Contains(html, `role="dialog"`) {
		t.Fatal("expected an overlay dialog")
	}
	if !strings.Contains(html, `class="overlay-close" aria-label="Close" href="/projects/"`) {
		t.Error("close link should dismiss the overlay")
	}
	if !strings.Contains(html, "Clinic Appointment System · Test Site") {
		t.Error("title should name the open project")
	}
	if !strings.Contains(html, "Expo") {
		t.Error("overlay should list technologies")
	}
}

func TestOverlayCertificate(t *testing.T) {
	cat := defaultCatalog(t)
	c, _ := cat.Certificate(2)
	s := viewstate.State{Section: viewstate.Certificates, Overlay: viewstate.CertificateDetail(c)}
	html := render(t, Overlay(s))

	for _, want := range []string{
		"Oracle Database Administration",
		"Issued by",
		"2025",
		"Backup &amp; Recovery",
		`href="/certificates/"`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("certificate overlay missing %q", want)
		}
	}
}

func TestOverlayNone(t *testing.T) {
	if html := render(t, Overlay(viewstate.Initial())); html != "" {
		t.Errorf("Overlay with nothing open = %q, want empty", html)
	}
}

func TestAboutSectionSkills(t *testing.T) {
	cat := &content.Catalog{
		Profile: content.Profile{Name: "A", Bio: "Hello **world**"},
		Skills:  []content.Skill{{Name: "Go", Level: 80}},
	}
	html := render(t, AboutSection(cat))

	if !strings.Contains(html, `style="width: 80%;"`) {
		t.Errorf("skill bar width missing: %s", html)
	}
	if !strings.Contains(html, `aria-valuenow="80"`) {
		t.Errorf("skill bar should expose its value")
	}
	if !strings.Contains(html, "<strong>world</strong>") {
		t.Errorf("bio should be rendered as markdown")
	}
}

func TestContactSectionErrors(t *testing.T) {
	form := ContactForm{
		Name:      "Ann",
		Message:   "<script>alert(1)</script>",
		Errors:    map[string]string{"email": "Email is required"},
		CSRFToken: "tok",
	}
	html := render(t, ContactSection(defaultCatalog(t), form))

	if !strings.Contains(html, "Email is required") {
		t.Error("field error not rendered")
	}
	if !strings.Contains(html, `name="_csrf" value="tok"`) {
		t.Error("csrf token not rendered")
	}
	if strings.Contains(html, "<script>alert") {
		t.Error("message was not escaped")
	}
	if !strings.Contains(html, `value="Ann"`) {
		t.Error("submitted values should be kept")
	}
}

func TestContactSectionFlash(t *testing.T) {
	html := render(t, ContactSection(defaultCatalog(t), ContactForm{Flash: "Thanks!"}))
	if !strings.Contains(html, `<p class="flash" role="status">Thanks!</p>`) {
		t.Errorf("flash not rendered")
	}
}

func TestErrorPages(t *testing.T) {
	site := SiteConfig{Name: "Test Site"}
	tests := []struct {
		name string
		c    templ.Component
		want string
	}{
		{"not found", NotFound(site), "Page not found"},
		{"bad request", BadRequest(site, "unknown id"), "unknown id"},
		{"server error", ServerError(site), "Something went wrong"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if html := render(t, tt.c); !strings.Contains(html, tt.want) {
				t.Errorf("page missing %q", tt.want)
			}
		})
	}
}

func TestProjectImageSrc(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"/assets/a.jpg", "/thumbs/a.jpg"},
		{"", content.FallbackImage},
		{"https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"/assets/nested/a.jpg", "/assets/nested/a.jpg"},
	}
	for _, tt := range tests {
		if got := ProjectImageSrc(tt.in); got != tt.want {
			t.Errorf("ProjectImageSrc(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSkillWidthClamps(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{-5, "width: 0%;"},
		{50, "width: 50%;"},
		{150, "width: 100%;"},
	}
	for _, tt := range tests {
		if got := string(skillWidth(tt.level)); got != tt.want {
			t.Errorf("skillWidth(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestPersonSchema(t *testing.T) {
	b, err := json.Marshal(PersonSchema(SiteConfig{URL: "https://example.com"}, content.Profile{
		Name:  "A",
		Links: []content.Link{{URL: "https://github.com/a"}},
	}))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"sameAs":["https://github.com/a"]`) {
		t.Errorf("JSON-LD missing sameAs: %s", b)
	}
}

func TestLayoutPersonJSONLDEscapesMarkup(t *testing.T) {
	p := testPage(t, viewstate.Initial())
	p.Catalog.Profile.Name = "A </script><b>"
	html := render(t, PageView(p))

	if !strings.Contains(html, `<script id="person-schema" type="application/ld+json">`) {
		t.Fatalf("JSON-LD block missing")
	}
	if strings.Contains(html, "</script><b>") {
		t.Errorf("JSON-LD should escape markup")
	}
}

func TestNavKeepsCertificateOverlay(t *testing.T) {
	cat := defaultCatalog(t)
	c, _ := cat.Certificate(2)
	s := viewstate.State{Section: viewstate.Certificates, Overlay: viewstate.CertificateDetail(c)}
	html := render(t, PageView(testPage(t, s)))

	if !strings.Contains(html, `href="/about/?certificate=2"`) {
		t.Errorf("section links should keep the open certificate")
	}
	if !strings.Contains(html, `href="/contact/?certificate=2"`) {
		t.Errorf("section links should keep the open certificate")
	}
}

func TestCertificatesSectionSubtitle(t *testing.T) {
	html := render(t, CertificatesSection(defaultCatalog(t), viewstate.State{Section: viewstate.Certificates}))
	if !strings.Contains(html, "<p>My Professional Achievements</p>") {
		t.Errorf("certificates heading missing its subtitle")
	}
}
