// Package content holds the read-only portfolio data set: the owner's profile,
// projects, certificates, and skills.
package content

// FallbackImage is substituted for a project image that fails to load.
const FallbackImage = "https://images.unsplash.com/photo-1557821552-17105176677c?w=800&h=600&fit=crop"

// Project is a portfolio entry. A project with a LiveURL opens externally;
// one without opens an in-page detail overlay.
type Project struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Tech        []string `yaml:"tech"`
	LiveURL     string   `yaml:"live_url"`
	Image       string   `yaml:"image"`
}

// HasLiveURL reports whether the project links to a deployed site.
func (p Project) HasLiveURL() bool {
	return p.LiveURL != ""
}

// Certificate is an earned certification shown in the certificate gallery.
type Certificate struct {
	ID          int      `yaml:"id"`
	Title       string   `yaml:"title"`
	Issuer      string   `yaml:"issuer"`
	Date        string   `yaml:"date"`
	Image       string   `yaml:"image"`
	Description string   `yaml:"description"`
	Skills      []string `yaml:"skills"`
}

// Skill is rendered as a labelled progress bar.
type Skill struct {
	Name  string `yaml:"name"`
	Level int    `yaml:"level"` // percentage, 0-100
}

// Link is an external profile link (source hosting, social).
type Link struct {
	Label  string `yaml:"label"`
	URL    string `yaml:"url"`
	Handle string `yaml:"handle"`
}

// Highlight is a short label shown in the about section grid.
type Highlight struct {
	Icon  string `yaml:"icon"`
	Label string `yaml:"label"`
}

// Profile describes the site owner.
type Profile struct {
	Name       string      `yaml:"name"`
	Headline   string      `yaml:"headline"`
	Location   string      `yaml:"location"`
	Photo      string      `yaml:"photo"`
	Bio        string      `yaml:"bio"` // markdown
	Links      []Link      `yaml:"links"`
	Highlights []Highlight `yaml:"highlights"`
}

// Catalog is the complete data set. It is built once at startup and never
// mutated afterwards; callers share it freely.
type Catalog struct {
	Profile      Profile       `yaml:"profile"`
	Projects     []Project     `yaml:"projects"`
	Certificates []Certificate `yaml:"certificates"`
	Skills       []Skill       `yaml:"skills"`
}

// Project returns the project with the given id.
func (c *Catalog) Project(id int) (Project, bool) {
	for _, p := range c.Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// Certificate returns the certificate with the given id.
func (c *Catalog) Certificate(id int) (Certificate, bool) {
	for _, cert := range c.Certificates {
		if cert.ID == id {
			return cert, true
		}
	}
	return Certificate{}, false
}

// ProjectByTitle returns the first project whose title matches exactly.
func (c *Catalog) ProjectByTitle(title string) (Project, bool) {
	for _, p := range c.Projects {
		if p.Title == title {
			return p, true
		}
	}
	return Project{}, false
}

// Images lists every local image path referenced by the catalog, in order.
// Absolute URLs are skipped.
func (c *Catalog) Images() []string {
	var out []string
	add := func(p string) {
		if p != "" && p[0] == '/' {
			out = append(out, p)
		}
	}
	add(c.Profile.Photo)
	for _, p := range c.Projects {
		add(p.Image)
	}
	for _, cert := range c.Certificates {
		add(cert.Image)
	}
	return out
}
