package viewstate

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Xav0929/portfolio/content"
)

// Query parameter names used by the URL encoding of a State.
const (
	ParamProject     = "project"
	ParamCertificate = "certificate"
	ParamMenu        = "menu"

	menuOpen = "open"
)

// Lookup resolves item ids found in a URL. *content.Catalog satisfies it.
type Lookup interface {
	Project(id int) (content.Project, bool)
	Certificate(id int) (content.Certificate, bool)
}

// Path returns the URL path of a section.
func (s Section) Path() string {
	if s == Home || s == "" {
		return "/"
	}
	return "/" + string(s) + "/"
}

// URL encodes s as a path plus query, e.g. "/certificates/?certificate=2".
func (s State) URL() string {
	q := url.Values{}
	switch s.Overlay.Kind() {
	case ProjectOverlay:
		q.Set(ParamProject, strconv.Itoa(s.Overlay.project.ID))
	case CertificateOverlay:
		q.Set(ParamCertificate, strconv.Itoa(s.Overlay.certificate.ID))
	}
	if s.MenuOpen {
		q.Set(ParamMenu, menuOpen)
	}
	if len(q) == 0 {
		return s.Section.Path()
	}
	return s.Section.Path() + "?" + q.Encode()
}

// Decode rebuilds a State from the section path segment and query of a
// request. Unrelated query parameters are ignored.
func Decode(section string, q url.Values, l Lookup) (State, error) {
	sec, err := ParseSection(section)
	if err != nil {
		return State{}, err
	}
	s := State{Section: sec}

	switch q.Get(ParamMenu) {
	case "":
	case menuOpen:
		s.MenuOpen = true
	default:
		return State{}, fmt.Errorf("%w: menu=%q", ErrInvalidState, q.Get(ParamMenu))
	}

	rawProject, rawCert := q.Get(ParamProject), q.Get(ParamCertificate)
	if rawProject != "" && rawCert != "" {
		return State{}, fmt.Errorf("%w: project and certificate overlays are exclusive", ErrInvalidState)
	}

	if rawProject != "" {
		id, err := parseID(rawProject)
		if err != nil {
			return State{}, err
		}
		p, ok := l.Project(id)
		if !ok {
			return State{}, fmt.Errorf("%w: project %d", ErrUnknownItem, id)
		}
		// A project with a live URL never opens an overlay.
		if p.HasLiveURL() {
			return State{}, fmt.Errorf("%w: project %d opens externally", ErrInvalidState, id)
		}
		s.Overlay = ProjectDetail(p)
	}

	if rawCert != "" {
		id, err := parseID(rawCert)
		if err != nil {
			return State{}, err
		}
		c, ok := l.Certificate(id)
		if !ok {
			return State{}, fmt.Errorf("%w: certificate %d", ErrUnknownItem, id)
		}
		s.Overlay = CertificateDetail(c)
	}

	return s, nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad id %q", ErrInvalidState, raw)
	}
	return id, nil
}

// Link is where a rendered control points to.
type Link struct {
	Href     string
	External bool // open in a new browsing context without referrer or opener
}

// LinkFor returns the link that performs ev from s: either the URL of the
// next state or, when ev requests it, an external URL.
func LinkFor(s State, ev Event) Link {
	next, eff := Apply(s, ev)
	if !eff.None() {
		return Link{Href: eff.OpenURL, External: true}
	}
	return Link{Href: next.URL()}
}
