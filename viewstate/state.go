// Package viewstate models what a visitor sees: the active section, an
// optional detail overlay, and the mobile menu flag.
//
// A State is an immutable value. Every user interaction is an Event, and Apply
// is the only way to derive the next State from the current one.
package viewstate

import (
	"errors"
	"fmt"

	"github.com/Xav0929/portfolio/content"
)

// Section is one of the top-level views.
type Section string

const (
	Home         Section = "home"
	Projects     Section = "projects"
	Certificates Section = "certificates"
	About        Section = "about"
	Contact      Section = "contact"
)

var sections = []Section{Home, Projects, Certificates, About, Contact}

// Sections returns every section in navigation order.
func Sections() []Section {
	out := make([]Section, len(sections))
	copy(out, sections)
	return out
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	for _, known := range sections {
		if s == known {
			return true
		}
	}
	return false
}

// Label is the navigation caption.
func (s Section) Label() string {
	switch s {
	case Home:
		return "Home"
	case Projects:
		return "Projects"
	case Certificates:
		return "Certificates"
	case About:
		return "About"
	case Contact:
		return "Contact"
	}
	return string(s)
}

var (
	ErrUnknownSection = errors.New("viewstate: unknown section")
	ErrUnknownItem    = errors.New("viewstate: unknown item")
	ErrInvalidState   = errors.New("viewstate: invalid state")
)

// ParseSection maps a section identifier to a Section. The empty string is home.
func ParseSection(s string) (Section, error) {
	if s == "" {
		return Home, nil
	}
	sec := Section(s)
	if !sec.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSection, s)
	}
	return sec, nil
}

// OverlayKind tags the Overlay variant.
type OverlayKind int

const (
	NoOverlay OverlayKind = iota
	ProjectOverlay
	CertificateOverlay
)

// Overlay is the detail view shown above the current section. Exactly one
// of its variants is active, so a project and a certificate can never be
// presented together.
type Overlay struct {
	kind        OverlayKind
	project     content.Project
	certificate content.Certificate
}

// None is the empty overlay.
func None() Overlay { return Overlay{} }

// ProjectDetail presents p in an overlay.
func ProjectDetail(p content.Project) Overlay {
	return Overlay{kind: ProjectOverlay, project: p}
}

// CertificateDetail presents c in an overlay.
func CertificateDetail(c content.Certificate) Overlay {
	return Overlay{kind: CertificateOverlay, certificate: c}
}

// Kind returns which variant is active.
func (o Overlay) Kind() OverlayKind { return o.kind }

// IsOpen reports whether any overlay is shown.
func (o Overlay) IsOpen() bool { return o.kind != NoOverlay }

// Project returns the presented project, if the overlay is a project detail.
func (o Overlay) Project() (content.Project, bool) {
	return o.project, o.kind == ProjectOverlay
}

// Certificate returns the presented certificate, if the overlay is a certificate detail.
func (o Overlay) Certificate() (content.Certificate, bool) {
	return o.certificate, o.kind == CertificateOverlay
}

// Equal compares overlays by variant and item id.
func (o Overlay) Equal(other Overlay) bool {
	if o.kind != other.kind {
		return false
	}
	switch o.kind {
	case ProjectOverlay:
		return o.project.ID == other.project.ID
	case CertificateOverlay:
		return o.certificate.ID == other.certificate.ID
	}
	return true
}

// State is a snapshot of the visible UI.
type State struct {
	Section  Section
	Overlay  Overlay
	MenuOpen bool
}

// Initial is the state of a fresh visit.
func Initial() State {
	return State{Section: Home}
}

// Equal compares two states.
func (s State) Equal(other State) bool {
	return s.Section == other.Section && s.MenuOpen == other.MenuOpen && s.Overlay.Equal(other.Overlay)
}
