package viewstate

import (
	"fmt"

	"github.com/Xav0929/portfolio/content"
)

// Event is a user interaction. The concrete types below are the complete set.
type Event interface {
	event()
}

// Navigate shows another section and closes the mobile menu.
type Navigate struct{ To Section }

// ToggleMenu flips the mobile menu.
type ToggleMenu struct{}

// OpenProject opens a project externally if it has a live URL, otherwise in
// an overlay.
type OpenProject struct{ Project content.Project }

// CloseProject dismisses a project overlay.
type CloseProject struct{}

// SelectCertificate opens a certificate overlay.
type SelectCertificate struct{ Certificate content.Certificate }

// CloseCertificate dismisses a certificate overlay.
type CloseCertificate struct{}

func (Navigate) event()          {}
func (ToggleMenu) event()        {}
func (OpenProject) event()       {}
func (CloseProject) event()      {}
func (SelectCertificate) event() {}
func (CloseCertificate) event()  {}

// Effect is a side effect requested by an event, performed by the renderer.
type Effect struct {
	// OpenURL is opened in a new browsing context with no referrer and no
	// opener handle.
	OpenURL string
}

// None reports whether the effect is empty.
func (e Effect) None() bool { return e.OpenURL == "" }

// Apply returns the state that follows s after ev. Apply is total over the
// event set; navigating to an unknown section panics because sections are a
// closed set chosen by the program, never by a visitor.
func Apply(s State, ev Event) (State, Effect) {
	switch ev := ev.(type) {
	case Navigate:
		if !ev.To.Valid() {
			panic(fmt.Sprintf("viewstate: navigate to unknown section %q", ev.To))
		}
		s.Section = ev.To
		s.MenuOpen = false
	case ToggleMenu:
		s.MenuOpen = !s.MenuOpen
	case OpenProject:
		if ev.Project.HasLiveURL() {
			return s, Effect{OpenURL: ev.Project.LiveURL}
		}
		s.Overlay = ProjectDetail(ev.Project)
	case CloseProject:
		if s.Overlay.Kind() == ProjectOverlay {
			s.Overlay = None()
		}
	case SelectCertificate:
		s.Overlay = CertificateDetail(ev.Certificate)
	case CloseCertificate:
		if s.Overlay.Kind() == CertificateOverlay {
			s.Overlay = None()
		}
	default:
		panic(fmt.Sprintf("viewstate: unhandled event %T", ev))
	}
	return s, Effect{}
}
