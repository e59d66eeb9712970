package viewstate

import "github.com/Xav0929/portfolio/content"

// Controller owns a State and exposes one method per interaction. It is not
// safe for concurrent use; each request or session owns its own Controller.
type Controller struct {
	state State
}

// NewController starts from s.
func NewController(s State) *Controller {
	return &Controller{state: s}
}

// State returns the current snapshot.
func (c *Controller) State() State { return c.state }

func (c *Controller) dispatch(ev Event) Effect {
	next, eff := Apply(c.state, ev)
	c.state = next
	return eff
}

// NavigateTo switches to section s, keeping any open overlay and closing
// the mobile menu.
func (c *Controller) NavigateTo(s Section) { c.dispatch(Navigate{To: s}) }

// ToggleMenu opens the mobile menu if it is closed and closes it otherwise.
func (c *Controller) ToggleMenu() { c.dispatch(ToggleMenu{}) }

// OpenProject returns the external URL to open, if any.
func (c *Controller) OpenProject(p content.Project) Effect {
	return c.dispatch(OpenProject{Project: p})
}

// CloseProjectOverlay dismisses the project overlay. It does nothing when
// no project is open.
func (c *Controller) CloseProjectOverlay() { c.dispatch(CloseProject{}) }

// SelectCertificate opens the detail overlay for cert, replacing any open
// overlay.
func (c *Controller) SelectCertificate(cert content.Certificate) {
	c.dispatch(SelectCertificate{Certificate: cert})
}

// CloseCertificateOverlay dismisses the certificate overlay. It does
// nothing when no certificate is open.
func (c *Controller) CloseCertificateOverlay() { c.dispatch(CloseCertificate{}) }
