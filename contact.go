package portfolio

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Xav0929/portfolio/views"
	"github.com/Xav0929/portfolio/viewstate"
)

const (
	contactThanks  = "Thanks, your message was received."
	contactTooMany = "Too many messages. Please try again later."
)

// ContactMessage is a submitted contact form. ID and RemoteIP are assigned
// by the server after validation.
type ContactMessage struct {
	Name    string `form:"name" validate:"required,max=100"`
	Email   string `form:"email" validate:"required,email,max=254"`
	Subject string `form:"subject" validate:"max=200"`
	Message string `form:"message" validate:"required,max=5000"`

	ID       string
	RemoteIP string
}

func (m *ContactMessage) normalize() {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Message = strings.TrimSpace(m.Message)
}

// ContactSink receives validated contact messages.
type ContactSink interface {
	Deliver(ctx context.Context, msg ContactMessage) error
}

// LogSink records that a message arrived without keeping its contents.
type LogSink struct {
	Logger echo.Logger
}

// Deliver logs the message ID, sender IP and field sizes. It never fails.
func (s LogSink) Deliver(_ context.Context, msg ContactMessage) error {
	s.Logger.Infof("contact message %s from %s: subject=%d bytes, message=%d bytes",
		msg.ID, msg.RemoteIP, len(msg.Subject), len(msg.Message))
	return nil
}

func (a *App) handleContactSubmit(c echo.Context) error {
	ip := c.RealIP()
	if !a.contactLimiter.Allow(ip) {
		return a.renderContact(c, http.StatusTooManyRequests, views.ContactForm{Flash: contactTooMany})
	}

	var msg ContactMessage
	if err := c.Bind(&msg); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "The form could not be read.")
	}
	msg.normalize()

	if err := c.Validate(&msg); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		return a.renderContact(c, http.StatusUnprocessableEntity, views.ContactForm{
			Name:    msg.Name,
			Email:   msg.Email,
			Subject: msg.Subject,
			Message: msg.Message,
			Errors:  fieldErrors(verrs),
		})
	}

	msg.ID = uuid.NewString()
	msg.RemoteIP = ip
	if err := a.contactSink.Deliver(c.Request().Context(), msg); err != nil {
		return fmt.Errorf("deliver contact message: %w", err)
	}
	if err := setFlash(c, contactThanks); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, viewstate.Contact.Path())
}

func (a *App) renderContact(c echo.Context, code int, form views.ContactForm) error {
	cat, err := a.Cache.Catalog(c.Request().Context())
	if err != nil {
		return err
	}
	page := a.page(c, cat, viewstate.State{Section: viewstate.Contact})
	form.CSRFToken = page.Contact.CSRFToken
	page.Contact = form
	return RenderStatus(c, code, a.Views.Page(page))
}

var fieldLabels = map[string]string{
	"name":    "Name",
	"email":   "Email",
	"subject": "Subject",
	"message": "Message",
}

// fieldErrors turns validation failures into one message per form field.
func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		label := fieldLabels[field]
		if label == "" {
			label = field
		}
		switch fe.Tag() {
		case "required":
			out[field] = label + " is required."
		case "email":
			out[field] = "Please enter a valid email address."
		case "max":
			out[field] = fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		default:
			out[field] = label + " is invalid."
		}
	}
	return out
}
