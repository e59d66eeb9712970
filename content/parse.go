package content

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed portfolio.yaml
var defaultData []byte

// Parse decodes a YAML catalog and validates it.
func Parse(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse catalog: empty document")
		}
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Default returns the catalog shipped with the binary.
func Default() (*Catalog, error) {
	return Parse(bytes.NewReader(defaultData))
}

// Validate reports every problem in the catalog at once.
func (c *Catalog) Validate() error {
	var errs []error

	if strings.TrimSpace(c.Profile.Name) == "" {
		errs = append(errs, errors.New("profile: name is required"))
	}
	for i, l := range c.Profile.Links {
		if !isHTTPURL(l.URL) {
			errs = append(errs, fmt.Errorf("profile link %d: url %q must be absolute http(s)", i, l.URL))
		}
	}

	projectIDs := make(map[int]struct{}, len(c.Projects))
	for _, p := range c.Projects {
		if _, dup := projectIDs[p.ID]; dup {
			errs = append(errs, fmt.Errorf("project %d: duplicate id", p.ID))
		}
		projectIDs[p.ID] = struct{}{}
		if strings.TrimSpace(p.Title) == "" {
			errs = append(errs, fmt.Errorf("project %d: title is required", p.ID))
		}
		if p.LiveURL != "" && !isHTTPURL(p.LiveURL) {
			errs = append(errs, fmt.Errorf("project %d: live_url %q must be absolute http(s)", p.ID, p.LiveURL))
		}
	}

	certIDs := make(map[int]struct{}, len(c.Certificates))
	for _, cert := range c.Certificates {
		if _, dup := certIDs[cert.ID]; dup {
			errs = append(errs, fmt.Errorf("certificate %d: duplicate id", cert.ID))
		}
		certIDs[cert.ID] = struct{}{}
		if strings.TrimSpace(cert.Title) == "" {
			errs = append(errs, fmt.Errorf("certificate %d: title is required", cert.ID))
		}
	}

	for _, s := range c.Skills {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, errors.New("skill: name is required"))
		}
		if s.Level < 0 || s.Level > 100 {
			errs = append(errs, fmt.Errorf("skill %q: level %d out of range 0-100", s.Name, s.Level))
		}
	}

	return errors.Join(errs...)
}

func isHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}
