package portfolio

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/Xav0929/portfolio/content"
)

// Store wraps a SQLite database holding the portfolio catalog.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and creates the schema.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets readers proceed while the startup seed writes; the busy
	// timeout makes a second writer wait instead of failing with SQLITE_BUSY.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS profile (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    name TEXT NOT NULL,
    headline TEXT NOT NULL,
    location TEXT NOT NULL,
    photo TEXT NOT NULL,
    bio TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS profile_links (
    position INTEGER PRIMARY KEY,
    label TEXT NOT NULL,
    url TEXT NOT NULL,
    handle TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS profile_highlights (
    position INTEGER PRIMARY KEY,
    icon TEXT NOT NULL,
    label TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS projects (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    live_url TEXT NOT NULL DEFAULT '',
    image TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS project_tech (
    project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (project_id, position)
);
CREATE TABLE IF NOT EXISTS certificates (
    id INTEGER PRIMARY KEY,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    issuer TEXT NOT NULL,
    date TEXT NOT NULL,
    image TEXT NOT NULL,
    description TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS certificate_skills (
    certificate_id INTEGER NOT NULL REFERENCES certificates(id) ON DELETE CASCADE,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (certificate_id, position)
);
CREATE TABLE IF NOT EXISTS skills (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    level INTEGER NOT NULL CHECK (level BETWEEN 0 AND 100)
);
`)
	return err
}

// Seed replaces the stored catalog with c in a single transaction.
func (s *Store) Seed(ctx context.Context, c *content.Catalog) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	for _, table := range []string{"project_tech", "certificate_skills", "projects", "certificates", "skills", "profile_links", "profile_highlights", "profile"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	p := c.Profile
	if _, err = tx.ExecContext(ctx, `INSERT INTO profile (id, name, headline, location, photo, bio) VALUES (1, ?, ?, ?, ?, ?)`,
		p.Name, p.Headline, p.Location, p.Photo, p.Bio); err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}
	for i, l := range p.Links {
		if _, err = tx.ExecContext(ctx, `INSERT INTO profile_links (position, label, url, handle) VALUES (?, ?, ?, ?)`, i, l.Label, l.URL, l.Handle); err != nil {
			return fmt.Errorf("insert profile link: %w", err)
		}
	}
	for i, h := range p.Highlights {
		if _, err = tx.ExecContext(ctx, `INSERT INTO profile_highlights (position, icon, label) VALUES (?, ?, ?)`, i, h.Icon, h.Label); err != nil {
			return fmt.Errorf("insert highlight: %w", err)
		}
	}

	for i, pr := range c.Projects {
		if _, err = tx.ExecContext(ctx, `INSERT INTO projects (id, position, title, description, live_url, image) VALUES (?, ?, ?, ?, ?, ?)`,
			pr.ID, i, pr.Title, pr.Description, pr.LiveURL, pr.Image); err != nil {
			return fmt.Errorf("insert project %d: %w", pr.ID, err)
		}
		for j, t := range pr.Tech {
			if _, err = tx.ExecContext(ctx, `INSERT INTO project_tech (project_id, position, name) VALUES (?, ?, ?)`, pr.ID, j, t); err != nil {
				return fmt.Errorf("insert project %d tech: %w", pr.ID, err)
			}
		}
	}

	for i, cert := range c.Certificates {
		if _, err = tx.ExecContext(ctx, `INSERT INTO certificates (id, position, title, issuer, date, image, description) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			cert.ID, i, cert.Title, cert.Issuer, cert.Date, cert.Image, cert.Description); err != nil {
			return fmt.Errorf("insert certificate %d: %w", cert.ID, err)
		}
		for j, sk := range cert.Skills {
			if _, err = tx.ExecContext(ctx, `INSERT INTO certificate_skills (certificate_id, position, name) VALUES (?, ?, ?)`, cert.ID, j, sk); err != nil {
				return fmt.Errorf("insert certificate %d skill: %w", cert.ID, err)
			}
		}
	}

	for i, sk := range c.Skills {
		if _, err = tx.ExecContext(ctx, `INSERT INTO skills (position, name, level) VALUES (?, ?, ?)`, i, sk.Name, sk.Level); err != nil {
			return fmt.Errorf("insert skill %q: %w", sk.Name, err)
		}
	}

	return tx.Commit()
}

// LoadCatalog reads the stored catalog back in seeded order.
// It returns sql.ErrNoRows if the store has never been seeded.
func (s *Store) LoadCatalog(ctx context.Context) (*content.Catalog, error) {
	var c content.Catalog
	p := &c.Profile
	err := s.db.QueryRowContext(ctx, `SELECT name, headline, location, photo, bio FROM profile WHERE id = 1`).
		Scan(&p.Name, &p.Headline, &p.Location, &p.Photo, &p.Bio)
	if err != nil {
		return nil, err
	}

	if err := s.loadLinks(ctx, p); err != nil {
		return nil, err
	}
	if err := s.loadHighlights(ctx, p); err != nil {
		return nil, err
	}

	tech, err := s.loadLists(ctx, `SELECT project_id, name FROM project_tech ORDER BY project_id, position`)
	if err != nil {
		return nil, fmt.Errorf("load project tech: %w", err)
	}
	c.Projects, err = s.loadProjects(ctx, tech)
	if err != nil {
		return nil, err
	}

	skills, err := s.loadLists(ctx, `SELECT certificate_id, name FROM certificate_skills ORDER BY certificate_id, position`)
	if err != nil {
		return nil, fmt.Errorf("load certificate skills: %w", err)
	}
	c.Certificates, err = s.loadCertificates(ctx, skills)
	if err != nil {
		return nil, err
	}

	c.Skills, err = s.loadSkills(ctx)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *Store) loadLinks(ctx context.Context, p *content.Profile) error {
	rows, err := s.db.QueryContext(ctx, `SELECT label, url, handle FROM profile_links ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var l content.Link
		if err := rows.Scan(&l.Label, &l.URL, &l.Handle); err != nil {
			return err
		}
		p.Links = append(p.Links, l)
	}
	return rows.Err()
}

func (s *Store) loadHighlights(ctx context.Context, p *content.Profile) error {
	rows, err := s.db.QueryContext(ctx, `SELECT icon, label FROM profile_highlights ORDER BY position`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var h content.Highlight
		if err := rows.Scan(&h.Icon, &h.Label); err != nil {
			return err
		}
		p.Highlights = append(p.Highlights, h)
	}
	return rows.Err()
}

// loadLists groups (owner id, name) rows into ordered slices per owner.
func (s *Store) loadLists(ctx context.Context, query string) (map[int][]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make(map[int][]string)
	for rows.Next() {
		var id int
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, err
		}
		out[id] = append(out[id], name)
	}
	return out, rows.Err()
}

func (s *Store) loadProjects(ctx context.Context, tech map[int][]string) ([]content.Project, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, live_url, image FROM projects ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var projects []content.Project
	for rows.Next() {
		var p content.Project
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.LiveURL, &p.Image); err != nil {
			return nil, err
		}
		p.Tech = tech[p.ID]
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) loadCertificates(ctx context.Context, skills map[int][]string) ([]content.Certificate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, issuer, date, image, description FROM certificates ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var certs []content.Certificate
	for rows.Next() {
		var c content.Certificate
		if err := rows.Scan(&c.ID, &c.Title, &c.Issuer, &c.Date, &c.Image, &c.Description); err != nil {
			return nil, err
		}
		c.Skills = skills[c.ID]
		certs = append(certs, c)
	}
	return certs, rows.Err()
}

func (s *Store) loadSkills(ctx context.Context) ([]content.Skill, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, level FROM skills ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var skills []content.Skill
	for rows.Next() {
		var sk content.Skill
		if err := rows.Scan(&sk.Name, &sk.Level); err != nil {
			return nil, err
		}
		skills = append(skills, sk)
	}
	return skills, rows.Err()
}
