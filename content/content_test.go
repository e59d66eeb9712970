package content

import (
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(c.Projects) != 3 {
		t.Errorf("projects = %d, want 3", len(c.Projects))
	}
	if len(c.Certificates) != 4 {
		t.Errorf("certificates = %d, want 4", len(c.Certificates))
	}
	if len(c.Skills) != 5 {
		t.Errorf("skills = %d, want 5", len(c.Skills))
	}
	if len(c.Profile.Links) != 2 {
		t.Errorf("profile links = %d, want 2", len(c.Profile.Links))
	}

	cert, ok := c.Certificate(2)
	if !ok {
		t.Fatal("certificate 2 not found")
	}
	if cert.Title != "Oracle Database Administration" {
		t.Errorf("certificate 2 title = %q", cert.Title)
	}
	if got := strings.Join(cert.Skills, ","); got != "Oracle DB,SQL,PL/SQL,Backup & Recovery,Performance Tuning" {
		t.Errorf("certificate 2 skills = %q", got)
	}

	clinic, ok := c.ProjectByTitle("Clinic Appointment System")
	if !ok {
		t.Fatal("clinic project not found")
	}
	if clinic.HasLiveURL() {
		t.Errorf("clinic project should not have a live url, got %q", clinic.LiveURL)
	}
	samms, ok := c.ProjectByTitle("HK-SAMMS")
	if !ok {
		t.Fatal("HK-SAMMS project not found")
	}
	if samms.LiveURL != "https://final-hksamms.vercel.app/" {
		t.Errorf("HK-SAMMS live url = %q", samms.LiveURL)
	}
	if got := strings.Join(samms.Tech, ","); got != "React,Node.js,MongoDB,Vercel" {
		t.Errorf("HK-SAMMS tech = %q", got)
	}
}

func TestLookupMissing(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Project(99); ok {
		t.Error("expected project 99 to be missing")
	}
	if _, ok := c.Certificate(0); ok {
		t.Error("expected certificate 0 to be missing")
	}
}

func TestImages(t *testing.T) {
	c := &Catalog{
		Profile:      Profile{Photo: "/assets/me.png"},
		Projects:     []Project{{ID: 1, Image: "/assets/a.jpg"}, {ID: 2, Image: "https://cdn.example.com/b.jpg"}},
		Certificates: []Certificate{{ID: 1, Image: "/assets/c.png"}, {ID: 2}},
	}
	got := strings.Join(c.Images(), ",")
	want := "/assets/me.png,/assets/a.jpg,/assets/c.png"
	if got != want {
		t.Errorf("Images() = %q, want %q", got, want)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want []string
	}{
		{
			name: "duplicate project ids",
			yaml: `
profile: {name: A}
projects:
  - {id: 1, title: One}
  - {id: 1, title: Two}
`,
			want: []string{"project 1: duplicate id"},
		},
		{
			name: "bad skill level and missing title",
			yaml: `
profile: {name: A}
certificates:
  - {id: 3}
skills:
  - {name: Go, level: 120}
`,
			want: []string{"certificate 3: title is required", `skill "Go": level 120 out of range`},
		},
		{
			name: "relative live url",
			yaml: `
profile: {name: A}
projects:
  - {id: 1, title: One, live_url: /local}
`,
			want: []string{"live_url \"/local\" must be absolute"},
		},
		{
			name: "unknown field",
			yaml: `
profile: {name: A}
projects:
  - {id: 1, title: One, url: https://example.com}
`,
			want: []string{"field url not found"},
		},
		{
			name: "missing profile name",
			yaml: `projects: []`,
			want: []string{"profile: name is required"},
		},
		{
			name: "empty document",
			yaml: ``,
			want: []string{"empty document"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			for _, w := range tt.want {
				if !strings.Contains(err.Error(), w) {
					t.Errorf("error %q does not contain %q", err.Error(), w)
				}
			}
		})
	}
}
