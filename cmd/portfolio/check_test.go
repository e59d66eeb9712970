package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testContent = `profile:
  name: Test Person
projects:
  - id: 1
    title: Local
    image: /assets/local.jpg
  - id: 2
    title: Remote
    image: https://cdn.example.com/remote.jpg
certificates:
  - id: 1
    title: Cert
    image: /assets/cert.png
`

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRunCheckReportsMissingAssets(t *testing.T) {
	dir := t.TempDir()
	contentFile := filepath.Join(dir, "portfolio.yaml")
	static := filepath.Join(dir, "public")
	writeFile(t, contentFile, testContent)
	writeFile(t, filepath.Join(static, "assets", "local.jpg"), "x")

	var out bytes.Buffer
	err := runCheck(&out, contentFile, static)
	if err == nil {
		t.Fatal("expected an error for the missing certificate image")
	}
	if !strings.Contains(out.String(), "content ok: 2 projects, 1 certificates, 0 skills") {
		t.Errorf("summary missing: %q", out.String())
	}
	if !strings.Contains(out.String(), "missing asset: /assets/cert.png") {
		t.Errorf("missing asset not reported: %q", out.String())
	}
	if strings.Contains(out.String(), "local.jpg") || strings.Contains(out.String(), "remote.jpg") {
		t.Errorf("present or remote assets reported: %q", out.String())
	}
}

func TestRunCheckPasses(t *testing.T) {
	dir := t.TempDir()
	contentFile := filepath.Join(dir, "portfolio.yaml")
	static := filepath.Join(dir, "public")
	writeFile(t, contentFile, testContent)
	writeFile(t, filepath.Join(static, "assets", "local.jpg"), "x")
	writeFile(t, filepath.Join(static, "assets", "cert.png"), "x")

	var out bytes.Buffer
	if err := runCheck(&out, contentFile, static); err != nil {
		t.Fatalf("runCheck: %v\n%s", err, out.String())
	}
}

func TestRunCheckInvalidContent(t *testing.T) {
	dir := t.TempDir()
	contentFile := filepath.Join(dir, "portfolio.yaml")
	writeFile(t, contentFile, "profile:\n  name: \"\"\nskills:\n  - name: Go\n    level: 140\n")

	err := runCheck(&bytes.Buffer{}, contentFile, dir)
	if err == nil {
		t.Fatal("expected validation errors")
	}
	for _, want := range []string{"profile: name is required", "level 140 out of range"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	defer rootCmd.SetArgs(nil)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version: %v", err)
	}
	if got := out.String(); got != "portfolio dev\n" {
		t.Errorf("version output = %q", got)
	}
}
