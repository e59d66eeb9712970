package main

import (
	"github.com/spf13/cobra"

	"github.com/Xav0929/portfolio/content"
)

var contentPath string

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "A personal portfolio site built with Go, Echo, and templ",
	Long: `portfolio serves a single-page style portfolio: a hero, a project gallery,
certificates with detail views, an about section, and a contact form.

Configuration comes from PORTFOLIO_* environment variables, optionally
loaded from a .env file in the working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&contentPath, "content", "", "portfolio YAML file (default is the embedded catalog)")
}

// loadCatalog reads the catalog from path, or the embedded one when path is empty.
func loadCatalog(path string) (*content.Catalog, error) {
	if path == "" {
		return content.Default()
	}
	return content.Load(path)
}
