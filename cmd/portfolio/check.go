package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Xav0929/portfolio"
)

var checkStaticDir string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the content file and report missing image assets",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := loadDotEnv(); err != nil {
			return err
		}
		staticDir := checkStaticDir
		if staticDir == "" {
			cfg, err := portfolio.ConfigFromEnv()
			if err != nil {
				return err
			}
			staticDir = cfg.StaticDir
		}
		return runCheck(cmd.OutOrStdout(), contentPath, staticDir)
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkStaticDir, "static", "", "static asset directory (default from PORTFOLIO_STATIC_DIR)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(w io.Writer, path, staticDir string) error {
	cat, err := loadCatalog(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "content ok: %d projects, %d certificates, %d skills\n",
		len(cat.Projects), len(cat.Certificates), len(cat.Skills))

	missing := portfolio.MissingAssets(staticDir, cat)
	for _, m := range missing {
		fmt.Fprintf(w, "missing asset: %s\n", m)
	}
	if len(missing) > 0 {
		return fmt.Errorf("%d image assets missing under %s", len(missing), staticDir)
	}
	return nil
}
