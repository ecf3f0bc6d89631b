package cmd

import (
	"fmt"
	"io"

	"github.com/Bitlatte/folio/internal/content"
	"github.com/Bitlatte/folio/internal/model"
	"github.com/Bitlatte/folio/internal/render"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

var manifestFormat string

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Prints the discovered category manifest",
	Long: `The manifest command runs discovery with the same rules as build and
prints the result. The json format is the exact value embedded into pages
as {{CATEGORIES_JSON}}; the yaml format also lists the feature folder and
every page route.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runManifest(cmd.OutOrStdout(), manifestFormat)
	},
}

type manifestDoc struct {
	Categories map[string]*model.CategoryManifest `yaml:"categories"`
	Feature    *model.FeatureManifest             `yaml:"feature,omitempty"`
	Pages      []string                           `yaml:"pages"`
}

func runManifest(w io.Writer, format string) error {
	loader, err := newLoader(appConfig, "")
	if err != nil {
		return err
	}
	site, err := loader.Discover(content.Strict)
	if err != nil {
		return fmt.Errorf("discovery failed: %w", err)
	}

	switch format {
	case "json":
		out, err := render.SerializeCategories(site.Categories)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, out)
		return err
	case "yaml":
		doc := manifestDoc{
			Categories: make(map[string]*model.CategoryManifest, len(site.Categories)),
			Feature:    site.Feature,
			Pages:      site.Routes(),
		}
		for _, c := range site.Categories {
			doc.Categories[c.Key] = c
		}
		out, err := yaml.Marshal(doc)
		if err != nil {
			return fmt.Errorf("failed to encode manifest: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown format %q, want json or yaml", format)
	}
}

func init() {
	manifestCmd.Flags().StringVarP(&manifestFormat, "format", "f", "json", "output format: json or yaml")
	rootCmd.AddCommand(manifestCmd)
}
