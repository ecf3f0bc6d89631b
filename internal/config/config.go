package config

import (
	"fmt"
	"os/exec"
	"path"
	"path/filepath"
	"runtime/debug"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ContentDir  string `mapstructure:"contentDir"`
	CategoryDir string `mapstructure:"categoryDir"`
	FeatureDir  string `mapstructure:"featureDir"`
	Layout      string `mapstructure:"layout"`
	StaticDir   string `mapstructure:"staticDir"`
	OutputDir   string `mapstructure:"outputDir"`
	Project     string `mapstructure:"project"`
	Stylesheet  string `mapstructure:"stylesheet"`
	Revision    string `mapstructure:"revision"`
	Clean       bool   `mapstructure:"clean"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	LogLevel    string `mapstructure:"logLevel"`
	LogFile     string `mapstructure:"logFile"`
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("contentDir", "templates")
	v.SetDefault("categoryDir", "modeling")
	v.SetDefault("featureDir", "bts")
	v.SetDefault("layout", "base.html")
	v.SetDefault("staticDir", "static")
	v.SetDefault("outputDir", "docs")
	v.SetDefault("project", "")
	v.SetDefault("stylesheet", "/static/style.css")
	v.SetDefault("revision", "")
	v.SetDefault("clean", true)
	v.SetDefault("host", "127.0.0.1")
	v.SetDefault("port", 3000)
	v.SetDefault("logLevel", "info")
	v.SetDefault("logFile", "")
}

func (c *Config) Validate() error {
	if c.ContentDir == "" {
		return fmt.Errorf("contentDir is required")
	}
	if c.CategoryDir == "" || strings.Contains(c.CategoryDir, "/") {
		return fmt.Errorf("categoryDir must be a single directory name, got %q", c.CategoryDir)
	}
	if c.Layout == "" {
		return fmt.Errorf("layout is required")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("outputDir is required")
	}
	contains, err := containsPath(c.OutputDir, c.ContentDir)
	if err != nil {
		return fmt.Errorf("failed to resolve outputDir: %w", err)
	}
	if contains {
		return fmt.Errorf("outputDir %q must not be or contain contentDir %q", c.OutputDir, c.ContentDir)
	}
	if strings.Contains(c.Project, "/") {
		return fmt.Errorf("project must be a single path segment, got %q", c.Project)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}
	return nil
}

// containsPath reports whether dir is target or one of its ancestors.
func containsPath(dir, target string) (bool, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, err
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(absDir, absTarget)
	if err != nil {
		// different volumes
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// Addr is the listen address of the live server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StaticMount is the URL path the static directory is served under.
func (c *Config) StaticMount() string {
	return "/" + path.Base(c.StaticDir) + "/"
}

// ResolveRevision returns the source revision used for cache busting. It
// prefers the configured value, then the VCS stamp of the binary, then git,
// and finally "dev".
func (c *Config) ResolveRevision() string {
	if c.Revision != "" {
		return c.Revision
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				return shortRevision(s.Value)
			}
		}
	}
	out, err := exec.Command("git", "rev-parse", "--short", "HEAD").Output()
	if err == nil {
		if rev := strings.TrimSpace(string(out)); rev != "" {
			return rev
		}
	}
	return "dev"
}

func shortRevision(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
