package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/Bitlatte/folio/internal/config"
	"github.com/Bitlatte/folio/internal/content"
	"github.com/Bitlatte/folio/internal/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var cfgFile string
var appConfig config.Config
var logger = zap.NewNop()

// flagKeys maps command flags onto configuration keys.
var flagKeys = map[string]string{
	"output":  "outputDir",
	"project": "project",
	"clean":   "clean",
	"port":    "port",
	"host":    "host",
}

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "folio - portfolio site generator",
	Long: `folio discovers pages and photo categories in a content directory,
serves them for local development and exports them as a static site
hosted under a project sub-path.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeConfig(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

func initializeConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("FOLIO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok && bindErr == nil {
			bindErr = v.BindPFlag(key, f)
		}
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	configUsed := ""
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		if cfgFile != "" {
			return fmt.Errorf("config file %s not found: %w", cfgFile, err)
		}
	} else {
		configUsed = v.ConfigFileUsed()
	}

	if err := v.Unmarshal(&appConfig); err != nil {
		return fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	l, err := logging.New(appConfig.LogLevel, appConfig.LogFile)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	logger = l

	if configUsed != "" {
		logger.Info("Using config file", zap.String("file", configUsed))
	} else {
		logger.Debug("No config file found, using defaults and environment")
	}
	return nil
}

// newLoader opens the configured content directory. assetPrefix is the URL
// path the content root is reachable under, empty for exported sites.
func newLoader(cfg config.Config, assetPrefix string) (*content.Loader, error) {
	if !isDir(cfg.ContentDir) {
		return nil, fmt.Errorf("content directory '%s' not found", cfg.ContentDir)
	}
	return content.NewLoader(os.DirFS(cfg.ContentDir), content.Options{
		CategoryDir: cfg.CategoryDir,
		FeatureDir:  cfg.FeatureDir,
		Layout:      cfg.Layout,
		AssetPrefix: assetPrefix,
	}, logger), nil
}

func contentMount(cfg config.Config) string {
	return "/" + path.Base(cfg.ContentDir)
}

func isDir(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}
