// Package cmd provides the command-line interface for sitesage.
// It handles command parsing, configuration loading, and crawl execution.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"sitesage/internal/config"
	"sitesage/internal/crawler"
	"sitesage/internal/extract"
	"sitesage/internal/fetcher"
	"sitesage/internal/logging"
	"sitesage/internal/storage"
)

var (
	cfgFile   string
	version   string
	buildTime string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitesage <URL>",
	Short: "Crawl a website into retrievable text content",
	Long: `Sitesage crawls a website breadth-first under depth and page budgets,
extracts the main textual content of each rendered page, and persists
the collected pages as one retrievable document keyed by the start URL.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrawl,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets version information for the CLI
func SetVersionInfo(v, bt string) {
	version = v
	buildTime = bt
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

func init() {
	cobra.OnInitialize(initConfig)

	// Configuration file flag
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./sitesage.yml)")

	// Configuration management flags
	rootCmd.Flags().Bool("show-config", false, "Display current configuration in YAML format and exit")

	// Traversal budget flags
	rootCmd.Flags().IntP("max-depth", "d", 2, "Maximum link depth from the start URL")
	rootCmd.Flags().IntP("max-pages", "p", 20, "Stop after visiting N pages")

	// URL filtering flags
	rootCmd.Flags().Bool("same-domain", true, "Restrict crawling to the start URL's host")
	rootCmd.Flags().StringSlice("exclude-patterns", nil, "Substrings that disqualify a URL (replaces the default list)")

	// Fetching flags
	rootCmd.Flags().DurationP("delay", "r", 1*time.Second, "Delay between processed pages")
	rootCmd.Flags().DurationP("timeout", "t", 30*time.Second, "Per-page navigation timeout")
	rootCmd.Flags().Duration("settle-delay", 500*time.Millisecond, "Network quiet period treated as page-load settled")
	rootCmd.Flags().Bool("headless", true, "Run the browser headless")
	rootCmd.Flags().StringP("user-agent", "u", "", "Browser User-Agent override")

	// Database flags
	rootCmd.Flags().StringP("database", "b", "./sitesage.db", "Path to SQLite database file")

	// Logging flags
	rootCmd.Flags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.Flags().String("log-file", "", "Log file path (console only when empty)")

	// Bind flags to viper
	bindFlags := []struct {
		viperKey string
		flagName string
	}{
		{"max_depth", "max-depth"},
		{"max_pages", "max-pages"},
		{"same_domain", "same-domain"},
		{"exclude_patterns", "exclude-patterns"},
		{"request_delay", "delay"},
		{"page_timeout", "timeout"},
		{"settle_delay", "settle-delay"},
		{"headless", "headless"},
		{"user_agent", "user-agent"},
		{"database_path", "database"},
		{"log_level", "log-level"},
		{"log_file", "log-file"},
	}

	for _, bind := range bindFlags {
		if err := viper.BindPFlag(bind.viperKey, rootCmd.Flags().Lookup(bind.flagName)); err != nil {
			// Non-critical for operation
			fmt.Fprintf(os.Stderr, "Warning: failed to bind flag %s: %v\n", bind.flagName, err)
		}
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("sitesage")
	}

	viper.AutomaticEnv() // read in environment variables that match
	viper.SetEnvPrefix("SITESAGE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func showCurrentConfig(cfg *config.CrawlConfig) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	fmt.Printf("# Current sitesage configuration\n")
	fmt.Printf("# Generated at: %s\n", time.Now().Format(time.RFC3339))
	fmt.Printf("# Configuration file search paths: ./sitesage.yml\n")
	fmt.Printf("# Environment variables prefix: SITESAGE_\n\n")
	fmt.Print(string(yamlData))

	return nil
}

func runCrawl(cmd *cobra.Command, args []string) error {
	startURL := args[0]
	showConfig, _ := cmd.Flags().GetBool("show-config")

	cfg := config.DefaultConfig()

	// Override with viper values; the default exclude list survives
	// unless exclude-patterns was set explicitly.
	if err := viper.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if !cmd.Flags().Changed("exclude-patterns") && !viper.IsSet("exclude_patterns") {
		cfg.ExcludePatterns = config.DefaultConfig().ExcludePatterns
	}

	if showConfig {
		return showCurrentConfig(cfg)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := config.ValidateStartURL(startURL); err != nil {
		return err
	}

	// Configure logging
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(viper.GetString("log_level"))
	logCfg.FilePath = viper.GetString("log_file")
	if err := logging.SetDefault(*logCfg); err != nil {
		return fmt.Errorf("failed to configure logging: %w", err)
	}

	// Create database directory if it doesn't exist
	dbDir := filepath.Dir(cfg.DatabasePath)
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	// The browser session belongs to this invocation: opened once
	// here, closed on every path out, never shared.
	browser := fetcher.NewBrowser(fetcher.Options{
		Headless:    cfg.Headless,
		PageTimeout: cfg.PageTimeout,
		SettleDelay: cfg.SettleDelay,
		UserAgent:   cfg.UserAgent,
	})
	if err := browser.Open(); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}
	defer func() { _ = browser.Close() }()

	session, err := crawler.NewSession(cfg, browser, extract.New(), store)
	if err != nil {
		return err
	}

	result, err := session.Crawl(cmd.Context(), startURL)
	if err != nil {
		return err
	}

	fmt.Printf("Crawled %d pages from %s (failed: %d, skipped duplicates: %d) in %s\n",
		result.Stats.PagesCrawled, startURL, result.Stats.PagesFailed,
		result.Stats.PagesSkipped, result.Stats.Duration.Round(time.Millisecond))
	fmt.Printf("Stored document in %s\n", cfg.DatabasePath)

	return nil
}
