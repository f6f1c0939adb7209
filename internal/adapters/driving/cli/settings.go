package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/parallax/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and configure the content directory, default locale, render
cache and search options.

Use subcommands to change specific settings or run the interactive wizard.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure all settings step by step.`,
	RunE:  runSettingsWizard,
}

var settingsContentCmd = &cobra.Command{
	Use:   "content-dir <dir>",
	Short: "Set the content directory",
	Long:  `Set the directory holding posts/ and authors/.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsContent,
}

var settingsLocaleCmd = &cobra.Command{
	Use:   "locale <code>",
	Short: "Set the default locale",
	Long:  `Set the locale used when none is requested: ja, en, zh-TW or zh-CN.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runSettingsLocale,
}

var settingsCacheCmd = &cobra.Command{
	Use:   "cache [backend]",
	Short: "Set the render cache backend",
	Long: `Set where rendered locales are cached between loads.

Available backends:
  memory - per process (default)
  sqlite - persistent, survives restarts
  none   - render on every load

Without an argument a choice is offered interactively.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSettingsCache,
}

var settingsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsReset,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	settingsCmd.AddCommand(settingsContentCmd)
	settingsCmd.AddCommand(settingsLocaleCmd)
	settingsCmd.AddCommand(settingsCacheCmd)
	settingsCmd.AddCommand(settingsResetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Printf("Config file: %s\n", settingsService.ConfigPath())
	cmd.Println()

	cmd.Println("[Content]")
	cmd.Printf("  Directory: %s\n", settings.Content.Dir)
	cmd.Printf("  Default locale: %s\n", settings.DefaultLocale)
	cmd.Println()

	cmd.Println("[Loader]")
	cmd.Printf("  Workers: %d\n", settings.Loader.Workers)
	cmd.Printf("  Timeout: %s\n", settings.Loader.Timeout)
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Threshold: %.2f\n", settings.Search.Threshold)
	cmd.Printf("  Limit: %d\n", settings.Search.Limit)
	cmd.Println()

	cmd.Println("[Cache]")
	cmd.Printf("  Backend: %s\n", settings.Cache.Backend.Description())
	if settings.Cache.Backend == domain.CacheSQLite {
		dir := settings.Cache.Dir
		if dir == "" {
			dir = "(default)"
		}
		cmd.Printf("  Directory: %s\n", dir)
	}
	cmd.Println()

	cmd.Println("[Watch]")
	if settings.Watch.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Min interval: %s\n", settings.Watch.MinInterval)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[MCP]")
	cmd.Printf("  HTTP address: %s\n", settings.HTTPAddr)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'parallax settings wizard' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}

	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Parallax Settings Wizard")
	cmd.Println("========================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("Step 1: Content Directory")
	cmd.Println("-------------------------")
	cmd.Printf("Enter directory [%s]: ", settings.Content.Dir)
	if dir := readLine(reader); dir != "" {
		settings.Content.Dir = dir
	}
	cmd.Println()

	cmd.Println("Step 2: Default Locale")
	cmd.Println("----------------------")
	locales := domain.AllLocales()
	for i, l := range locales {
		cmd.Printf("  %d. %s\n", i+1, l)
	}
	cmd.Printf("\nEnter choice [%d]: ", int(settings.DefaultLocale)+1)
	idx := parseChoice(readLine(reader), len(locales), int(settings.DefaultLocale)+1)
	settings.DefaultLocale = locales[idx-1]
	cmd.Println()

	cmd.Println("Step 3: Render Cache")
	cmd.Println("--------------------")
	settings.Cache.Backend = chooseCacheBackend(cmd, reader, settings.Cache.Backend)
	cmd.Println()

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Println("Configuration Complete!")
	cmd.Println("=======================")
	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
	} else {
		cmd.Println("All settings are valid and saved.")
	}

	return nil
}

func runSettingsContent(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	if err := settingsService.SetContentDir(args[0]); err != nil {
		return fmt.Errorf("failed to set content directory: %w", err)
	}
	cmd.Printf("Content directory set to: %s\n", args[0])
	return nil
}

func runSettingsLocale(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	locale, err := domain.ParseLocale(args[0])
	if err != nil {
		return err
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	settings.DefaultLocale = locale
	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Printf("Default locale set to: %s\n", locale)
	return nil
}

func runSettingsCache(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	var backend domain.CacheBackend
	if len(args) == 1 {
		backend = domain.CacheBackend(args[0])
	} else {
		settings, err := settingsService.Get()
		if err != nil {
			return fmt.Errorf("failed to get settings: %w", err)
		}
		backend = chooseCacheBackend(cmd, bufio.NewReader(cmd.InOrStdin()), settings.Cache.Backend)
	}

	if err := settingsService.SetCacheBackend(backend); err != nil {
		return fmt.Errorf("failed to set cache backend: %w", err)
	}
	cmd.Printf("Cache backend set to: %s\n", backend.Description())
	return nil
}

func runSettingsReset(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	defaults := settingsService.GetDefaults()
	if err := settingsService.Save(&defaults); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println("Settings restored to defaults.")
	return nil
}

func chooseCacheBackend(cmd *cobra.Command, reader *bufio.Reader, current domain.CacheBackend) domain.CacheBackend {
	backends := domain.AllCacheBackends()
	def := 1
	for i, b := range backends {
		cmd.Printf("  %d. %s\n", i+1, b.Description())
		if b == current {
			def = i + 1
		}
	}
	cmd.Printf("\nEnter choice [%d]: ", def)
	idx := parseChoice(readLine(reader), len(backends), def)
	return backends[idx-1]
}

// Helper functions.

func readLine(reader *bufio.Reader) string {
	input, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return ""
	}
	return strings.TrimSpace(input)
}

func parseChoice(input string, n, fallback int) int {
	choice, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || choice < 1 || choice > n {
		return fallback
	}
	return choice
}
