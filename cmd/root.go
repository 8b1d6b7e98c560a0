/*
Copyright © 2026 Reinderien

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/reinderien/mycota/internal/iofs"
	"github.com/reinderien/mycota/internal/iologger"
	"github.com/reinderien/mycota/pkg/config"
	app "github.com/reinderien/mycota/pkg/mycota"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
	Use:     "mycota",
	Short:   "Extract mushroom traits from Wikipedia into a local dataset",
	Long: `mycota builds a local SQLite dataset of mushroom traits.

It finds every Wikipedia article that transcludes Template:Mycomorphbox,
parses the infobox parameters, normalizes multi-valued traits into
positional slots, and materializes two structures over the same records:
a relational table for column queries and an FTS5 index for full-text
search. Each build replaces the previous dataset atomically.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (MYCOTA_*)
  3. Config file (~/.config/mycota/config.yaml)
  4. Built-in defaults`,
	PersistentPreRunE: bootstrap,
	RunE:              runRoot,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureAliasFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = iologger.Init(config.LogDir(homeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Remove the automatic "mycota version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for mycota")

	rootCmd.AddCommand(
		getBuildCmd(),
		getQueryCmd(),
		getSchemaCmd(),
		getColumnsCmd(),
	)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions(), persistent configuration that can be stored
	// in config.yaml.
	v.SetEnvPrefix("MYCOTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Wiki source configuration
	v.BindEnv("wiki.api_url", "WIKI_API_URL")
	v.BindEnv("wiki.template", "WIKI_TEMPLATE")
	v.BindEnv("wiki.list_chunk", "WIKI_LIST_CHUNK")
	v.BindEnv("wiki.page_chunk", "WIKI_PAGE_CHUNK")

	// Store configuration
	v.BindEnv("db.batch_size", "DB_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
