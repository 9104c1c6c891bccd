package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/mediguard/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mediguard",
	Short: "MediGuard - food, drug and image screening for patient records",
	Long: `MediGuard screens patient-record inputs against external services:

- Profile images are verified to actually show a person
- Food images are classified, matched against nutrition data, and
  assessed against the patient's condition by a language model
- Drug/condition pairs are checked against openFDA label records

MediGuard is an advisory screen, not medical advice.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for MediGuard.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("mediguard v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.mediguard/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(home + "/.mediguard")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match MEDIGUARD_*
	viper.SetEnvPrefix("MEDIGUARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// buildConfig assembles the runtime configuration: defaults, then the
// config file, then well-known provider environment variables.
func buildConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid configuration, using defaults: %v\n", err)
		cfg = model.DefaultConfig()
	}

	// Provider keys follow the services' conventional variable names
	// so existing shell setups keep working
	if v := os.Getenv("IMAGGA_API_KEY"); v != "" {
		cfg.Imagga.APIKey = v
	}
	if v := os.Getenv("IMAGGA_API_SECRET"); v != "" {
		cfg.Imagga.APISecret = v
	}
	if v := os.Getenv("USDA_API_KEY"); v != "" {
		cfg.USDA.APIKey = v
	}
	if v := os.Getenv("MEDIGUARD_PROFILE_POLICY"); v != "" {
		cfg.Pipeline.ProfilePolicy = v
	}
	if v := os.Getenv("OLLAMA_BASE_URL"); v != "" && cfg.LLM.Provider == "ollama" {
		cfg.LLM.BaseURL = v
	}
	switch cfg.LLM.Provider {
	case "openai":
		if v := os.Getenv("OPENAI_API_KEY"); v != "" {
			cfg.LLM.APIKey = v
		}
	case "anthropic", "claude":
		if v := os.Getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.LLM.APIKey = v
		}
	}

	return cfg
}
