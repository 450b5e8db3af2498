package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/confops/helpdesk-toolkit/internal/helpdesk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	ctx    context.Context
	config Config
	client *helpdesk.Client

	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:               "helpdesk-toolkit",
	Short:             "Batch operations against the conference helpdesk",
	SilenceUsage:      true,
	PersistentPreRunE: preRun,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.helpdesk-toolkit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(finaidCmd)
	rootCmd.AddCommand(archiveCmd)

	cobra.OnInitialize(initConfig)
}

func preRun(cmd *cobra.Command, args []string) error {
	ctx = context.Background()

	if err := viper.Unmarshal(&config); err != nil {
		return fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := config.resolvePaths(); err != nil {
		return fmt.Errorf("resolving config paths: %w", err)
	}

	if err := setLogger(config.LogFile, debug); err != nil {
		return fmt.Errorf("setting logger: %w", err)
	}

	if err := config.ensureCreds(); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	client = helpdesk.NewClient(config.API, config.CacheDir, nil)
	return nil
}
