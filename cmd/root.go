package cmd

import (
	"github.com/jsphweid/scorekit/config"
	"github.com/jsphweid/scorekit/constants"
	"github.com/jsphweid/scorekit/logger"
	"github.com/spf13/cobra"
)

var (
	cfgPath  string
	logLevel string
	cfg      = defaultConfig()
)

var rootCmd = &cobra.Command{
	Use:   "scorekit",
	Short: "Music theory to MIDI and back",
	Long: `scorekit builds scales, chords and chord progressions, renders them to
Standard MIDI Files and reads MIDI files back into notes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", constants.GetConfigPath(), "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level, overrides the config file")
}

func defaultConfig() config.Config {
	c := config.NewConfig()
	c.Logger = logger.GetProjectLogger()
	return c
}

func setup() error {
	c, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
	if err := logger.SetLevel(c.LogLevel); err != nil {
		return err
	}
	c.Logger = logger.GetProjectLogger()
	cfg = c
	return nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
