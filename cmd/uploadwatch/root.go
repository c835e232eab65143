package main

import (
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/alexanderjulianmartinez/upload-watch/internal/config"
)

// newRootCmd builds the command tree. Each call gets its own viper instance so
// flags and environment are resolved per invocation.
func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("UPLOADWATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:                "uploadwatch",
		Short:              "Validate tabular uploads against a column schema.",
		Long:               `uploadwatch checks that an uploaded CSV or Parquet file carries the required columns with the expected types, then summarizes its duration column.`,
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().String("config", "", "Path to config.yaml")
	root.PersistentFlags().Bool("verbose", false, "Log progress to stderr")
	mustBind(v, root.PersistentFlags())

	root.AddCommand(newCheckCmd(v), newSchemasCmd(v))
	return root
}

func mustBind(v *viper.Viper, flags *pflag.FlagSet) {
	if err := v.BindPFlags(flags); err != nil {
		panic(fmt.Sprintf("bind flags: %v", err))
	}
}

// loadConfig reads the config file when one is named, otherwise defaults.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.LoadConfig(path)
}

func newLogger(v *viper.Viper, w io.Writer) *log.Logger {
	if !v.GetBool("verbose") {
		w = io.Discard
	}
	return log.New(w, "uploadwatch: ", log.LstdFlags)
}

// parseBoolString accepts yes/no/true/false/1/0, case-insensitive.
func parseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
