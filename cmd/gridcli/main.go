package main

import (
	"Contact-Search/internal/app/datasource"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var v = viper.New()

var rootCmd = &cobra.Command{
	Use:   "gridcli",
	Short: "Page through the contact search API the way the results grid does",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(v.GetString("log_level"))
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	v.SetConfigName("gridcli")
	v.SetConfigType("toml")
	v.AddConfigPath("config")
	v.AddConfigPath(".")
	v.SetEnvPrefix("GRIDCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	flags.String("base-url", "http://localhost:8080/", "search service base URL")
	flags.Int("block-size", datasource.DefaultBlockSize, "rows per block, must match the server page size")
	flags.Duration("timeout", 10*time.Second, "HTTP timeout per request")
	flags.String("query", "", "search text")
	flags.String("field", datasource.FieldAll, `field to search, or "all"`)
	flags.String("log-level", "warn", "log level")

	for _, name := range []string{"base-url", "block-size", "timeout", "query", "field", "log-level"} {
		_ = v.BindPFlag(strings.ReplaceAll(name, "-", "_"), flags.Lookup(name))
	}

	rootCmd.AddCommand(fetchCmd, scrollCmd)
}

func newSource() (*datasource.PagedResultsSource, error) {
	return datasource.New(datasource.Config{
		BaseURL:   v.GetString("base_url"),
		BlockSize: v.GetInt("block_size"),
		Timeout:   v.GetDuration("timeout"),
	})
}

func currentQuery() datasource.Query {
	return datasource.Query{
		Text:  v.GetString("query"),
		Field: v.GetString("field"),
	}
}

func main() {
	cobra.OnInitialize(func() {
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				logrus.Warnf("gridcli config not loaded: %v", err)
			}
		}
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
