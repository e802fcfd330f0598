package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"tempo/internal/config"
	"tempo/internal/intent"
	"tempo/internal/llm"
	"tempo/internal/logging"
	"tempo/internal/resolver"
)

var (
	green = color.New(color.FgGreen).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	gray  = color.New(color.FgHiBlack).SprintFunc()
)

// isTTY checks if the current environment has a TTY available.
func isTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

func main() {
	if !isTTY() {
		color.NoColor = true
	}
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Natural-language calendar intent engine",
		Long:          "tempo turns free-text commands like \"Gym tomorrow from 6pm to 8pm\" into structured calendar intents.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "path to a YAML config file")
	flags.String("model", "", "generation model name")
	flags.String("base-url", "", "generation service base URL")
	flags.Int("timeout", 0, "generation timeout in seconds")
	flags.Bool("no-llm", false, "disable the generative fallback")
	flags.String("log-level", "", "log level (debug, info, warn, error)")

	viper.SetEnvPrefix("TEMPO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	_ = viper.BindPFlags(flags)

	root.AddCommand(newParseCmd())
	return root
}

func newParseCmd() *cobra.Command {
	var nowFlag string

	cmd := &cobra.Command{
		Use:   "parse [text...]",
		Short: "Resolve one command into a structured intent",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logging.SetLevel(logging.ParseLevel(cfg.LogLevel))

			now := time.Now()
			if nowFlag != "" {
				now = intent.ParseTimestamp(nowFlag)
				if now.IsZero() {
					return fmt.Errorf("invalid --now value %q", nowFlag)
				}
			}

			engine, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			text := strings.Join(args, " ")
			result := engine.Resolve(cmd.Context(), text, now)

			data, err := intent.Encode(result)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n%s\n",
				green("⏺"), cyan(string(result.Kind())), string(data))
			fmt.Fprintln(cmd.OutOrStdout(), gray(fmt.Sprintf("resolved against %s", now.Format(intent.WireTimeLayout))))
			return nil
		},
	}

	cmd.Flags().StringVar(&nowFlag, "now", "", "reference time override (e.g. 2024-06-01T08:00:00)")
	return cmd
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return config.Config{}, err
	}

	// Flags win over file and environment.
	if v := viper.GetString("model"); v != "" {
		cfg.LLM.Model = v
	}
	if v := viper.GetString("base-url"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := viper.GetInt("timeout"); v > 0 {
		cfg.LLM.Timeout = v
	}
	if viper.GetBool("no-llm") {
		cfg.GenerativeDisabled = true
	}
	if v := viper.GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	return cfg, nil
}

func buildEngine(cfg config.Config) (*resolver.Engine, error) {
	var generator llm.Generator
	if !cfg.GenerativeDisabled {
		generator = llm.NewOllamaClient(cfg.LLM)
		cached, err := llm.WithCache(generator, llm.CacheConfig{
			MaxSize: cfg.CacheSize,
			TTL:     cfg.CacheTTL(),
		})
		if err != nil {
			return nil, err
		}
		generator = cached
	}

	return resolver.New(generator,
		resolver.WithTimeout(time.Duration(cfg.LLM.Timeout)*time.Second))
}
