package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/useadvisor/advisor/internal/profile"
	"github.com/useadvisor/advisor/server"
	"github.com/useadvisor/advisor/store"
	"github.com/useadvisor/advisor/store/db"
)

const (
	greetingBanner = `
Advisor Gateway - persona-routed AI chat
`
)

var (
	version = "0.1.0"

	rootCmd = &cobra.Command{
		Use:   "advisor",
		Short: "An AI chat gateway that routes prompts to configurable advisor personas",
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			instanceProfile := &profile.Profile{
				Mode:               viper.GetString("mode"),
				Addr:               viper.GetString("addr"),
				Port:               viper.GetInt("port"),
				Data:               viper.GetString("data"),
				Driver:             viper.GetString("driver"),
				DSN:                viper.GetString("dsn"),
				Version:            version,
				LLMProvider:        viper.GetString("llm-provider"),
				LLMAPIKey:          viper.GetString("llm-api-key"),
				LLMBaseURL:         viper.GetString("llm-base-url"),
				LLMModel:           viper.GetString("llm-model"),
				LLMClassifierModel: viper.GetString("llm-classifier-model"),
				LLMMaxTokens:       viper.GetInt("llm-max-tokens"),
				LLMTemperature:     viper.GetFloat64("llm-temperature"),
			}
			if err := instanceProfile.Validate(); err != nil {
				return err
			}

			dbDriver, err := db.NewDBDriver(instanceProfile)
			if err != nil {
				return err
			}
			storeInstance := store.New(dbDriver, instanceProfile)
			defer storeInstance.Close()

			if err := storeInstance.Migrate(ctx); err != nil {
				return err
			}

			s, err := server.NewServer(ctx, instanceProfile, storeInstance)
			if err != nil {
				return err
			}

			printGreetings(instanceProfile)

			var group errgroup.Group
			group.Go(func() error {
				return s.Start()
			})
			group.Go(func() error {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
				select {
				case sig := <-sigCh:
					slog.Info("shutting down", "signal", sig.String())
				case <-ctx.Done():
				}

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer shutdownCancel()
				return s.Shutdown(shutdownCtx)
			})
			return group.Wait()
		},
	}
)

func init() {
	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	viper.SetDefault("mode", "dev")
	viper.SetDefault("addr", "")
	viper.SetDefault("port", 3000)
	viper.SetDefault("data", "")
	viper.SetDefault("driver", "sqlite")

	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 3000, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite", "mysql" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		panic(err)
	}

	viper.SetEnvPrefix("advisor")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func printGreetings(p *profile.Profile) {
	fmt.Print(greetingBanner)
	slog.Info("server profile",
		"version", p.Version,
		"mode", p.Mode,
		"driver", p.Driver,
		"addr", p.Addr,
		"port", p.Port,
		"llmProvider", p.LLMProvider,
		"llmModel", p.LLMModel,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("failed to start server", "err", err)
		os.Exit(1)
	}
}
