package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lithammer/shortuuid/v4"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verbalis/verbalis/internal/profile"
	"github.com/verbalis/verbalis/plugin/ai"
	"github.com/verbalis/verbalis/plugin/ai/router"
	"github.com/verbalis/verbalis/plugin/device"
	"github.com/verbalis/verbalis/plugin/speech"
	"github.com/verbalis/verbalis/internal/observability"
	"github.com/verbalis/verbalis/server/service/assistant"
	"github.com/verbalis/verbalis/store"
	"github.com/verbalis/verbalis/store/db"
)

const (
	greetingBanner = `Verbalis voice assistant. Type a command, or "exit" to quit.`
)

var (
	rootCmd = &cobra.Command{
		Use:   "verbalis",
		Short: "A voice assistant that turns spoken commands into device actions",
		Run: func(_ *cobra.Command, _ []string) {
			instanceProfile, err := buildProfile()
			if err != nil {
				slog.Error("failed to build profile", "error", err)
				return
			}

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			assistantStore, err := openStore(ctx, instanceProfile)
			if err != nil {
				slog.Error("failed to open store", "error", err)
				return
			}
			defer assistantStore.Close()

			routerService, err := buildRouter(instanceProfile)
			if err != nil {
				slog.Error("failed to build model router", "error", err)
				return
			}
			defer routerService.Close()
			routerService.ProbeAll(ctx)

			sessionID := shortuuid.New()
			processor := assistant.NewProcessor(routerService, assistantStore, assistantStore, sessionID)
			executor := assistant.NewExecutor(buildEffector(instanceProfile), buildSpeech(instanceProfile))

			c := make(chan os.Signal, 1)
			signal.Notify(c, os.Interrupt, syscall.SIGTERM)
			go func() {
				sig := <-c
				slog.Info("received signal, shutting down", "signal", sig.String())
				cancel()
			}()

			slog.Info("verbalis started",
				"version", instanceProfile.Version,
				"mode", instanceProfile.Mode,
				"driver", instanceProfile.Driver,
				"session", sessionID)
			runLoop(ctx, processor, executor, assistantStore, sessionID)

			snapshot := observability.GlobalMetrics().Snapshot()
			slog.Info("session summary",
				"turns", snapshot.TurnsTotal,
				"requests", snapshot.RequestTotal,
				"failed", snapshot.RequestFailed,
				"success_rate", fmt.Sprintf("%.1f%%", snapshot.SuccessRate()))
		},
	}

	contactCmd = &cobra.Command{
		Use:   "contact",
		Short: "Manage the assistant's phone book",
	}

	contactAddCmd = &cobra.Command{
		Use:   "add NAME PHONE",
		Short: "Add a contact",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, s *store.Store) error {
				contact, err := s.CreateContact(ctx, &store.Contact{
					Name:  args[0],
					Phone: args[1],
				})
				if err != nil {
					return err
				}
				fmt.Printf("added %s (%s)\n", contact.Name, contact.Phone)
				return nil
			})
		},
	}

	contactListCmd = &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withStore(func(ctx context.Context, s *store.Store) error {
				contacts, err := s.ListContacts(ctx, &store.FindContact{})
				if err != nil {
					return err
				}
				for _, contact := range contacts {
					fmt.Printf("%d\t%s\t%s\n", contact.ID, contact.Name, contact.Phone)
				}
				return nil
			})
		},
	}

	contactDeleteCmd = &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a contact by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return withStore(func(ctx context.Context, s *store.Store) error {
				var id int32
				if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
					return fmt.Errorf("invalid contact id %q", args[0])
				}
				return s.DeleteContact(ctx, &store.DeleteContact{ID: id})
			})
		},
	}
)

func init() {
	viper.SetEnvPrefix("verbalis")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("mode", "", `mode of the assistant, can be "prod" or "dev"`)
	rootCmd.PersistentFlags().String("data", "", "data directory")
	rootCmd.PersistentFlags().String("driver", "", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name (aka. DSN)")

	for _, flag := range []string{"mode", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	contactCmd.AddCommand(contactAddCmd, contactListCmd, contactDeleteCmd)
	rootCmd.AddCommand(contactCmd)
}

// buildProfile resolves configuration with flag > env > default precedence.
func buildProfile() (*profile.Profile, error) {
	instanceProfile := &profile.Profile{
		Mode:    viper.GetString("mode"),
		Data:    viper.GetString("data"),
		Driver:  viper.GetString("driver"),
		DSN:     viper.GetString("dsn"),
		Version: "0.1.0",
	}
	instanceProfile.FromEnv()
	if err := instanceProfile.Validate(); err != nil {
		return nil, err
	}

	setupLogger(instanceProfile)

	if !instanceProfile.HasBackend() {
		slog.Warn("no language-model backend configured; AI fallback and content generation will be unavailable")
	}
	return instanceProfile, nil
}

func setupLogger(p *profile.Profile) {
	level := slog.LevelInfo
	if p.IsDev() {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

func openStore(ctx context.Context, p *profile.Profile) (*store.Store, error) {
	driver, err := db.NewDBDriver(p)
	if err != nil {
		return nil, err
	}
	assistantStore := store.New(driver, p)
	if err := assistantStore.Migrate(ctx); err != nil {
		assistantStore.Close()
		return nil, err
	}
	return assistantStore, nil
}

func buildRouter(p *profile.Profile) (*router.Service, error) {
	cfg := ai.NewConfigFromProfile(p)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return router.NewService(router.NewPolicy(ai.NewBackends(cfg))), nil
}

func buildSpeech(p *profile.Profile) assistant.Speech {
	if p.SpeechEngine == "espeak" {
		cfg := speech.DefaultConfig()
		cfg.EspeakPath = p.EspeakPath
		return speech.NewEspeakOutput(cfg)
	}
	return speech.NewLogOutput()
}

func buildEffector(p *profile.Profile) assistant.Effector {
	if p.Effector == "adb" {
		cfg := device.DefaultConfig()
		cfg.ADBPath = p.ADBPath
		return device.NewADBEffector(cfg)
	}
	return device.NewNoopEffector()
}

// runLoop reads utterances line by line and runs each one through the
// full pipeline until exit or shutdown. The "recent" keyword shows this
// session's history instead of being treated as an utterance.
func runLoop(ctx context.Context, processor *assistant.Processor, executor *assistant.Executor, assistantStore *store.Store, sessionID string) {
	fmt.Println(greetingBanner)

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		fmt.Print("> ")
		select {
		case <-ctx.Done():
			fmt.Println()
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if strings.TrimSpace(line) == "" {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(line), "recent") {
				printRecent(ctx, assistantStore, sessionID)
				continue
			}

			request := processor.Process(ctx, line)
			result := executor.Execute(ctx, request)
			fmt.Println(result.Message)

			if request.Action == assistant.ActionExit {
				return
			}
		}
	}
}

// printRecent shows the current session's last exchanges, newest first.
func printRecent(ctx context.Context, assistantStore *store.Store, sessionID string) {
	limit := 10
	exchanges, err := assistantStore.ListChatExchanges(ctx, &store.FindChatExchange{
		SessionID: &sessionID,
		Limit:     &limit,
	})
	if err != nil {
		slog.Warn("failed to list chat history", "error", err)
		return
	}
	if len(exchanges) == 0 {
		fmt.Println("no exchanges yet this session")
		return
	}
	for _, exchange := range exchanges {
		fmt.Printf("[%s via %s] %s -> %s\n",
			exchange.Intent, exchange.Backend, exchange.UserInput, exchange.Reply)
	}
}

// withStore runs fn against a freshly opened store, for the one-shot
// contact subcommands.
func withStore(fn func(ctx context.Context, s *store.Store) error) error {
	instanceProfile, err := buildProfile()
	if err != nil {
		return err
	}

	ctx := context.Background()
	assistantStore, err := openStore(ctx, instanceProfile)
	if err != nil {
		return err
	}
	defer assistantStore.Close()

	return fn(ctx, assistantStore)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
