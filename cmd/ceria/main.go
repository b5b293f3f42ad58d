package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ceria/internal/config"
	"ceria/internal/gateway"
	"ceria/internal/session"
	"ceria/internal/token"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ceria",
		Short:         "Ramadhan Ceria edge gateway and client tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newWhoamiCommand())
	return cmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the edge gateway in front of the rendering upstream",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			srv, err := gateway.New(*cfg, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.Run(ctx)
		},
	}
}

func newWhoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami [credential]",
		Short: "Decode the stored credential, or one given as an argument",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var credential string
			if len(args) == 1 {
				credential = args[0]
			} else {
				cfg := config.Load()
				store, err := session.OpenStore(cfg.StorePath)
				if err != nil {
					return fmt.Errorf("opening store: %w", err)
				}
				defer store.Close()
				credential, err = store.Credential()
				if err != nil {
					return fmt.Errorf("reading credential: %w", err)
				}
			}
			if credential == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}

			identity, err := token.Decode(credential)
			if err != nil {
				return fmt.Errorf("decoding credential: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID:       %s\n", identity.ID)
			fmt.Fprintf(out, "Name:     %s\n", identity.Name)
			fmt.Fprintf(out, "Role:     %s\n", identity.Role)
			fmt.Fprintf(out, "Family:   %s\n", identity.FamilyID)
			if identity.Avatar != "" {
				fmt.Fprintf(out, "Avatar:   %s\n", identity.Avatar)
			}
			return nil
		},
	}
}
