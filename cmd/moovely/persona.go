package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/moovely/greener/internal/config"
	"github.com/moovely/greener/internal/persona"
)

// openPersonaStore picks the persona backend: an explicit --store file,
// Redis when REDIS_ADDR is set, or the file in the user config dir
func openPersonaStore(cmd *cobra.Command) (persona.Store, func(), error) {
	path, _ := cmd.Flags().GetString("store")
	if path != "" {
		return persona.NewFileStore(path), func() {}, nil
	}

	if cfg, err := config.LoadServer(); err == nil && cfg.Redis.Addr != "" {
		client, err := persona.Connect(cmd.Context(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to redis at %s: %w", cfg.Redis.Addr, err)
		}
		return persona.NewRedisStore(client, cfg.Redis.SessionTTL), func() { _ = client.Close() }, nil
	}

	path, err := persona.DefaultFilePath()
	if err != nil {
		return nil, nil, err
	}
	return persona.NewFileStore(path), func() {}, nil
}

func personaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "persona",
		Short: "List preset households and manage the saved persona",
	}
	cmd.PersistentFlags().String("session", "", "Session ID the persona is saved under")
	cmd.PersistentFlags().String("store", "", "Persona file (default: Redis if REDIS_ADDR is set, else user config dir)")

	cmd.AddCommand(personaListCmd())
	cmd.AddCommand(personaSaveCmd())
	cmd.AddCommand(personaShowCmd())
	cmd.AddCommand(personaClearCmd())
	return cmd
}

func personaListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the preset personas",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, p := range persona.Presets() {
				fmt.Fprintf(out, "%-20s %-20s %s\n", p.ID, p.Label, p.Description)
			}
		},
	}
}

func personaSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save [persona-id]",
		Short: "Save a persona for a session, creating a session ID if none is given",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := persona.ParseID(args[0])
			if err != nil {
				return err
			}

			sessionID, _ := cmd.Flags().GetString("session")
			if sessionID == "" {
				sessionID = persona.NewSessionID()
			} else if err := persona.ValidateSessionID(sessionID); err != nil {
				return err
			}

			store, closeStore, err := openPersonaStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Save(cmd.Context(), sessionID, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %s for session %s\n", id, sessionID)
			return nil
		},
	}
}

func personaShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the persona saved for a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := requireSession(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := openPersonaStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			p, err := persona.Resolve(cmd.Context(), store, sessionID)
			if errors.Is(err, persona.ErrNotFound) {
				fmt.Fprintf(cmd.OutOrStdout(), "No persona saved for session %s\n", sessionID)
				return nil
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", p.Label, p.ID)
			fmt.Fprintf(out, "  %s\n", p.Description)
			fmt.Fprintf(out, "  bed: %s, commute: %s, childcare: %t, lifestyle: x%s\n",
				p.Options.BedSize, p.Options.CommuteType, p.Options.IncludeChildcare, p.Options.LifestyleMultiplier.String())
			return nil
		},
	}
}

func personaClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget the persona saved for a session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, err := requireSession(cmd)
			if err != nil {
				return err
			}
			store, closeStore, err := openPersonaStore(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := store.Clear(cmd.Context(), sessionID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared persona for session %s\n", sessionID)
			return nil
		},
	}
}

func requireSession(cmd *cobra.Command) (string, error) {
	sessionID, _ := cmd.Flags().GetString("session")
	if sessionID == "" {
		return "", errors.New("--session is required")
	}
	return sessionID, persona.ValidateSessionID(sessionID)
}
