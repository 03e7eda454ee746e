package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"todohub/internal/bootstrap"
	"todohub/internal/platform/config"
	apperrors "todohub/internal/platform/errors"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			_, _ = fmt.Fprintln(os.Stderr, "not signed in — run `todohub login` first")
		} else {
			_, _ = fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "todohub",
		Short:         "Terminal client for the todohub todo and chat backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}

	root.AddCommand(newTUICmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newRegisterCmd())
	root.AddCommand(newGoogleCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoAmICmd())
	root.AddCommand(newUsersCmd())
	root.AddCommand(newTodoCmd())
	return root
}

func loadApp() (*bootstrap.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the todohub terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(app)
		},
	}
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.Login(context.Background(), email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", out.Name, out.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var username, email, password string
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.Register(context.Background(), username, email, password)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "welcome, %s\n", out.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newGoogleCmd() *cobra.Command {
	var idToken string
	cmd := &cobra.Command{
		Use:   "google",
		Short: "Sign in with a Google identity token",
		Long: "Exchanges a Google-issued identity token for a backend session.\n" +
			"Mint the token out of band for the OAuth client configured as\n" +
			"google_client_id (TODOHUB_GOOGLE_CLIENT_ID), then pass it via --id-token.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.LoginWithGoogle(context.Background(), idToken)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", out.Name, out.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&idToken, "id-token", "", "Google-issued identity token")
	_ = cmd.MarkFlagRequired("id-token")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out (always succeeds locally)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			if err := app.AuthCLI.Logout(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoAmICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session identity",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			out, err := app.AuthCLI.WhoAmI(context.Background())
			if err != nil {
				return err
			}
			if out.UserID == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> (%s)\n", out.Name, out.Email, out.UserID)
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			users, err := app.AuthCLI.ListUsers(context.Background())
			if err != nil {
				return err
			}
			for _, u := range users {
				name := u.Name
				if name == "" {
					name = u.Email
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", u.ID, name)
			}
			return nil
		},
	}
}

func newTodoCmd() *cobra.Command {
	todo := &cobra.Command{Use: "todo", Short: "Manage todos"}

	var filter string
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List todos",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			items, err := app.TodoCLI.List(context.Background(), filter)
			if err != nil {
				return err
			}
			for _, item := range items {
				mark := " "
				if item.Completed {
					mark = "x"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s\t%s\n", mark, item.ID, item.Title)
			}
			return nil
		},
	}
	listCmd.Flags().StringVar(&filter, "filter", "all", "all|active|completed")

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			item, err := app.TodoCLI.Add(context.Background(), args[0])
			if err != nil {
				return err
			}
			if item.ID == "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "nothing to add")
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", item.Title, item.ID)
			return nil
		},
	}

	doneCmd := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a todo completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			item, err := app.TodoCLI.SetCompleted(context.Background(), args[0], true)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "done: %s\n", item.Title)
			return nil
		},
	}

	undoneCmd := &cobra.Command{
		Use:   "undone <id>",
		Short: "Mark a todo active again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			item, err := app.TodoCLI.SetCompleted(context.Background(), args[0], false)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "active: %s\n", item.Title)
			return nil
		},
	}

	editCmd := &cobra.Command{
		Use:   "edit <id> <title>",
		Short: "Rename a todo",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			item, err := app.TodoCLI.Rename(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "renamed to %s\n", item.Title)
			return nil
		},
	}

	rmCmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			if err := app.TodoCLI.Remove(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "deleted")
			return nil
		},
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show completion stats",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			stats, err := app.TodoCLI.Stats(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d total, %d done, %d active (%d%%)\n",
				stats.Total, stats.Completed, stats.Active, stats.Percent)
			return nil
		},
	}

	todo.AddCommand(listCmd, addCmd, doneCmd, undoneCmd, editCmd, rmCmd, statsCmd)
	return todo
}
