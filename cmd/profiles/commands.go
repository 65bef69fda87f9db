package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aussiebroadwan/profiles/internal/profiles/app"
	"github.com/aussiebroadwan/profiles/internal/profiles/domain"
	"github.com/aussiebroadwan/profiles/internal/profiles/service"
	"github.com/aussiebroadwan/profiles/pkg/cryptox"
	"github.com/spf13/cobra"
)

// superuserPasswordEnv lets scripts supply the password without a flag.
const superuserPasswordEnv = "PROFILES_SUPERUSER_PASSWORD"

func newRootCmd() *cobra.Command {
	var databaseFile string

	root := &cobra.Command{
		Use:           "profiles",
		Short:         "Email-login account service",
		Version:       app.BuildVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&databaseFile, "database", "",
		"path to the SQLite database (overrides PROFILES_DATABASE_FILE)")

	loadConfig := func() app.Config {
		cfg := app.LoadConfig()
		if databaseFile != "" {
			cfg.DatabaseFile = databaseFile
		}
		return cfg
	}

	root.AddCommand(
		newServeCmd(loadConfig),
		newMigrateCmd(loadConfig),
		newCreateSuperuserCmd(loadConfig),
		newVersionCmd(),
	)
	return root
}

func newServeCmd(loadConfig func() app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := app.New(loadConfig())
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

func newMigrateCmd(loadConfig func() app.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			db, err := app.OpenStore(cfg, app.NewLogger(cfg))
			if err != nil {
				return err
			}
			return db.Close()
		},
	}
}

func newCreateSuperuserCmd(loadConfig func() app.Config) *cobra.Command {
	var email, username, password string

	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create an account with every privilege",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields := map[string]string{
				domain.FieldEmail:    email,
				domain.FieldUsername: username,
			}
			required := append([]string{domain.AccountIdentity.LoginField}, domain.AccountIdentity.RequiredSignupFields...)
			var missing []string
			for _, name := range required {
				if strings.TrimSpace(fields[name]) == "" {
					missing = append(missing, "--"+name)
				}
			}
			if len(missing) > 0 {
				return fmt.Errorf("missing required flags: %s", strings.Join(missing, ", "))
			}

			generated := false
			if password == "" {
				password = os.Getenv(superuserPasswordEnv)
			}
			if password == "" {
				var err error
				if password, err = cryptox.GeneratePassword(); err != nil {
					return err
				}
				generated = true
			}

			cfg := loadConfig()
			logger := app.NewLogger(cfg)
			cryptox.SetPepperPath(cfg.PepperFile)

			db, err := app.OpenStore(cfg, logger)
			if err != nil {
				return err
			}
			defer db.Close()

			accounts := &service.AccountService{Store: db}
			acc, err := accounts.CreateSuperuser(cmd.Context(), username, email, password)
			if err != nil {
				var verr *domain.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("invalid --%s: %s", verr.Field, verr.Reason)
				}
				return fmt.Errorf("failed to create superuser: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Superuser %s created (id %s)\n", acc.String(), acc.ID)
			if generated {
				fmt.Fprintf(out, "Generated password: %s\n", password)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, domain.FieldEmail, "", "login email (required)")
	cmd.Flags().StringVar(&username, domain.FieldUsername, "", "display username (required)")
	cmd.Flags().StringVar(&password, domain.FieldPassword, "",
		"password (default: $"+superuserPasswordEnv+", or a generated one)")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "profiles version %s\n", app.BuildVersion)
		},
	}
}
