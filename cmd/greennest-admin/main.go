package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/redmonkez12/greennest-api/cmd/greennest-admin/ui"
	"github.com/redmonkez12/greennest-api/internal/auth"
	"github.com/redmonkez12/greennest-api/internal/config"
	"github.com/redmonkez12/greennest-api/internal/database"
	"github.com/redmonkez12/greennest-api/internal/user"
)

// adminPool keeps the CLI to a single connection.
var adminPool = database.PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1}

func main() {
	rootCmd := &cobra.Command{
		Use:           "greennest-admin",
		Short:         "Operate a GreenNest deployment",
		Long:          "Run database migrations and manage user accounts against the database configured in the environment or .env.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE:  runMigrateUp,
	}

	downCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE:  runMigrateDown,
	}
	downCmd.Flags().BoolP("yes", "y", false, "Skip confirmation prompt")

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		RunE:  runMigrateStatus,
	}

	migrateCmd.AddCommand(upCmd, downCmd, statusCmd)

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Long:  "Create a user account. Missing fields are asked for interactively.",
		RunE:  runCreateUser,
	}
	// Flags for non-interactive mode (CI/scripting)
	createUserCmd.Flags().String("name", "", "Display name")
	createUserCmd.Flags().String("email", "", "Email address")
	createUserCmd.Flags().String("password", "", "Password (prompted when omitted)")

	userCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(migrateCmd, userCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}

func openDB(ctx context.Context) (*sql.DB, error) {
	dbCfg := config.LoadDatabase()
	return database.Open(ctx, dbCfg.ConnectionString(), adminPool)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Migrate(cmd.Context(), db); err != nil {
		return err
	}

	ui.PrintSuccess("Migrations applied")
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")

	if !yes {
		ok, err := ui.Confirm("Roll back the latest migration?", "Dropped tables lose their data.")
		if err != nil {
			return fmt.Errorf("prompt cancelled: %w", err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.Rollback(cmd.Context(), db); err != nil {
		return err
	}

	ui.PrintSuccess("Rolled back one migration")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	ui.PrintTitle("Migration status")
	return database.Status(cmd.Context(), db)
}

func runCreateUser(cmd *cobra.Command, args []string) error {
	var input ui.NewUser
	input.Name, _ = cmd.Flags().GetString("name")
	input.Email, _ = cmd.Flags().GetString("email")
	input.Password, _ = cmd.Flags().GetString("password")

	if err := ui.RunUserForm(&input); err != nil {
		return fmt.Errorf("form cancelled: %w", err)
	}
	if err := input.Validate(); err != nil {
		return err
	}

	hash, err := auth.NewHasher().Hash(input.Password)
	if err != nil {
		return err
	}

	db, err := openDB(cmd.Context())
	if err != nil {
		return err
	}
	defer db.Close()

	created, err := user.NewRepository(database.NewBunDB(db)).Create(cmd.Context(), input.Name, input.Email, hash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return fmt.Errorf("a user with email %s already exists", input.Email)
		}
		return err
	}

	ui.PrintSuccess("User created", "id: "+created.ID.String(), "email: "+created.Email)
	return nil
}
