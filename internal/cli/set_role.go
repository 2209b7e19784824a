package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/libreshelf/library/internal/config"
	"github.com/libreshelf/library/internal/database"
	"github.com/libreshelf/library/internal/database/users"
	"github.com/libreshelf/library/internal/entities"
)

// SetRoleCommand assigns a role to an existing user. It runs in a trusted
// operator context and bypasses the access policy entirely.
type SetRoleCommand struct {
	Email        string
	Role         string
	DatabasePath string
}

// NewSetRoleCommand creates a new SetRoleCommand
func NewSetRoleCommand() *SetRoleCommand {
	return &SetRoleCommand{}
}

// ParseFlags parses command line flags
func (cmd *SetRoleCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("set-role", flag.ExitOnError)

	fs.StringVar(&cmd.Email, "email", "", "Email of the user to update")
	fs.StringVar(&cmd.Role, "role", "", "Role to assign: admin or client")
	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s set-role -email <email> -role <admin|client> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Assign a role to an existing user.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s set-role -email admin@example.com -role admin\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s set-role -email user@example.com -role client -db ./library.db\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Email == "" {
		return fmt.Errorf("-email is required")
	}
	if cmd.Role == "" {
		return fmt.Errorf("-role is required")
	}

	return nil
}

// Run executes the set-role command
func (cmd *SetRoleCommand) Run() error {
	role := entities.UserRole(cmd.Role)
	if !role.IsValid() {
		return fmt.Errorf("role must be admin or client, got %q", cmd.Role)
	}

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	repo := users.NewRepository(db.DB)
	if err := repo.SetUserRole(cmd.Email, role); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return fmt.Errorf("user %s not found", cmd.Email)
		}
		return fmt.Errorf("failed to update role: %w", err)
	}

	fmt.Printf("Role of %s set to %s\n", cmd.Email, cmd.Role)
	return nil
}
