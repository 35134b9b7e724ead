package users

import (
	"bufio"
	"fmt"
	"net/mail"
	"os"

	"github.com/spf13/cobra"

	"github.com/RomanPopovMB/taskmanager/internal/auth"
	"github.com/RomanPopovMB/taskmanager/internal/config"
	"github.com/RomanPopovMB/taskmanager/internal/db/bunx"
	"github.com/RomanPopovMB/taskmanager/internal/db/models"
	"github.com/RomanPopovMB/taskmanager/internal/repository"
)

var (
	nameFlag     string
	emailFlag    string
	passwordFlag string
	roleFlag     string
	stdinFlag    bool
)

// createCmd creates an account directly in the database. Unlike the
// public registration endpoint it can assign any role, which makes it
// the way to bootstrap the first admin.
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new user account",
	RunE: func(cmd *cobra.Command, args []string) error {
		if nameFlag == "" {
			return fmt.Errorf("--name flag is required")
		}
		if _, err := mail.ParseAddress(emailFlag); err != nil {
			return fmt.Errorf("invalid email format: %w", err)
		}
		role, ok := auth.ParseRole(roleFlag)
		if !ok {
			return fmt.Errorf("role must be one of admin, user, viewer")
		}

		password := passwordFlag
		if stdinFlag {
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Enter password: ")
			if scanner.Scan() {
				password = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("read password: %w", err)
			}
		}
		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer bunx.Close(db)

		hash, err := auth.HashPassword(password, cfg.BcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}

		user := &models.User{
			Name:         nameFlag,
			Email:        emailFlag,
			Role:         string(role),
			PasswordHash: hash,
		}
		if err := repository.NewBunUserRepository(db).Create(cmd.Context(), user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}

		fmt.Printf("Created user %q (id=%d, role=%s)\n", user.Name, user.ID, user.Role)
		return nil
	},
}

func init() {
	createCmd.Flags().StringVar(&nameFlag, "name", "", "Account name (required)")
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address (required)")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (or use --stdin)")
	createCmd.Flags().StringVar(&roleFlag, "role", "user", "Role: admin, user, or viewer")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin")
}
