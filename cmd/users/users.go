package users

import "github.com/spf13/cobra"

// UsersCmd groups the user management subcommands.
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage user accounts",
	Long:  `Commands for managing user accounts directly against the database.`,
}

func init() {
	UsersCmd.AddCommand(createCmd)
}
