package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagAvatar string

var loginCmd = &cobra.Command{
	Use:   "login <name> <email>",
	Short: "Sign in (upserts the identity server-side)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		u, err := s.coord.Login(cmd.Context(), args[0], args[1], flagAvatar)
		if err != nil {
			return err
		}
		fmt.Printf("logged in as %s <%s>\n", u.Name, u.Email)
		printMode(s)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out (keeps the offline task snapshot)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		if err := s.coord.Logout(); err != nil {
			return err
		}
		fmt.Println("logged out")
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		s.coord.List(cmd.Context())
		if u, ok := s.coord.User(); ok {
			fmt.Printf("user: %s <%s>\n", u.Name, u.Email)
		} else {
			fmt.Println("user: not logged in")
		}
		printMode(s)
		return nil
	},
}

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative views",
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users with task aggregates (online only)",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newSession()
		if err != nil {
			return err
		}
		list, err := s.coord.AdminUsers(cmd.Context())
		if err != nil {
			return fmt.Errorf("admin listing needs the API: %w", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tEMAIL\tTASKS\tCOMPLETED\tTOTAL SPENT\tLAST LOGIN")
		for _, u := range list {
			last := ""
			if u.LastLogin != nil {
				last = u.LastLogin.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.2f\t%s\n",
				u.Name, u.Email, u.TotalTasks, u.CompletedTasks, u.TotalSpent, last)
		}
		return w.Flush()
	},
}

func init() {
	loginCmd.Flags().StringVar(&flagAvatar, "avatar", "", "avatar URL")
	adminCmd.AddCommand(adminUsersCmd)
	rootCmd.AddCommand(loginCmd, logoutCmd, statusCmd, adminCmd)
}
