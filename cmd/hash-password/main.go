// Command hash-password prints bcrypt hashes for seeding the Notion user
// database. Passwords are read from the arguments, or one per line from
// stdin when none are given.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ktgktg/blogsmith/internal/service/auth"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "hash-password [password...]",
		Short:        "Print bcrypt hashes for the user database",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			passwords := args
			if len(passwords) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				for scanner.Scan() {
					if line := strings.TrimSpace(scanner.Text()); line != "" {
						passwords = append(passwords, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("failed to read passwords: %w", err)
				}
			}

			for _, password := range passwords {
				hash, err := auth.HashPassword(password)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
			}
			return nil
		},
	}
}
