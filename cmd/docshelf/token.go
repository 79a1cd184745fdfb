package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/sagarc03/docshelf/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Print a session token for a user",
	Long: `Check a username and password and print the session token the web
application would issue for them. Missing values are prompted for.

The token can be passed as the "auth" cookie, with its space escaped:

  curl --cookie "auth=$(docshelf token -u user1 -p user123 | sed 's/ /+/')" http://localhost:8000/`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

var (
	tokenUsername string
	tokenPassword string
)

func init() {
	tokenCmd.Flags().StringVarP(&tokenUsername, "username", "u", "", "username")
	tokenCmd.Flags().StringVarP(&tokenPassword, "password", "p", "", "password")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	auth, err := newAuthenticator(cfg)
	if err != nil {
		return err
	}

	username := tokenUsername
	if username == "" {
		prompt := promptui.Prompt{
			Label: "Username",
			Validate: func(input string) error {
				if input == "" {
					return errors.New("username is required")
				}
				return nil
			},
		}
		if username, err = prompt.Run(); err != nil {
			return handlePromptError(err)
		}
	}

	password := tokenPassword
	if password == "" {
		prompt := promptui.Prompt{
			Label: "Password",
			Mask:  '*',
		}
		if password, err = prompt.Run(); err != nil {
			return handlePromptError(err)
		}
	}

	token, ok := auth.CheckCredentials(username, password)
	if !ok {
		return errors.New("invalid username or password")
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) {
		fmt.Println("\nCancelled.")
		os.Exit(0)
	}
	if errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return err
}
