package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carlosbarreraacuna/helpdesk-frontend/internal/session"
)

var (
	loginFlag    string
	passwordFlag string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and keep the token for later commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		login := strings.TrimSpace(loginFlag)
		if login == "" {
			fmt.Fprint(os.Stderr, "Username or email: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil && line == "" {
				return fmt.Errorf("read login: %w", err)
			}
			login = strings.TrimSpace(line)
		}
		password := passwordFlag
		if password == "" {
			p, err := readPassword()
			if err != nil {
				return err
			}
			password = p
		}
		if login == "" || password == "" {
			return errors.New("login and password are required")
		}

		res, err := cli.api.Login(cmd.Context(), login, password)
		if err != nil {
			return explain(err, "Invalid credentials")
		}
		if res.Token == "" {
			return errors.New("the API did not return a token")
		}
		if err := cli.store.Save(session.Credentials{Token: res.Token, User: res.User}); err != nil {
			return fmt.Errorf("save credentials: %w", err)
		}
		cli.log.Debug().Str("path", cli.store.Path()).Msg("credentials saved")
		fmt.Fprintf(cli.out, "Logged in as %s (%s)\n", res.User.Name, res.User.RoleName())
		return nil
	},
}

// readPassword prompts on the terminal with echo off.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal for the password prompt, use --password")
	}
	fmt.Fprint(os.Stderr, "Password: ")
	raw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Revoke the token and forget it locally",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cli.store.Token(cmd.Context()) != "" {
			if err := cli.api.Logout(cmd.Context()); err != nil {
				cli.log.Warn().Err(err).Msg("upstream logout failed")
			}
		}
		if err := cli.store.Clear(); err != nil {
			return fmt.Errorf("clear credentials: %w", err)
		}
		fmt.Fprintln(cli.out, "Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := requireLogin(); err != nil {
			return err
		}
		u, err := cli.api.Me(cmd.Context())
		if err != nil {
			return explain(err, "Could not load the current user")
		}
		if jsonFlag {
			return printJSON(u)
		}
		fmt.Fprintf(cli.out, "%s <%s>\nrole: %s\n", u.Name, u.Email, u.RoleName())
		if u.Area != nil {
			fmt.Fprintf(cli.out, "area: %s\n", u.Area.Name)
		}
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginFlag, "login", "", "username or email")
	loginCmd.Flags().StringVar(&passwordFlag, "password", "", "password (prompted when omitted)")
}
