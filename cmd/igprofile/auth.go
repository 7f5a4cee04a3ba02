package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"igprofile/pkg/auth"
	"igprofile/pkg/config"
)

// authCmd represents the auth command
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage stored Instagram cookies",
	Long: `Manage Instagram session cookies stored on this machine.

Cookies are stored using:
  - System keychain (when available)
  - Encrypted file with PBKDF2 key derivation

INSTAGRAM_COOKIE is always consulted as a read-only fallback.
Never share your cookie or config files!`,
}

// setCmd represents the auth set command
var setCmd = &cobra.Command{
	Use:   "set [name]",
	Short: "Store a session cookie",
	Long: `Store the Cookie header of a logged-in Instagram browser session.

The cookie must contain sessionid, ds_user_id and csrftoken. Input is hidden
when reading from a terminal. Run 'igprofile auth guide' to see how to copy it.`,
	Example: `  # Store the default account
  igprofile auth set

  # Store a named account
  igprofile auth set work`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAuthSet,
}

// listCmd represents the auth list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored accounts",
	Long:  `List stored accounts with masked cookie values.`,
	Args:  cobra.NoArgs,
	RunE:  runAuthList,
}

// deleteCmd represents the auth delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Remove a stored account",
	Args:  cobra.ExactArgs(1),
	RunE:  runAuthDelete,
}

// guideCmd represents the auth guide command
var guideCmd = &cobra.Command{
	Use:   "guide",
	Short: "Show how to copy the session cookie from a browser",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		auth.WriteCookieGuide(cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(authCmd)
	authCmd.AddCommand(setCmd)
	authCmd.AddCommand(listCmd)
	authCmd.AddCommand(deleteCmd)
	authCmd.AddCommand(guideCmd)
}

func runAuthSet(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	name := auth.DefaultAccountName
	if len(args) > 0 {
		name = args[0]
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Paste the Instagram cookie for '%s': ", name)
	cookie, err := readSecret(cmd.InOrStdin())
	fmt.Fprintln(cmd.OutOrStdout())
	if err != nil {
		return fmt.Errorf("failed to read cookie: %w", err)
	}

	account := &auth.Account{
		Name:         name,
		Cookie:       cookie,
		LastModified: time.Now(),
	}
	if err := manager.Store(account); err != nil {
		return fmt.Errorf("failed to store cookie: %w", err)
	}

	printer.Success(fmt.Sprintf("Account saved: %s", name))
	printer.Info("Cookie", auth.SanitizeAccount(account).Cookie)
	auth.WriteQuickGuide(cmd.OutOrStdout())
	return nil
}

func runAuthList(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	accounts, err := manager.List()
	if err != nil {
		return fmt.Errorf("failed to list accounts: %w", err)
	}
	if len(accounts) == 0 {
		printer.Warning("No stored accounts", "run 'igprofile auth set' to add one")
		return nil
	}

	for _, account := range accounts {
		safe := auth.SanitizeAccount(account)
		printer.Highlight(safe.Name)
		printer.Info("  Cookie", safe.Cookie)
		if !safe.LastModified.IsZero() {
			printer.Info("  Updated", safe.LastModified.Format(time.RFC1123))
		} else {
			printer.Dim("  from " + config.CookieEnvVar)
		}
	}
	return nil
}

func runAuthDelete(cmd *cobra.Command, args []string) error {
	manager, err := auth.NewManager()
	if err != nil {
		return fmt.Errorf("failed to initialize credential manager: %w", err)
	}

	if err := manager.Delete(args[0]); err != nil {
		if errors.Is(err, auth.ErrCredentialsNotFound) {
			printer.Warning("No stored account named", args[0])
			return nil
		}
		return err
	}

	printer.Success("Account removed: " + args[0])
	return nil
}

// readSecret reads one line, hiding the input when in is a terminal
func readSecret(in io.Reader) (string, error) {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
