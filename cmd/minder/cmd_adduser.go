package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/minderapp/minder/internal/auth"
	"github.com/minderapp/minder/internal/store"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var addUserCmd = &cobra.Command{
	Use:   "adduser",
	Short: "Register an account from the terminal",
	RunE:  runAddUser,
}

func runAddUser(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stores, err := store.Open(cfg.DataDir, store.UsersStore, store.FailedSigninLog)
	if err != nil {
		return err
	}
	defer stores.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')

	fmt.Print("Name (blank to stay anonymous): ")
	name, _ := reader.ReadString('\n')

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("failed to read password: %w", err)
	}

	verifier := auth.NewVerifier(stores, auth.LoadPasswordSet(cfg.CommonPasswords))
	user, err := verifier.Register(
		strings.TrimSpace(username),
		string(password),
		strings.TrimSpace(name),
		strings.TrimSpace(email),
	)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (%s)\n", user.Username, user.ID)
	return nil
}
