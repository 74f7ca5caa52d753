// Command rp is the companion CLI for the agent: credential management,
// session login, history inspection and a provider smoke test.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/browser"

	"github.com/imjacoblopez/replypilot/internal/auth"
	"github.com/imjacoblopez/replypilot/internal/config"
	"github.com/imjacoblopez/replypilot/internal/genclient"
	"github.com/imjacoblopez/replypilot/internal/settings"
	"github.com/imjacoblopez/replypilot/internal/store"
)

const usage = `Usage: rp <command> [args]

Commands:
  set-key <key>       save the generation API key
  clear-key           remove the saved API key
  validate-key        check the saved key against the provider
  login               open a browser window to log in to X.com
  logout              clear the saved X.com session
  history [n]         show the n most recent generations (default 10)
  bot-test <prompt>   send a raw prompt to the configured provider
  open config|cache   open the config or cache directory
`

func main() {
	log.SetFlags(0)
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Print(usage)
		os.Exit(1)
	}

	if err := dispatch(args[0], args[1:]); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func dispatch(command string, args []string) error {
	switch command {
	case "set-key":
		return setKey(args)
	case "clear-key":
		return clearKey()
	case "validate-key":
		return validateKey()
	case "login":
		return login()
	case "logout":
		return logout()
	case "history":
		return history(args)
	case "bot-test":
		return botTest(args)
	case "open":
		return openDir(args)
	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func settingsStore() (*settings.Store, error) {
	path, err := settings.DefaultPath()
	if err != nil {
		return nil, err
	}
	return settings.NewStore(path), nil
}

func setKey(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rp set-key <key>")
	}

	s, err := settingsStore()
	if err != nil {
		return err
	}
	if err := s.SetAPIKey(args[0]); err != nil {
		return err
	}

	fmt.Println("API key saved")
	return nil
}

func clearKey() error {
	s, err := settingsStore()
	if err != nil {
		return err
	}
	if err := s.ClearAPIKey(); err != nil {
		return err
	}

	fmt.Println("API key cleared")
	return nil
}

func validateKey() error {
	gen, err := buildGenerator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if !gen.Validate(ctx) {
		return fmt.Errorf("API key validation failed")
	}
	fmt.Println("API key is valid")
	return nil
}

func login() error {
	cookiePath, err := auth.DefaultCookieStorePath()
	if err != nil {
		return err
	}
	manager := auth.NewManager(auth.NewCookieStore(cookiePath))

	fmt.Println("Opening browser window, log in to X.com to continue...")
	if err := manager.Login(context.Background()); err != nil {
		return err
	}

	fmt.Println("Login successful, session saved")
	return nil
}

func logout() error {
	cookiePath, err := auth.DefaultCookieStorePath()
	if err != nil {
		return err
	}
	if err := auth.NewManager(auth.NewCookieStore(cookiePath)).Logout(); err != nil {
		if os.IsNotExist(err) {
			fmt.Println("No saved session")
			return nil
		}
		return err
	}

	fmt.Println("Session cleared")
	return nil
}

func history(args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("usage: rp history [n]")
		}
		limit = n
	}

	cacheDir, err := config.CacheDir()
	if err != nil {
		return err
	}
	s, err := store.New(cacheDir + "/history.db")
	if err != nil {
		return err
	}
	defer s.Close()

	gens, err := s.RecentGenerations(limit)
	if err != nil {
		return err
	}
	if len(gens) == 0 {
		fmt.Println("No generations recorded yet")
		return nil
	}

	for _, g := range gens {
		status := "ok"
		if !g.Success {
			status = "failed: " + g.Error
		} else if g.Fallback {
			status = "ok (clipboard)"
		}
		fmt.Printf("%s  %-8s  %s\n", g.CreatedAt.Format("2006-01-02 15:04"), g.Kind, status)
		if g.Output != "" {
			fmt.Printf("    %s\n", g.Output)
		}
	}
	return nil
}

func botTest(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rp bot-test <prompt>")
	}
	prompt := strings.Join(args, " ")

	gen, err := buildGenerator()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	text, err := gen.Generate(ctx, prompt, nil)
	if err != nil {
		return err
	}

	fmt.Println(text)
	return nil
}

func openDir(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: rp open config|cache")
	}

	var dir string
	var err error
	switch args[0] {
	case "config":
		dir, err = config.ConfigDir()
	case "cache":
		dir, err = config.CacheDir()
	default:
		return fmt.Errorf("usage: rp open config|cache")
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	return browser.OpenURL(dir)
}

func buildGenerator() (genclient.Generator, error) {
	cfg, err := config.Load()
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cfg = config.Default()
	}

	s, err := settingsStore()
	if err != nil {
		return nil, err
	}
	apiKey, err := s.APIKey()
	if err != nil {
		return nil, err
	}

	return genclient.NewGenerator(context.Background(), cfg.Generation, apiKey)
}
