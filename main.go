package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/imjacoblopez/replypilot/internal/agent"
	"github.com/imjacoblopez/replypilot/internal/auth"
	"github.com/imjacoblopez/replypilot/internal/catalog"
	"github.com/imjacoblopez/replypilot/internal/composer"
	"github.com/imjacoblopez/replypilot/internal/config"
	"github.com/imjacoblopez/replypilot/internal/extractor"
	"github.com/imjacoblopez/replypilot/internal/genclient"
	"github.com/imjacoblopez/replypilot/internal/injector"
	"github.com/imjacoblopez/replypilot/internal/notify"
	"github.com/imjacoblopez/replypilot/internal/scheduler"
	"github.com/imjacoblopez/replypilot/internal/session"
	"github.com/imjacoblopez/replypilot/internal/settings"
	"github.com/imjacoblopez/replypilot/internal/store"
	"github.com/imjacoblopez/replypilot/internal/watcher"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	headless := flag.Bool("headless", false, "run the browser headless (overrides config)")
	flag.Parse()

	if err := run(*headless); err != nil {
		log.Fatalf("Fatal: %v", err)
	}
}

func run(headlessFlag bool) error {
	cfg, err := loadOrCreateConfig()
	if err != nil {
		return err
	}
	if headlessFlag {
		cfg.Browser.Headless = true
	}

	settingsPath, err := settings.DefaultPath()
	if err != nil {
		return err
	}
	settingsStore := settings.NewStore(settingsPath)

	apiKey, err := settingsStore.APIKey()
	if err != nil {
		if errors.Is(err, settings.ErrMissingCredential) {
			return errors.New("no API key configured, run `rp set-key <key>` first")
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cookiePath, err := auth.DefaultCookieStorePath()
	if err != nil {
		return err
	}
	cookieStore := auth.NewCookieStore(cookiePath)
	authManager := auth.NewManager(cookieStore)

	if !authManager.IsAuthenticated() {
		log.Println("No valid session found, opening login window")
		if err := authManager.Login(ctx); err != nil {
			return err
		}
		log.Println("Login successful, session saved")
	}

	cookies, err := authManager.GetCookies()
	if err != nil {
		return err
	}

	sess, err := session.New(ctx, cfg.Browser.Headless, cookies)
	if err != nil {
		return err
	}
	defer sess.Close()

	gen, err := genclient.NewGenerator(ctx, cfg.Generation, apiKey)
	if err != nil {
		return err
	}
	client := genclient.NewClient(gen, composer.DefaultProfile())

	httpClient, err := cookieStore.HTTPClient(15 * time.Second)
	if err != nil {
		log.Printf("Falling back to a plain HTTP client for image fetches: %v", err)
		httpClient = nil
	}

	cacheDir, err := config.CacheDir()
	if err != nil {
		return err
	}
	historyStore, err := store.New(filepath.Join(cacheDir, "history.db"))
	if err != nil {
		return err
	}
	defer historyStore.Close()

	initialURL, err := sess.Location(ctx)
	if err != nil {
		return err
	}
	nav := watcher.NewNavState(initialURL)

	notifier := notify.New(notify.LogSink{}, notify.NewPageSink(sess))

	a := agent.New(cfg, sess,
		watcher.New(sess, nav, cfg.Browser, cfg.Catalog.Enabled),
		extractor.New(httpClient),
		client,
		injector.New(sess, cfg.Injection),
		catalog.NewFiller(sess),
		notifier,
		historyStore,
	)

	sched := scheduler.New()
	if err := a.RegisterMaintenance(sched); err != nil {
		return err
	}
	sched.Start()
	defer func() { <-sched.Stop().Done() }()

	// The browser context ends when the user closes the window; treat that
	// the same as a signal.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-sess.Context().Done()
		cancel()
	}()

	if err := a.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Println("Shutting down")
	return nil
}

// loadOrCreateConfig loads the config file, writing defaults on first run.
func loadOrCreateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err == nil {
		return cfg, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	cfg = config.Default()
	if err := cfg.Save(); err != nil {
		return nil, err
	}
	path, _ := config.ConfigPath()
	log.Printf("Wrote default config to %s", path)
	return cfg, nil
}
