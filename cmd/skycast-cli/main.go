package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/skycastlabs/skycast/internal/config"
	"github.com/skycastlabs/skycast/internal/session"
	"github.com/skycastlabs/skycast/internal/store"
	"github.com/skycastlabs/skycast/internal/suggest"
	"github.com/skycastlabs/skycast/internal/weather"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	kv, err := store.Open(cfg.StorePath)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer kv.Close()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}
	geocoder := weather.NewGeocodeClient(httpClient, cfg.RelayBaseURL)
	source := weather.NewClient(httpClient, cfg.RelayBaseURL)

	view := &textView{out: os.Stdout}
	chart := &textChart{out: os.Stdout}

	sess := session.New(session.Deps{
		Geocoder: geocoder,
		Weather:  source,
		Prefs:    store.NewPreferences(kv, nil),
		Recent:   store.NewRecentLocations(kv),
		View:     view,
		Chart:    chart,
		Locator:  envGeolocator{},
	})

	var completer *suggest.Controller
	completer = suggest.New(geocoder,
		func(loc weather.Location) {
			sess.SelectLocation(context.Background(), loc)
		},
		func() { printSuggestions(os.Stdout, completer) },
	)

	refresher := session.NewRefresher(sess, cfg.RefreshInterval)
	if err := refresher.Start(); err != nil {
		return fmt.Errorf("failed to start auto refresh: %w", err)
	}
	defer refresher.Stop()

	ctx := context.Background()
	sess.Start(ctx)

	fmt.Println(`commands: <city> | ?<prefix> | !<n> | units | theme | geo | recent [n] | clear | quit`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "quit" || line == "exit":
			return nil

		case line == "units":
			next := weather.UnitsImperial
			if sess.Units() == weather.UnitsImperial {
				next = weather.UnitsMetric
			}
			sess.ChangeUnitSystem(ctx, next)

		case line == "theme":
			next := weather.ThemeDark
			if sess.Theme() == weather.ThemeDark {
				next = weather.ThemeLight
			}
			sess.SetTheme(next)

		case line == "geo":
			sess.UseGeolocation(ctx)

		case line == "clear":
			sess.ClearRecent()

		case line == "recent":
			view.ShowRecent(sess.Recent())

		case strings.HasPrefix(line, "recent "):
			pickRecent(ctx, sess, strings.TrimSpace(strings.TrimPrefix(line, "recent ")))

		case strings.HasPrefix(line, "?"):
			completer.Input(ctx, strings.TrimPrefix(line, "?"))

		case strings.HasPrefix(line, "!"):
			if n, err := strconv.Atoi(strings.TrimPrefix(line, "!")); err == nil {
				completer.Pick(n - 1)
			}

		case line != "":
			sess.SubmitQuery(ctx, line)
		}
	}
	return scanner.Err()
}

func printSuggestions(out *os.File, c *suggest.Controller) {
	if c == nil {
		return
	}
	items := c.Items()
	if len(items) == 0 {
		return
	}
	for i, item := range items {
		if item.Placeholder {
			fmt.Fprintln(out, "  (no results found)")
			continue
		}
		fmt.Fprintf(out, "  !%d %s\n", i+1, item.Location.Name)
	}
}

func pickRecent(ctx context.Context, sess *session.Session, arg string) {
	list := sess.Recent()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(list) {
		fmt.Printf("no recent entry %q\n", arg)
		return
	}
	sess.SelectLocation(ctx, list[n-1])
}
