package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jrsteele09/imovie-web/catalog"
	"github.com/jrsteele09/imovie-web/catalog/mockapi"
	"github.com/jrsteele09/imovie-web/internal/config"
	"github.com/jrsteele09/imovie-web/server"
	"github.com/jrsteele09/imovie-web/sessions"
	"github.com/jrsteele09/imovie-web/sessions/snapshots"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn().Err(err).Msg("Failed to load .env")
	}
	for {
		if err := run(); err != nil {
			log.Err(err).Msg("Error running server, restarting")
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Bytes("stack", debug.Stack()).Msg("Recovered from panic")
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	setupLogging(c)
	displayAppname(c.GetAppName())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	snapshotStore, closeStore, err := openSnapshotStore(ctx, c)
	if err != nil {
		return err
	}
	defer closeStore()

	baseURL := c.GetAPIBaseURL()
	if c.GetMockAPI() {
		mock, err := startMockAPI()
		if err != nil {
			return err
		}
		defer shutdown(mock)
		baseURL = "http://" + mock.Addr
	}
	api := catalog.NewClient(baseURL, c.GetAPITimeout(), nil)
	log.Info().Str("base_url", api.BaseURL()).Msg("Catalog backend")

	handler, err := server.New(c, api, snapshotStore)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}
	go handler.RunMaintenance(ctx, time.Minute)

	httpServer := &http.Server{
		Addr:              c.GetPort(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() { serveErr <- listenAndServe(httpServer) }()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func setupLogging(c config.Config) {
	level, err := zerolog.ParseLevel(strings.ToLower(c.GetLogLevel()))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if c.GetEnv() == "DEV" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// openSnapshotStore picks the backend shared by all browser sessions.
func openSnapshotStore(ctx context.Context, c config.Config) (sessions.SnapshotStore, func(), error) {
	switch c.GetSnapshotBackend() {
	case config.SnapshotBackendRedis:
		client, err := snapshots.Dial(ctx, c.GetRedisAddr(), c.GetRedisPassword(), c.GetRedisDB())
		if err != nil {
			return nil, nil, fmt.Errorf("snapshots.Dial: %w", err)
		}
		log.Info().Str("addr", c.GetRedisAddr()).Msg("Using Redis session snapshots")
		return snapshots.NewRedis(client, c.GetSnapshotTTL()), func() { _ = client.Close() }, nil
	default:
		log.Info().Msg("Using in-memory session snapshots")
		return snapshots.NewMemory(), func() {}, nil
	}
}

// startMockAPI serves the in-memory catalog backend on a loopback port.
func startMockAPI() (*http.Server, error) {
	api, err := mockapi.New(nil)
	if err != nil {
		return nil, fmt.Errorf("mockapi.New: %w", err)
	}
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, fmt.Errorf("mock api listen: %w", err)
	}
	mock := &http.Server{Addr: listener.Addr().String(), Handler: api, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		if err := mock.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Err(err).Msg("Mock API stopped")
		}
	}()
	log.Info().Str("addr", mock.Addr).Msg("Mock catalog API listening")
	return mock, nil
}

func listenAndServe(server *http.Server) error {
	log.Info().Msgf("Server listening on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
