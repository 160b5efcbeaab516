// Command gallery is a terminal consumer of the gallery client: it lists,
// shows, uploads, edits and deletes image posts and manages the login
// session. All network access goes through the client package; this command
// only renders results and binds flags to client calls.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gallerykit/gallerykit/client"
	"github.com/gallerykit/gallerykit/config"
	"github.com/gallerykit/gallerykit/logger"
	"github.com/gallerykit/gallerykit/redisconn"
	"github.com/gallerykit/gallerykit/session"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithFormat(logger.ParseFormat(cfg.LogFormat)),
	)

	sess, closeStore, err := openSession(cfg, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	defer closeStore()

	api := client.New(cfg.BaseURL,
		client.WithSession(sess),
		client.WithNavigator(&termNavigator{out: os.Stderr}),
		client.WithLogger(log),
		client.WithLoginPath(cfg.LoginPath),
		client.WithRegisterPath(cfg.RegisterPath),
		client.WithHTTPClient(&http.Client{Timeout: cfg.RequestTimeout}),
	)

	ctx := context.Background()
	if err := run(ctx, api, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: gallery <command> [flags]

Commands:
  register  create an account          (-username -email -password)
  login     log in and store the token (-username -password)
  logout    clear the stored session
  whoami    show the logged-in account
  list      list all posts
  show      show one post              (-id)
  upload    upload an image            (-file [-caption])
  edit      change a post's caption    (-id -caption)
  delete    delete a post              (-id)

Configuration comes from GALLERY_* environment variables, an optional .env
file, or a YAML file named by GALLERY_CONFIG_FILE.`)
}

func loadConfig() (config.Config, error) {
	if path := os.Getenv("GALLERY_CONFIG_FILE"); path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// openSession builds the session on the configured store: Redis when a URL
// is set, otherwise an (optionally encrypted) file under the user config
// directory.
func openSession(cfg config.Config, log *slog.Logger) (*session.Session, func(), error) {
	opts := []session.Option{session.WithLandingPath(cfg.LandingPath)}

	if cfg.RedisURL != "" {
		redisClient, err := redisconn.Connect(context.Background(), redisconn.Config{
			URL:            cfg.RedisURL,
			RetryAttempts:  3,
			RetryInterval:  2 * time.Second,
			ConnectTimeout: 10 * time.Second,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Debug("session store: redis")
		store := session.NewRedisStore(redisClient, "")
		return session.New(store, opts...), func() { _ = redisClient.Close() }, nil
	}

	path := cfg.SessionPath
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, nil, err
		}
		path = filepath.Join(dir, "gallerykit", "session.json")
	}

	var fileOpts []session.FileOption
	key, err := cfg.EncryptionKey()
	if err != nil {
		return nil, nil, err
	}
	if key != nil {
		fileOpts = append(fileOpts, session.WithEncryptionKey(key))
	}

	store, err := session.NewFileStore(path, fileOpts...)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("session store: file", slog.String("path", path))
	return session.New(store, opts...), func() {}, nil
}

// termNavigator adapts the recovery protocol's redirect to a terminal: the
// "navigation" becomes a hint that the session is gone.
type termNavigator struct {
	out *os.File
}

func (n *termNavigator) Location() string { return "" }

func (n *termNavigator) Navigate(string) {
	fmt.Fprintln(n.out, "Session expired. Run 'gallery login' to continue.")
}
