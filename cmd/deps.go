package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/refka/mediatray/internal/backend"
	"github.com/refka/mediatray/internal/config"
	"github.com/refka/mediatray/internal/engine"
	"github.com/refka/mediatray/internal/favorites"
	"github.com/refka/mediatray/internal/logging"
	"github.com/refka/mediatray/internal/notify"
)

// newBackendClient builds the HTTP backend client from configuration.
func newBackendClient() (backend.Client, error) {
	baseURL := config.Get("backend_url", "")
	if baseURL == "" {
		return nil, fmt.Errorf("backend_url is not configured (set it in config.toml or MEDIATRAY_BACKEND_URL)")
	}
	return backend.NewHTTPClient(backend.Options{
		BaseURL:     baseURL,
		APIKey:      config.Get("backend_key", ""),
		AccessToken: config.Get("access_token", ""),
		UserID:      config.Get("user_id", ""),
	}), nil
}

// openFavorites opens the favorite set database under the state dir.
// A failure is downgraded to a warning: the session runs without favorites.
func openFavorites() *favorites.Store {
	stateDir := config.Get("state_dir", "")
	if stateDir == "" {
		return nil
	}
	favs, err := favorites.Open(filepath.Join(stateDir, "favorites.db"))
	if err != nil {
		logging.Warn("favorites unavailable", "error", err)
		return nil
	}
	return favs
}

// newEngine wires the session engine from configuration. The returned
// cleanup function closes the engine and the favorite set.
func newEngine() (*engine.Engine, func(), error) {
	client, err := newBackendClient()
	if err != nil {
		return nil, nil, err
	}

	favs := openFavorites()

	var device notify.DeviceNotifier
	permitted := config.GetBool("device_notifications", false)
	if permitted {
		device = notify.NewBeeepNotifier("mediatray")
	}
	bridge := notify.NewBridge(notify.NewCenter(), device, permitted, logging.GetGlobal())

	eng, err := engine.New(engine.Options{
		Favorites: favs,
		Backend:   client,
		Bridge:    bridge,
		PageSize:  config.GetInt("page_size", 12),
		Logger:    logging.GetGlobal(),
	})
	if err != nil {
		if favs != nil {
			favs.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		if err := eng.Close(); err != nil {
			logging.Warn("engine shutdown", "error", err)
		}
		if favs != nil {
			favs.Close()
		}
	}
	return eng, cleanup, nil
}
