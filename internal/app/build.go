package app

import (
	"github.com/cli/browser"
	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/launcher"
	"github.com/iksnae/valswitch/internal/process"
	"github.com/iksnae/valswitch/internal/session"
)

// Build wires the production service from cfg
func Build(cfg *internal.Config) (*Service, error) {
	store, err := internal.OpenSettingsStore(cfg.DataDir)
	if err != nil {
		return nil, err
	}

	directory, err := internal.NewDirectory(store)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	vault := internal.NewVault(cfg.KeyringService, nil)
	controller := process.New(process.Options{
		ManifestPath: cfg.RiotManifest,
		SettleDelay:  cfg.SettleDelay,
	})
	internal.LogDebug("Settings: %s, platform: %s, manifest: %s", store.Path(), controller.Platform(), controller.ManifestPath())

	svc := NewService(Deps{
		Settings:  store,
		Directory: directory,
		Vault:     vault,
		Importer:  session.NewImporter(cfg.RiotDataRoot),
		OpenURL:   browser.OpenURL,
		Closer:    store,
	})
	svc.launcher = launcher.New(launcher.Options{
		Accounts:     directory,
		Secrets:      vault,
		Settings:     store,
		Controller:   controller,
		RiotDataRoot: cfg.RiotDataRoot,
		Locale:       cfg.Locale,
		PollInterval: cfg.PollInterval,
		Sink:         svc.PublishLaunch,
	})
	return svc, nil
}
