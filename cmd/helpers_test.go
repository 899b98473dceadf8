package cmd

import (
	"bytes"
	"io"
	"testing"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/internal/app"
	"github.com/iksnae/valswitch/internal/session"
	"github.com/iksnae/valswitch/testutil"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/zalando/go-keyring"
)

// executeCommand runs the root command with args and returns everything it printed
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithInput(t, &bytes.Buffer{}, args...)
}

func executeCommandWithInput(t *testing.T, in io.Reader, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(in)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores every flag to its default between executions
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type stubImporter struct {
	imported session.Imported
	err      error
}

func (s stubImporter) ImportCurrentSession() (session.Imported, error) {
	return s.imported, s.err
}

// testEnv is an in-memory service shared by the commands of one test
type testEnv struct {
	store  *internal.SettingsStore
	dir    *internal.Directory
	vault  *internal.Vault
	opened []string
}

// useTestService points serviceFactory at in-memory storage and a mock keyring.
// deps may set Importer, Auth, Launcher and PickDir.
func useTestService(t *testing.T, deps app.Deps) *testEnv {
	t.Helper()
	keyring.MockInit()

	env := &testEnv{
		store: internal.NewSettingsStore(testutil.CreateInMemoryDB(t)),
		vault: internal.NewVault("valswitch-test", internal.DefaultKeyring()),
	}
	var err error
	env.dir, err = internal.NewDirectory(env.store)
	if err != nil {
		t.Fatalf("NewDirectory() error = %v", err)
	}

	previous := serviceFactory
	serviceFactory = func() (*app.Service, error) {
		d := deps
		d.Settings = env.store
		d.Directory = env.dir
		d.Vault = env.vault
		d.OpenURL = func(u string) error {
			env.opened = append(env.opened, u)
			return nil
		}
		return app.NewService(d), nil
	}
	t.Cleanup(func() { serviceFactory = previous })
	return env
}

func (env *testEnv) addAccount(t *testing.T, id, name, region string) {
	t.Helper()
	if err := env.vault.Store(id, internal.SecretRecord{SSID: "S-" + id, Sub: id}); err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if err := env.dir.Upsert(internal.Account{ID: id, DisplayName: name, Region: region}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
}
