package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/valswitch/internal"
	"github.com/iksnae/valswitch/testutil"
	"github.com/zalando/go-keyring"
)

func TestHealthcheckCommand(t *testing.T) {
	output, err := executeCommand(t, "healthcheck", "--help")
	if err != nil {
		t.Fatalf("healthcheck command failed: %v", err)
	}
	if output == "" {
		t.Error("healthcheck --help should produce output")
	}
}

func TestHealthcheckDetailsFlag(t *testing.T) {
	if healthcheckCmd.Flag("details") == nil {
		t.Error("healthcheck command should have --details flag")
	}
	if healthcheckCmd.Flags().ShorthandLookup("d") == nil {
		t.Error("healthcheck command should have -d flag")
	}
}

func TestHealthcheck_Passes(t *testing.T) {
	keyring.MockInit()
	tree := testutil.CreateRiotTree(t, testutil.PrivateSettingsYAML)
	data := t.TempDir()
	install := t.TempDir()
	exe := filepath.Join(install, "RiotClientServices.exe")
	testutil.WriteFile(t, exe, []byte("exe"))
	manifest := filepath.Join(t.TempDir(), internal.InstallManifestFile)
	testutil.WriteFile(t, manifest, []byte(`{"rc_default": "`+filepath.ToSlash(exe)+`"}`))
	testutil.CreateSettingsFixture(t, filepath.Join(data, internal.SettingsFileName), map[string]string{
		internal.KeyValorantPath: install,
		internal.KeyAccounts:     `[{"id":"abc123","displayName":"Main","region":"EU","createdAt":"2024-01-01T00:00:00Z"}]`,
	})

	t.Setenv("VALSWITCH_DATA_DIR", data)
	t.Setenv("VALSWITCH_RIOT_DATA_ROOT", tree.Root)
	t.Setenv("VALSWITCH_RIOT_MANIFEST", manifest)

	output, err := executeCommand(t, "healthcheck", "--details")
	if err != nil {
		t.Fatalf("healthcheck error = %v\n%s", err, output)
	}
	for _, want := range []string{"Found 1 account(s)", "Keychain readable", "Riot Client data found (default)", "Signed-in session file present", "Install path set", "Riot Client found", "Health check passed"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestHealthcheck_Fails(t *testing.T) {
	keyring.MockInit()
	t.Setenv("VALSWITCH_DATA_DIR", t.TempDir())
	t.Setenv("VALSWITCH_RIOT_DATA_ROOT", filepath.Join(t.TempDir(), "missing"))
	t.Setenv("VALSWITCH_RIOT_MANIFEST", filepath.Join(t.TempDir(), "missing.json"))

	output, err := executeCommand(t, "healthcheck")
	if err == nil {
		t.Fatal("healthcheck should fail without a Riot Client")
	}
	for _, want := range []string{"No accounts stored yet", "Riot Client data not found", "Install path not usable", "Health check failed"} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q:\n%s", want, output)
		}
	}
}

func TestHealthcheck_KeychainUnavailable(t *testing.T) {
	keyring.MockInitWithError(errors.New("no secret service"))
	t.Cleanup(keyring.MockInit)
	t.Setenv("VALSWITCH_DATA_DIR", t.TempDir())
	t.Setenv("VALSWITCH_RIOT_DATA_ROOT", filepath.Join(t.TempDir(), "missing"))
	t.Setenv("VALSWITCH_RIOT_MANIFEST", filepath.Join(t.TempDir(), "missing.json"))

	output, err := executeCommand(t, "healthcheck")
	if err == nil {
		t.Fatal("healthcheck should fail when the keychain is unreadable")
	}
	if !strings.Contains(output, "Keychain not readable") || !strings.Contains(output, "no secret service") {
		t.Errorf("output missing keychain failure:\n%s", output)
	}
}
