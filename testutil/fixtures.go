package testutil

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"
)

// PrivateSettingsYAML is a Riot Client private settings file with a live session
// for owner "abc123" and session id "S1".
const PrivateSettingsYAML = `private:
  riot-login:
    persist:
      region: "EU"
      session:
        cookies:
          - domain: "auth.riotgames.com"
            hostOnly: true
            httpOnly: true
            name: "asid"
            path: "/"
            persistent: false
            secureOnly: true
            value: "A1"
          - domain: "auth.riotgames.com"
            hostOnly: true
            httpOnly: false
            name: "ccid"
            path: "/"
            persistent: true
            secureOnly: true
            value: "C1"
          - domain: "auth.riotgames.com"
            hostOnly: true
            httpOnly: true
            name: "clid"
            path: "/"
            persistent: true
            secureOnly: true
            value: "L1"
          - domain: "auth.riotgames.com"
            hostOnly: true
            httpOnly: false
            name: "sub"
            path: "/"
            persistent: true
            secureOnly: true
            value: "abc123"
          - domain: "auth.riotgames.com"
            hostOnly: true
            httpOnly: true
            name: "ssid"
            path: "/"
            persistent: true
            secureOnly: true
            value: "S1"
`

// CreateSettingsFixture creates a settings database file with the given rows
func CreateSettingsFixture(t *testing.T, dbPath string, rows map[string]string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS kv (key TEXT PRIMARY KEY, value TEXT NOT NULL)`); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}

	for key, value := range rows {
		if _, err := db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", key, value); err != nil {
			t.Fatalf("Failed to insert %s: %v", key, err)
		}
	}
}

// RiotTree is a fake Riot Games local data root laid out under a temp dir
type RiotTree struct {
	Root      string
	DataDir   string
	ConfigDir string
}

// CreateRiotTree creates the default "Riot Client" variant, optionally with
// a private settings file.
func CreateRiotTree(t *testing.T, privateSettings string) RiotTree {
	t.Helper()
	root := CreateTempDir(t)
	tree := RiotTree{
		Root:      root,
		DataDir:   filepath.Join(root, "Riot Client", "Data"),
		ConfigDir: filepath.Join(root, "Riot Client", "Config"),
	}
	MkdirAll(t, tree.DataDir, tree.ConfigDir)
	if privateSettings != "" {
		WriteFile(t, filepath.Join(tree.DataDir, "RiotGamesPrivateSettings.yaml"), []byte(privateSettings))
	}
	return tree
}
