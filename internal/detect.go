package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Riot Client session and settings file names
const (
	PrivateSettingsFile = "RiotGamesPrivateSettings.yaml"
	ClientSettingsFile  = "RiotClientSettings.yaml"
	InstallManifestFile = "RiotClientInstalls.json"
)

// Riot Client data directory variants
const (
	VariantBeta    = "beta"
	VariantDefault = "default"
)

// RiotPaths holds the detected Riot Client data and config directories
type RiotPaths struct {
	Root      string // Riot Games local data root
	Variant   string // "beta" or "default"
	DataDir   string // holds the private (session) settings
	ConfigDir string // holds the client settings
}

// DefaultRiotDataRoot returns the Riot Games local data root for this OS
func DefaultRiotDataRoot() (string, error) {
	switch runtime.GOOS {
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			return "", fmt.Errorf("LOCALAPPDATA is not set")
		}
		return filepath.Join(local, "Riot Games"), nil
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, "Library/Application Support/Riot Games"), nil
	default:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		return filepath.Join(home, ".local/share/Riot Games"), nil
	}
}

// DefaultManifestPath returns the location of RiotClientInstalls.json for this OS
func DefaultManifestPath() string {
	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, "Riot Games", InstallManifestFile)
	case "darwin":
		return filepath.Join("/Users/Shared/Riot Games", InstallManifestFile)
	default:
		root, err := DefaultRiotDataRoot()
		if err != nil {
			return InstallManifestFile
		}
		return filepath.Join(root, InstallManifestFile)
	}
}

// InstallDirCandidates lists the usual VALORANT install directories for this OS
func InstallDirCandidates() []string {
	switch runtime.GOOS {
	case "windows":
		return []string{
			`C:\Riot Games\VALORANT\live`,
			`D:\Riot Games\VALORANT\live`,
			`C:\Program Files\Riot Games\VALORANT\live`,
		}
	case "darwin":
		return []string{"/Applications/VALORANT.app", "/Users/Shared/Riot Games/VALORANT"}
	default:
		home, _ := os.UserHomeDir()
		return []string{filepath.Join(home, "Games/riot-games/drive_c/Riot Games/VALORANT/live")}
	}
}

// DetectRiotPaths picks the Riot Client data variant under root.
// The beta variant wins when both its Data and Config directories exist;
// otherwise the default "Riot Client" variant is used if its directory exists.
func DetectRiotPaths(root string) (RiotPaths, error) {
	if root == "" {
		var err error
		root, err = DefaultRiotDataRoot()
		if err != nil {
			return RiotPaths{}, fmt.Errorf("%w: %v", ErrDataDirNotFound, err)
		}
	}

	beta := RiotPaths{
		Root:      root,
		Variant:   VariantBeta,
		DataDir:   filepath.Join(root, "Beta", "Data"),
		ConfigDir: filepath.Join(root, "Beta", "Config"),
	}
	if isDir(beta.DataDir) && isDir(beta.ConfigDir) {
		return beta, nil
	}

	base := filepath.Join(root, "Riot Client")
	if isDir(base) {
		return RiotPaths{
			Root:      root,
			Variant:   VariantDefault,
			DataDir:   filepath.Join(base, "Data"),
			ConfigDir: filepath.Join(base, "Config"),
		}, nil
	}

	return RiotPaths{}, fmt.Errorf("%w: looked in %s and %s", ErrDataDirNotFound, filepath.Dir(beta.DataDir), base)
}

// PrivateSettingsPath returns the session settings file path
func (p RiotPaths) PrivateSettingsPath() string {
	return filepath.Join(p.DataDir, PrivateSettingsFile)
}

// ClientSettingsPath returns the client settings file path
func (p RiotPaths) ClientSettingsPath() string {
	return filepath.Join(p.ConfigDir, ClientSettingsFile)
}

// PrivateSettingsExists checks if the session settings file exists
func (p RiotPaths) PrivateSettingsExists() bool {
	info, err := os.Stat(p.PrivateSettingsPath())
	return err == nil && !info.IsDir()
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
