package process

import (
	"bytes"
	"runtime"
)

// platform holds the OS-specific commands used to stop and probe the Riot Client
type platform struct {
	name string
	// images are terminated by CloseAll, in order
	images []string
	// target is the game process whose presence IsTargetRunning reports
	target string

	killCommand  func(image string) (string, []string)
	killNotFound func(exitCode int) bool
	queryCommand func(image string) (string, []string)
	queryMatch   func(output []byte, image string) bool
}

func windowsPlatform() platform {
	return platform{
		name: "windows",
		images: []string{
			"RiotClientServices.exe",
			"RiotClientUx.exe",
			"RiotClientUxRender.exe",
			"VALORANT.exe",
			"VALORANT-Win64-Shipping.exe",
		},
		target: "VALORANT-Win64-Shipping.exe",
		killCommand: func(image string) (string, []string) {
			return "taskkill", []string{"/F", "/IM", image}
		},
		// taskkill exits 128 when no process matched
		killNotFound: func(code int) bool { return code == 128 },
		queryCommand: func(image string) (string, []string) {
			return "tasklist", []string{"/FI", "IMAGENAME eq " + image, "/NH", "/FO", "CSV"}
		},
		queryMatch: func(output []byte, image string) bool {
			return bytes.Contains(bytes.ToLower(output), bytes.ToLower([]byte(`"`+image+`"`)))
		},
	}
}

func unixPlatform() platform {
	return platform{
		name: "unix",
		images: []string{
			"RiotClientServices",
			"Riot Client",
			"RiotClientUx",
			"VALORANT",
			"VALORANT-Win64-Shipping",
		},
		target: "VALORANT",
		killCommand: func(image string) (string, []string) {
			return "pkill", []string{"-9", "-x", image}
		},
		// pkill exits 1 when no process matched
		killNotFound: func(code int) bool { return code == 1 },
		queryCommand: func(image string) (string, []string) {
			return "pgrep", []string{"-x", image}
		},
		// pgrep exits 0 and prints pids when something matched
		queryMatch: func(output []byte, _ string) bool {
			return len(bytes.TrimSpace(output)) > 0
		},
	}
}

func platformFor(goos string) platform {
	if goos == "" {
		goos = runtime.GOOS
	}
	if goos == "windows" {
		return windowsPlatform()
	}
	return unixPlatform()
}
