package downloader

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// resolveCommand splits a configured command such as "python -m yt_dlp"
// into an executable path and its leading arguments.
func resolveCommand(command, bundledDir string) (string, []string, error) {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return "", nil, errors.New("empty command")
	}

	var dirs []string
	if bundledDir != "" {
		dirs = append(dirs, bundledDir)
	}
	path, err := findBinary(fields[0], dirs...)
	if err != nil {
		return "", nil, err
	}
	return path, fields[1:], nil
}

// findBinary looks in preferredDirs first, then falls back to PATH.
func findBinary(name string, preferredDirs ...string) (string, error) {
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		if isExecutable(name) {
			return name, nil
		}
		return "", fmt.Errorf("%s: %w", name, exec.ErrNotFound)
	}

	candidates := []string{name}
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(name), ".exe") {
		candidates = append(candidates, name+".exe")
	}

	for _, dir := range preferredDirs {
		for _, c := range candidates {
			p := filepath.Join(dir, c)
			if isExecutable(p) {
				return p, nil
			}
		}
	}

	return exec.LookPath(name)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode()&0111 != 0
}
