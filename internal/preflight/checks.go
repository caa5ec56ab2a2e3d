package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"eventkit/internal/config"
	"eventkit/internal/geocode"
)

// CheckBinary verifies that command resolves on PATH.
func CheckBinary(name, command string, optional bool) Result {
	command = strings.TrimSpace(command)
	if command == "" {
		return Result{Name: name, Optional: optional, Detail: "command not configured"}
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return Result{Name: name, Optional: optional, Detail: fmt.Sprintf("binary %q not found", command)}
	}
	return Result{Name: name, Passed: true, Optional: optional, Detail: path}
}

// CheckDirectoryAccess verifies that the directory exists and is readable.
// With writable set, write access is required too.
func CheckDirectoryAccess(name, path string, writable bool) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	mode := uint32(unix.R_OK | unix.X_OK)
	label := "read ok"
	if writable {
		mode |= unix.W_OK
		label = "read/write ok"
	}
	if err := unix.Access(path, mode); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%s)", path, label)}
}

// CheckWritableParent passes when path is a writable directory, or when it is
// missing but its nearest existing ancestor is writable so it can be created.
func CheckWritableParent(name, path string) Result {
	if _, err := os.Stat(path); err == nil {
		return CheckDirectoryAccess(name, path, true)
	}
	parent := filepath.Dir(path)
	for parent != filepath.Dir(parent) {
		if _, err := os.Stat(parent); err == nil {
			break
		}
		parent = filepath.Dir(parent)
	}
	if err := unix.Access(parent, unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: cannot create under %s: %v)", path, parent, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (will be created)", path)}
}

// CheckFile verifies that path is a readable regular file.
func CheckFile(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	if !info.Mode().IsRegular() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not a regular file)", path)}
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: not readable: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckGeocodeKey reports whether a geocoding API key is configured. Only the
// geocode command needs one, so a miss is optional.
func CheckGeocodeKey(cfg *config.Config) Result {
	const name = "Geocoding API key"
	if err := cfg.RequireGeocodeKey(); err != nil {
		return Result{Name: name, Optional: true, Detail: "missing (set GOOGLE_API_KEY)"}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: "configured"}
}

// CheckGeocodeCache reports how many lookups the geocode cache holds. A cache
// that has not been created yet passes as empty.
func CheckGeocodeCache(ctx context.Context, cfg *config.Config) Result {
	const name = "Geocode cache"
	if !cfg.Geocode.CacheEnabled {
		return Result{Name: name, Passed: true, Optional: true, Detail: "disabled"}
	}
	path := cfg.GeocodeCachePath()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (empty)", path)}
		}
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	cache, err := geocode.OpenCache(path)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: %v)", path, err)}
	}
	defer cache.Close()
	n, err := cache.Count(ctx)
	if err != nil {
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (error: %v)", cache.Path(), err)}
	}
	return Result{Name: name, Passed: true, Optional: true, Detail: fmt.Sprintf("%s (%d entries)", cache.Path(), n)}
}

// CheckBindAvailable verifies that the server bind address can be listened on.
func CheckBindAvailable(ctx context.Context, bind string) Result {
	const name = "Server bind"
	bind = strings.TrimSpace(bind)
	if bind == "" {
		return Result{Name: name, Optional: true, Detail: "not configured"}
	}
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", bind)
	if err != nil {
		detail := err.Error()
		if errors.Is(err, unix.EADDRINUSE) {
			detail = "address already in use"
		}
		return Result{Name: name, Optional: true, Detail: fmt.Sprintf("%s (%s)", bind, detail)}
	}
	_ = ln.Close()
	return Result{Name: name, Passed: true, Optional: true, Detail: bind + " (available)"}
}
