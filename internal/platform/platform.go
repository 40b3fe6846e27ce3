// Package platform detects the host operating system and the toolchains
// available to Nuitka on it.
package platform

import (
	"context"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/CodexForgeBR/nuitkactl/internal/registry"
)

// probeTimeout bounds the nuitka version probe.
const probeTimeout = 5 * time.Second

// Name returns the platform name used by setting platform constraints:
// "windows", "darwin", or "linux". Everything that is not Windows or macOS
// is reported as linux.
func Name() string {
	switch runtime.GOOS {
	case "windows":
		return "windows"
	case "darwin":
		return "darwin"
	default:
		return "linux"
	}
}

// IsWindows reports whether the host is Windows.
func IsWindows() bool { return Name() == "windows" }

// IsMacOS reports whether the host is macOS.
func IsMacOS() bool { return Name() == "darwin" }

// IsLinux reports whether the host is Linux (or another Unix).
func IsLinux() bool { return Name() == "linux" }

// AvailableCompilers lists the C compiler choices usable on this host.
// "auto" is always first.
func AvailableCompilers() []string {
	compilers := []string{"auto"}

	if IsWindows() {
		if _, err := exec.LookPath("cl"); err == nil {
			compilers = append(compilers, "msvc")
		}
		// Nuitka can download these on demand.
		compilers = append(compilers, "mingw64", "clang")
	}

	if _, err := exec.LookPath("zig"); err == nil {
		compilers = append(compilers, "zig")
	}

	if !IsWindows() {
		if _, err := exec.LookPath("clang"); err == nil {
			compilers = append(compilers, "clang")
		}
	}

	return compilers
}

// DefaultCompiler returns the recommended compiler choice for this host.
func DefaultCompiler() string {
	if IsWindows() {
		if _, err := exec.LookPath("cl"); err == nil {
			return "msvc"
		}
		return "mingw64"
	}
	return "auto"
}

// HasNuitka reports whether the interpreter can run Nuitka as a module.
func HasNuitka(interpreter string) bool {
	return nuitkaVersionOutput(interpreter) != ""
}

// NuitkaVersion returns the installed Nuitka version string, or
// "not installed" when the probe fails.
func NuitkaVersion(interpreter string) string {
	out := nuitkaVersionOutput(interpreter)
	if out == "" {
		return "not installed"
	}
	// First line is the bare version, the rest is environment details.
	if idx := strings.IndexByte(out, '\n'); idx >= 0 {
		out = out[:idx]
	}
	return strings.TrimSpace(out)
}

func nuitkaVersionOutput(interpreter string) string {
	if interpreter == "" {
		interpreter = "python"
	}
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, interpreter, "-m", "nuitka", "--version").Output()
	if err != nil {
		return ""
	}
	return string(out)
}

// Allows reports whether a setting definition applies on the named platform.
// Definitions without platform constraints apply everywhere.
func Allows(def *registry.Definition, osName string) bool {
	if def == nil || def.PlatformConstraints == nil || len(def.PlatformConstraints.OS) == 0 {
		return true
	}
	for _, os := range def.PlatformConstraints.OS {
		if os == osName {
			return true
		}
	}
	return false
}
