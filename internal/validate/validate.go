// Package validate checks user inputs and whole configurations before a
// build is attempted. Validation is advisory for the flag plan compiler,
// which never inspects values itself.
package validate

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/CodexForgeBR/nuitkactl/internal/config"
)

var (
	versionPattern  = regexp.MustCompile(`^\d+(\.\d+){0,3}$`)
	modulePattern   = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*(\.[a-zA-Z_][a-zA-Z0-9_]*)*$`)
	bundleIDPattern = regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z][a-z0-9-]*)+$`)
)

// FileExists checks that path names an existing regular file.
func FileExists(path string) error {
	if path == "" {
		return fmt.Errorf("file path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if info.IsDir() {
		return fmt.Errorf("path is not a file: %s", path)
	}
	return nil
}

// DirExists checks that path names an existing directory.
func DirExists(path string) error {
	if path == "" {
		return fmt.Errorf("directory path is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("directory does not exist: %s", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}
	return nil
}

// PythonFile checks that path names an existing .py file.
func PythonFile(path string) error {
	if err := FileExists(path); err != nil {
		return err
	}
	if !strings.HasSuffix(path, ".py") {
		return fmt.Errorf("file must be a Python file (.py): %s", path)
	}
	return nil
}

// Version checks a dotted version number with one to four components.
// The empty string is accepted.
func Version(s string) error {
	if s == "" {
		return nil
	}
	if !versionPattern.MatchString(s) {
		return fmt.Errorf("version must look like '1.0' or '1.0.0.0', got %q", s)
	}
	return nil
}

// ModuleName checks a dotted Python module name.
func ModuleName(s string) error {
	if s == "" {
		return fmt.Errorf("module name is required")
	}
	if !modulePattern.MatchString(s) {
		return fmt.Errorf("invalid module name: %q", s)
	}
	return nil
}

// BundleID checks a reverse-DNS macOS bundle identifier. The empty string is
// accepted.
func BundleID(s string) error {
	if s == "" {
		return nil
	}
	if !bundleIDPattern.MatchString(s) {
		return fmt.Errorf("bundle ID should look like 'com.company.appname', got %q", s)
	}
	return nil
}

// IconFile checks an icon path's extension for the given platform
// ("windows", "darwin", or "linux"). The empty string is accepted.
func IconFile(path, platformName string) error {
	if path == "" {
		return nil
	}
	if err := FileExists(path); err != nil {
		return err
	}
	switch platformName {
	case "windows":
		if !strings.HasSuffix(path, ".ico") && !strings.HasSuffix(path, ".png") {
			return fmt.Errorf("windows icon must be a .ico or .png file: %s", path)
		}
	case "darwin":
		if !strings.HasSuffix(path, ".icns") && !strings.HasSuffix(path, ".png") {
			return fmt.Errorf("macOS icon must be a .icns or .png file: %s", path)
		}
	default:
		if !strings.HasSuffix(path, ".png") {
			return fmt.Errorf("linux icon must be a .png file: %s", path)
		}
	}
	return nil
}

// Config validates a whole configuration. It returns hard errors that should
// block a build and advisory warnings that should not.
func Config(m *config.Manager) (errs []string, warnings []string) {
	inputFile := m.GetString("basic.input_file")
	if inputFile == "" {
		errs = append(errs, "input Python file is required")
	} else if err := PythonFile(inputFile); err != nil {
		errs = append(errs, err.Error())
	}

	if dir := m.GetString("basic.output_dir"); dir != "" {
		if _, err := os.Stat(dir); err != nil {
			warnings = append(warnings, fmt.Sprintf("output directory %q will be created", dir))
		}
	}

	if err := Version(m.GetString("platform.windows.file_version")); err != nil {
		errs = append(errs, "file version: "+err.Error())
	}
	if err := Version(m.GetString("platform.windows.product_version")); err != nil {
		errs = append(errs, "product version: "+err.Error())
	}
	if err := BundleID(m.GetString("platform.macos.bundle_id")); err != nil {
		errs = append(errs, "bundle ID: "+err.Error())
	}
	if err := IconFile(m.GetString("platform.windows.icon"), "windows"); err != nil {
		errs = append(errs, "windows icon: "+err.Error())
	}
	if err := IconFile(m.GetString("platform.macos.icon"), "darwin"); err != nil {
		errs = append(errs, "macOS icon: "+err.Error())
	}

	for _, module := range m.GetStrings("modules.include_modules") {
		if err := ModuleName(module); err != nil {
			errs = append(errs, fmt.Sprintf("module %q: %v", module, err))
		}
	}

	mode := m.GetString("basic.mode")
	if (mode == "standalone" || mode == "onefile") && !m.GetBool("modules.follow_imports") {
		warnings = append(warnings, "standalone/onefile modes typically need 'Follow imports' enabled")
	}

	return errs, warnings
}
