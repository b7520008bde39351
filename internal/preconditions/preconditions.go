package preconditions

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Check verifies the environment can run a generation
func Check(workers int) error {
	checks := []struct {
		name string
		fn   func() error
	}{
		{"Workers", func() error { return checkWorkers(workers) }},
	}

	for _, check := range checks {
		if err := check.fn(); err != nil {
			return fmt.Errorf("%s: %w", check.name, err)
		}
	}

	return nil
}

func checkWorkers(workers int) error {
	if workers < 0 {
		return fmt.Errorf("must not be negative, got %d", workers)
	}
	if workers > 4*runtime.NumCPU() {
		return fmt.Errorf("%d exceeds four times the %d available CPUs", workers, runtime.NumCPU())
	}
	return nil
}

// ValidateFiles checks that every path is a readable file with one of the
// allowed extensions
func ValidateFiles(paths []string, extensions ...string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot access file %s: %w", path, err)
		}

		if info.IsDir() {
			return fmt.Errorf("%s is a directory, not a file", path)
		}

		if len(extensions) > 0 && !hasExtension(path, extensions) {
			return fmt.Errorf("%s must end in %s", path, strings.Join(extensions, " or "))
		}

		file, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("cannot read file %s: %w", path, err)
		}
		file.Close()
	}

	return nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// ValidateOutputPath checks that the nearest existing ancestor of path is a
// writable directory and that path itself is not a directory
func ValidateOutputPath(path string) error {
	if path == "" {
		return fmt.Errorf("output path is empty")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	dir := filepath.Dir(path)
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			if info.Mode()&0200 == 0 {
				return fmt.Errorf("output directory %s is not writable", dir)
			}
			return nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return fmt.Errorf("output directory for %s does not exist", path)
		}
		dir = parent
	}
}
