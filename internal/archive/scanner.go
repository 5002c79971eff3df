// Package archive derives the Java package names contained in a compiled
// archive (jar).
package archive

import (
	"sort"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/toyz/importgen/internal/errors"
)

const (
	classSuffix     = ".class"
	metaInfPrefix   = "META-INF/"
	versionsPrefix  = "META-INF/versions/"
	packageSep      = "."
	entryPathSep    = "/"
	directorySuffix = "/"
)

// Result describes what a scan found in a single archive
type Result struct {
	Path           string   // archive that was scanned
	Packages       []string // distinct package names, sorted ascending
	ClassEntries   int      // class entries seen, including dropped ones
	RootClasses    []string // class entries without a package, dropped
	OverlayClasses int      // multi-release classes mapped onto their base package
}

// Scanner reads archives and derives package names from class entries
type Scanner struct{}

// NewScanner creates a new archive scanner
func NewScanner() *Scanner {
	return &Scanner{}
}

// Scan returns the distinct, sorted package names of the archive at path
func (s *Scanner) Scan(path string) ([]string, error) {
	result, err := s.ScanDetailed(path)
	if err != nil {
		return nil, err
	}
	return result.Packages, nil
}

// ScanDetailed scans the archive at path and reports dropped entries as well.
// The archive is fully consumed and closed before returning; on error no
// partial result is returned.
func (s *Scanner) ScanDetailed(path string) (*Result, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.WrapArchiveError(path, err).
			WithSuggestion("Check that the resolved artifact is a valid jar file")
	}
	defer reader.Close()

	result := &Result{Path: path}
	seen := make(map[string]struct{})

	for _, file := range reader.File {
		name := file.Name
		if strings.HasSuffix(name, directorySuffix) || !strings.HasSuffix(name, classSuffix) {
			continue
		}

		result.ClassEntries++

		if strings.HasPrefix(name, metaInfPrefix) {
			base, ok := stripVersionOverlay(name)
			if !ok {
				continue
			}
			result.OverlayClasses++
			name = base
		}

		pkg, ok := PackageName(name)
		if !ok {
			result.RootClasses = append(result.RootClasses, name)
			continue
		}
		seen[pkg] = struct{}{}
	}

	result.Packages = make([]string, 0, len(seen))
	for pkg := range seen {
		result.Packages = append(result.Packages, pkg)
	}
	sort.Strings(result.Packages)

	return result, nil
}

// PackageName derives the package of a class entry path. Entries at the
// archive root have no package and report false.
func PackageName(entry string) (string, bool) {
	idx := strings.LastIndex(entry, entryPathSep)
	if idx <= 0 {
		return "", false
	}
	return strings.ReplaceAll(entry[:idx], entryPathSep, packageSep), true
}

// stripVersionOverlay maps META-INF/versions/<n>/a/b/C.class to a/b/C.class
func stripVersionOverlay(name string) (string, bool) {
	if !strings.HasPrefix(name, versionsPrefix) {
		return "", false
	}
	rest := name[len(versionsPrefix):]
	idx := strings.Index(rest, entryPathSep)
	if idx <= 0 || !isDigits(rest[:idx]) {
		return "", false
	}
	return rest[idx+1:], true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
