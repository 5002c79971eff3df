package resolver

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/mod/semver"
)

const snapshotSuffix = "-SNAPSHOT"

// compareVersions orders two repository versions. Versions that read as
// semantic versions are compared numerically, anything else lexically.
func compareVersions(a, b string) int {
	va, vb := "v"+a, "v"+b
	if semver.IsValid(va) && semver.IsValid(vb) {
		if c := semver.Compare(va, vb); c != 0 {
			return c
		}
	}
	return strings.Compare(a, b)
}

// pickVersion selects the version a meta version refers to among candidates
func pickVersion(meta string, candidates []string) (string, bool) {
	best := ""
	for _, candidate := range candidates {
		if meta == VersionRelease && strings.HasSuffix(candidate, snapshotSuffix) {
			continue
		}
		if best == "" || compareVersions(candidate, best) > 0 {
			best = candidate
		}
	}
	return best, best != ""
}

// metadata is the subset of maven-metadata.xml used to pin meta versions
type metadata struct {
	Versioning struct {
		Latest   string   `xml:"latest"`
		Release  string   `xml:"release"`
		Versions []string `xml:"versions>version"`
	} `xml:"versioning"`
}

// metadataFile is the name of the per-artifact repository metadata document
const metadataFile = "maven-metadata.xml"

// versionFromMetadata reads maven-metadata.xml and resolves a meta version
func versionFromMetadata(r io.Reader, meta string) (string, error) {
	var doc metadata
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", metadataFile, err)
	}

	switch {
	case meta == VersionLatest && doc.Versioning.Latest != "":
		return doc.Versioning.Latest, nil
	case meta == VersionRelease && doc.Versioning.Release != "":
		return doc.Versioning.Release, nil
	}

	if version, ok := pickVersion(meta, doc.Versioning.Versions); ok {
		return version, nil
	}
	return "", fmt.Errorf("%w: no %s version listed in %s", ErrNotFound, meta, metadataFile)
}
