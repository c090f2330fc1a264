package maven

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCoordinate is returned by [ParseCoordinate] when the input is not
// a well-formed "groupId:artifactId:version" string.
var ErrInvalidCoordinate = errors.New("invalid maven coordinate")

// Coordinate uniquely identifies a Maven artifact.
//
// The canonical string form is "groupId:artifactId:version", which is also
// how coordinates are compared and used as graph node IDs.
type Coordinate struct {
	GroupID    string // e.g. "org.apache.commons" (never empty in a valid coordinate)
	ArtifactID string // e.g. "commons-lang3" (never empty in a valid coordinate)
	Version    string // concrete version string (never empty in a valid coordinate)
}

// ParseCoordinate parses a "groupId:artifactId:version" string.
//
// The string must split on ":" into exactly three non-empty segments.
// On failure the returned error wraps [ErrInvalidCoordinate] and names the
// offending input.
func ParseCoordinate(s string) (Coordinate, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return Coordinate{}, fmt.Errorf("%w: %q (expected groupId:artifactId:version)", ErrInvalidCoordinate, s)
	}
	for _, p := range parts {
		if p == "" {
			return Coordinate{}, fmt.Errorf("%w: %q (expected groupId:artifactId:version)", ErrInvalidCoordinate, s)
		}
	}
	return Coordinate{GroupID: parts[0], ArtifactID: parts[1], Version: parts[2]}, nil
}

// String returns the canonical "groupId:artifactId:version" form.
func (c Coordinate) String() string {
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version
}

// POMURL maps the coordinate to the URL of its POM descriptor in the
// repository rooted at repoBase. Trailing slashes on repoBase are stripped,
// and dots in the groupId become path separators:
//
//	{repoBase}/{group/path}/{artifact}/{version}/{artifact}-{version}.pom
//
// POMURL is a pure function; it performs no I/O and no validation beyond
// simple string assembly.
func (c Coordinate) POMURL(repoBase string) string {
	repoBase = strings.TrimRight(repoBase, "/")
	groupPath := strings.ReplaceAll(c.GroupID, ".", "/")
	return fmt.Sprintf("%s/%s/%s/%s/%s-%s.pom",
		repoBase, groupPath, c.ArtifactID, c.Version, c.ArtifactID, c.Version)
}
