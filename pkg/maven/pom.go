package maven

import (
	"encoding/xml"
	"regexp"
	"strings"
)

// Project is the parsed form of a POM descriptor.
//
// Only the parts relevant to dependency resolution are modeled: the
// <properties> block and the project-level <dependencies> list. Parent POMs,
// dependencyManagement, and build sections are intentionally ignored.
//
// Field tags use local element names, so documents both with and without the
// Maven XML namespace declaration unmarshal identically.
type Project struct {
	GroupID      string       `xml:"groupId"`
	ArtifactID   string       `xml:"artifactId"`
	Version      string       `xml:"version"`
	Packaging    string       `xml:"packaging"`
	Properties   Properties   `xml:"properties"`
	Dependencies []Dependency `xml:"dependencies>dependency"`
}

// Dependency is a single <dependency> declaration.
type Dependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"` // may contain ${...} placeholders
	Scope      string `xml:"scope"`   // empty means compile
}

// Properties holds the <properties> block as a flat key/value map.
// Keys are element local names (namespace prefixes stripped) and values are
// whitespace-trimmed text content.
type Properties map[string]string

// UnmarshalXML collects the immediate children of <properties> into the map.
func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	m := make(Properties)
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			var v string
			if err := d.DecodeElement(&v, &t); err != nil {
				return err
			}
			m[t.Name.Local] = strings.TrimSpace(v)
		case xml.EndElement:
			*p = m
			return nil
		}
	}
}

var placeholderRe = regexp.MustCompile(`\$\{([^}]+)\}`)

// Expand replaces every ${key} occurrence in s with the property value for
// key. Occurrences with no matching key are left verbatim. Substitution is a
// single pass: a value that itself contains ${...} is not re-expanded.
func (p Properties) Expand(s string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		if v, ok := p[match[2:len(match)-1]]; ok {
			return v
		}
		return match
	})
}

// transitiveScopes are the dependency scopes that propagate to consumers.
// Absent scope defaults to compile.
var transitiveScopes = map[string]bool{
	"compile": true,
	"runtime": true,
	"system":  true,
}

// DirectDependencies returns the coordinates of the project's directly
// declared dependencies, in declaration order.
//
// Declarations are skipped when their scope is outside compile/runtime/system,
// when groupId or artifactId is missing, or when no concrete version remains
// after expanding ${...} placeholders against the project's own properties.
// No parent POM or dependencyManagement lookup is attempted.
func (p *Project) DirectDependencies() []string {
	var deps []string
	for _, dep := range p.Dependencies {
		scope := strings.TrimSpace(dep.Scope)
		if scope != "" && !transitiveScopes[scope] {
			continue
		}
		groupID := strings.TrimSpace(dep.GroupID)
		artifactID := strings.TrimSpace(dep.ArtifactID)
		if groupID == "" || artifactID == "" {
			continue
		}
		version := strings.TrimSpace(dep.Version)
		if version == "" {
			continue
		}
		version = p.Properties.Expand(version)
		deps = append(deps, groupID+":"+artifactID+":"+version)
	}
	return deps
}
