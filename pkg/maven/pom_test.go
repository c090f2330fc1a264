package maven

import (
	"encoding/xml"
	"reflect"
	"testing"
)

const namespacedPOM = `<?xml version="1.0" encoding="UTF-8"?>
<project xmlns="http://maven.apache.org/POM/4.0.0">
  <groupId>org.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0.0</version>
  <properties>
    <commons.version> 3.12.0 </commons.version>
    <java.level>11</java.level>
  </properties>
  <dependencies>
    <dependency>
      <groupId>org.apache.commons</groupId>
      <artifactId>commons-lang3</artifactId>
      <version>${commons.version}</version>
    </dependency>
  </dependencies>
</project>`

const plainPOM = `<project>
  <groupId>org.example</groupId>
  <artifactId>app</artifactId>
  <version>1.0.0</version>
  <properties>
    <lib.version>2.0</lib.version>
  </properties>
  <dependencies>
    <dependency>
      <groupId>org.example</groupId>
      <artifactId>lib</artifactId>
      <version>${lib.version}</version>
    </dependency>
  </dependencies>
</project>`

func TestProperties_Unmarshal(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want Properties
	}{
		{"with namespace", namespacedPOM, Properties{"commons.version": "3.12.0", "java.level": "11"}},
		{"without namespace", plainPOM, Properties{"lib.version": "2.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pom Project
			if err := xml.Unmarshal([]byte(tt.doc), &pom); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(pom.Properties, tt.want) {
				t.Errorf("got %v, want %v", pom.Properties, tt.want)
			}
		})
	}
}

func TestProperties_Expand(t *testing.T) {
	props := Properties{
		"spring.version": "5.3.21",
		"indirect":       "${spring.version}",
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"hit", "${spring.version}", "5.3.21"},
		{"miss left verbatim", "${unknown.key}", "${unknown.key}"},
		{"mixed text", "v${spring.version}-final", "v5.3.21-final"},
		{"single pass", "${indirect}", "${spring.version}"},
		{"no placeholder", "1.2.3", "1.2.3"},
		{"multiple occurrences", "${spring.version}+${spring.version}", "5.3.21+5.3.21"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := props.Expand(tt.in); got != tt.want {
				t.Errorf("Expand(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestProject_DirectDependencies_Scopes(t *testing.T) {
	pom := &Project{
		Dependencies: []Dependency{
			{GroupID: "g1", ArtifactID: "a1", Version: "1.0", Scope: "compile"},
			{GroupID: "g2", ArtifactID: "a2", Version: "1.0", Scope: "runtime"},
			{GroupID: "g3", ArtifactID: "a3", Version: "1.0", Scope: "system"},
			{GroupID: "g4", ArtifactID: "a4", Version: "1.0"},
			{GroupID: "g5", ArtifactID: "a5", Version: "1.0", Scope: "test"},
			{GroupID: "g6", ArtifactID: "a6", Version: "1.0", Scope: "provided"},
			{GroupID: "g7", ArtifactID: "a7", Version: "1.0", Scope: "import"},
		},
	}

	want := []string{"g1:a1:1.0", "g2:a2:1.0", "g3:a3:1.0", "g4:a4:1.0"}
	if got := pom.DirectDependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProject_DirectDependencies_SkipsIncomplete(t *testing.T) {
	pom := &Project{
		Properties: Properties{"lib.version": "2.8.0"},
		Dependencies: []Dependency{
			{ArtifactID: "no-group", Version: "1.0"},
			{GroupID: "no-artifact", Version: "1.0"},
			{GroupID: "g", ArtifactID: "no-version"},
			{GroupID: "g", ArtifactID: "resolved", Version: "${lib.version}"},
			{GroupID: "g", ArtifactID: "unresolved", Version: "${missing.version}"},
		},
	}

	// An unresolvable placeholder is kept verbatim, not dropped; only a
	// missing version text excludes the declaration.
	want := []string{"g:resolved:2.8.0", "g:unresolved:${missing.version}"}
	if got := pom.DirectDependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestProject_DirectDependencies_DeclarationOrder(t *testing.T) {
	var pom Project
	if err := xml.Unmarshal([]byte(namespacedPOM), &pom); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	want := []string{"org.apache.commons:commons-lang3:3.12.0"}
	if got := pom.DirectDependencies(); !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
