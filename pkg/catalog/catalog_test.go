package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		specs   []Spec
		wantErr error
	}{
		{"empty", nil, ErrEmptyCatalog},
		{"blank name", []Spec{{Name: ""}}, nil},
		{"duplicate", []Spec{{Name: "Room"}, {Name: "Room"}}, ErrDuplicateType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.specs)
			if err == nil {
				t.Fatal("New() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("New() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewBlankNameIsCoded(t *testing.T) {
	_, err := New([]Spec{{Name: "  "}})
	if !rgerrors.Is(err, rgerrors.ErrCodeInvalidCatalog) {
		t.Errorf("code = %v, want %v", rgerrors.GetCode(err), rgerrors.ErrCodeInvalidCatalog)
	}
}

func TestDefault(t *testing.T) {
	c := Default()

	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10", c.Len())
	}

	entrance, ok := c.Entrance()
	if !ok || entrance.Name() != "Entrance" {
		t.Errorf("Entrance() = %v, %v, want Entrance", entrance, ok)
	}

	none, ok := c.None()
	if !ok || none.Name() != "None" || none.Displayable() {
		t.Errorf("None() = %v (displayable %v), want hidden None", none, ok)
	}

	if warnings := c.Lint(); len(warnings) != 0 {
		t.Errorf("Lint() = %v, want none", warnings)
	}

	for _, dt := range c.Displayable() {
		if dt.IsNone() {
			t.Errorf("Displayable() contains none type %q", dt.Name())
		}
	}
}

func TestNodeTypeKind(t *testing.T) {
	c := Default()
	tests := []struct {
		name string
		want Kind
	}{
		{"Entrance", KindEntrance},
		{"Small Room", KindRoom},
		{"Boss Room", KindBossRoom},
		{"Corridor", KindCorridor},
		{"CorridorNS", KindCorridor},
		{"None", KindNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt, ok := c.Lookup(tt.name)
			if !ok {
				t.Fatalf("Lookup(%q) not found", tt.name)
			}
			if got := nt.Kind(); got != tt.want {
				t.Errorf("Kind() = %v, want %v", got, tt.want)
			}
			if got := nt.IsRoom(); got != !nt.IsCorridor() {
				t.Errorf("IsRoom() = %v, want %v", got, !nt.IsCorridor())
			}
		})
	}
}

func TestLookupFold(t *testing.T) {
	c := Default()
	nt, ok := c.LookupFold("boss room")
	if !ok || nt.Name() != "Boss Room" {
		t.Errorf("LookupFold(boss room) = %v, %v", nt, ok)
	}
	if _, ok := c.LookupFold("cellar"); ok {
		t.Error("LookupFold(cellar) found, want missing")
	}
}

func TestContains(t *testing.T) {
	a := Default()
	b := Default()
	nt, _ := a.Lookup("Corridor")

	if !a.Contains(nt) {
		t.Error("Contains(own type) = false")
	}
	if b.Contains(nt) {
		t.Error("Contains(foreign type) = true, want false")
	}
	if a.Contains(nil) {
		t.Error("Contains(nil) = true")
	}
}

func TestLint(t *testing.T) {
	c, err := New([]Spec{
		{Name: "Gate", Entrance: true},
		{Name: "Gate2", Entrance: true},
		{Name: "Weird", Corridor: true, BossRoom: true},
		{Name: "Tilted", CorridorNS: true},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	warnings := strings.Join(c.Lint(), "\n")
	for _, want := range []string{"Weird", "Tilted", "2 entrance types", "no none type"} {
		if !strings.Contains(warnings, want) {
			t.Errorf("Lint() missing %q in:\n%s", want, warnings)
		}
	}
}

const tomlCatalog = `
[[type]]
name = "Entrance"
entrance = true

[[type]]
name = "Hall"

[[type]]
name = "Passage"
corridor = true

[[type]]
name = "Unset"
none = true
displayable = false
`

func TestReadTOML(t *testing.T) {
	c, err := ReadTOML(strings.NewReader(tomlCatalog))
	if err != nil {
		t.Fatalf("ReadTOML() error = %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	names := []string{}
	for _, nt := range c.Types() {
		names = append(names, nt.Name())
	}
	if got := strings.Join(names, ","); got != "Entrance,Hall,Passage,Unset" {
		t.Errorf("order = %s", got)
	}
	hall, _ := c.Lookup("Hall")
	if !hall.Displayable() {
		t.Error("Hall.Displayable() = false, want default true")
	}
	unset, _ := c.Lookup("Unset")
	if unset.Displayable() || !unset.IsNone() {
		t.Error("Unset flags not decoded")
	}
}

func TestReadTOMLUnknownKey(t *testing.T) {
	_, err := ReadTOML(strings.NewReader("[[type]]\nname = \"Hall\"\ncoridor = true\n"))
	if !rgerrors.Is(err, rgerrors.ErrCodeInvalidCatalog) {
		t.Fatalf("error = %v, want %v", err, rgerrors.ErrCodeInvalidCatalog)
	}
	if !strings.Contains(err.Error(), "coridor") {
		t.Errorf("error %q does not name the unknown key", err)
	}
}

const hclCatalog = `
room_type "Entrance" {
  entrance = true
}

room_type "Hall" {}

room_type "Passage" {
  corridor    = true
  corridor_ns = true
}

room_type "Unset" {
  none        = true
  displayable = false
}
`

func TestParseHCL(t *testing.T) {
	c, err := ParseHCL([]byte(hclCatalog), "types.hcl")
	if err != nil {
		t.Fatalf("ParseHCL() error = %v", err)
	}
	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", c.Len())
	}
	passage, _ := c.Lookup("Passage")
	if !passage.IsCorridor() || !passage.IsCorridorNS() || passage.IsCorridorEW() {
		t.Error("Passage flags not decoded")
	}
	hall, _ := c.Lookup("Hall")
	if !hall.Displayable() || hall.Kind() != KindRoom {
		t.Error("Hall defaults not applied")
	}
}

func TestParseHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `room_type "Hall" {`},
		{"unknown attribute", `room_type "Hall" { colour = "red" }`},
		{"duplicate", "room_type \"Hall\" {}\nroom_type \"Hall\" {}\n"},
		{"empty", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseHCL([]byte(tt.src), "bad.hcl")
			if !rgerrors.Is(err, rgerrors.ErrCodeInvalidCatalog) {
				t.Errorf("ParseHCL() error = %v, want %v", err, rgerrors.ErrCodeInvalidCatalog)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, "types.toml")
	hclPath := filepath.Join(dir, "types.hcl")
	yamlPath := filepath.Join(dir, "types.yaml")
	for path, src := range map[string]string{tomlPath: tomlCatalog, hclPath: hclCatalog, yamlPath: "types: []"} {
		if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	for _, path := range []string{tomlPath, hclPath} {
		c, err := LoadFile(path)
		if err != nil {
			t.Errorf("LoadFile(%s) error = %v", filepath.Base(path), err)
			continue
		}
		if c.Len() != 4 {
			t.Errorf("LoadFile(%s).Len() = %d, want 4", filepath.Base(path), c.Len())
		}
	}

	if _, err := LoadFile(yamlPath); !rgerrors.Is(err, rgerrors.ErrCodeUnsupported) {
		t.Errorf("LoadFile(yaml) error = %v, want %v", err, rgerrors.ErrCodeUnsupported)
	}
	if _, err := LoadFile(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("LoadFile(missing) error = nil")
	}
}

func TestLoadExampleCatalogs(t *testing.T) {
	fromTOML, err := LoadFile(filepath.Join("..", "..", "examples", "catalog", "crypt.toml"))
	if err != nil {
		t.Fatalf("LoadFile(crypt.toml) error = %v", err)
	}
	fromHCL, err := LoadFile(filepath.Join("..", "..", "examples", "catalog", "crypt.hcl"))
	if err != nil {
		t.Fatalf("LoadFile(crypt.hcl) error = %v", err)
	}

	if fromTOML.Len() != fromHCL.Len() {
		t.Fatalf("Len() = %d (toml), %d (hcl), want equal", fromTOML.Len(), fromHCL.Len())
	}
	for i, a := range fromTOML.Types() {
		b := fromHCL.Types()[i]
		if a.Name() != b.Name() || a.Kind() != b.Kind() || a.Displayable() != b.Displayable() {
			t.Errorf("type %d = %s/%s/%v (toml), %s/%s/%v (hcl)",
				i, a.Name(), a.Kind(), a.Displayable(), b.Name(), b.Kind(), b.Displayable())
		}
	}
	if msgs := fromTOML.Lint(); len(msgs) > 0 {
		t.Errorf("Lint() = %v, want none", msgs)
	}
	if e, ok := fromTOML.Entrance(); !ok || e.Name() != "Stairs Down" {
		t.Errorf("Entrance() = %v, %v", e, ok)
	}
}
