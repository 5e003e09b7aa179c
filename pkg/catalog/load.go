package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	rgerrors "github.com/matzehuels/roomgraph/pkg/errors"
)

// tomlFile is the top-level shape of a TOML catalog.
type tomlFile struct {
	Types []Spec `toml:"type"`
}

// hclFile is the top-level shape of an HCL catalog.
type hclFile struct {
	Types []*hclType `hcl:"room_type,block"`
}

type hclType struct {
	Name        string `hcl:"name,label"`
	Displayable *bool  `hcl:"displayable,optional"`
	Corridor    bool   `hcl:"corridor,optional"`
	CorridorNS  bool   `hcl:"corridor_ns,optional"`
	CorridorEW  bool   `hcl:"corridor_ew,optional"`
	Entrance    bool   `hcl:"entrance,optional"`
	BossRoom    bool   `hcl:"boss_room,optional"`
	None        bool   `hcl:"none,optional"`
}

// ReadTOML decodes a TOML catalog from r.
// Unknown keys are rejected so that a misspelled flag does not silently
// turn a corridor into a room.
func ReadTOML(r io.Reader) (*Catalog, error) {
	var f tomlFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidCatalog, err, "decode toml catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, rgerrors.New(rgerrors.ErrCodeInvalidCatalog, "unknown catalog keys: %s", strings.Join(keys, ", "))
	}
	return build(f.Types)
}

// ParseHCL decodes an HCL catalog from src. filename is only used in
// diagnostics.
func ParseHCL(src []byte, filename string) (*Catalog, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidCatalog, diags, "parse hcl catalog %s", filename)
	}

	var f hclFile
	diags = gohcl.DecodeBody(file.Body, nil, &f)
	if diags.HasErrors() {
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidCatalog, diags, "decode hcl catalog %s", filename)
	}

	specs := make([]Spec, len(f.Types))
	for i, t := range f.Types {
		specs[i] = Spec{
			Name:        t.Name,
			Displayable: t.Displayable,
			Corridor:    t.Corridor,
			CorridorNS:  t.CorridorNS,
			CorridorEW:  t.CorridorEW,
			Entrance:    t.Entrance,
			BossRoom:    t.BossRoom,
			None:        t.None,
		}
	}
	return build(specs)
}

// LoadFile reads a catalog from path, choosing the format by extension
// (.toml or .hcl).
func LoadFile(path string) (*Catalog, error) {
	if err := rgerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return ReadTOML(f)
	case ".hcl":
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		return ParseHCL(src, path)
	default:
		return nil, rgerrors.New(rgerrors.ErrCodeUnsupported, "unsupported catalog format %q (want .toml or .hcl)", ext)
	}
}

func build(specs []Spec) (*Catalog, error) {
	c, err := New(specs)
	if err != nil {
		if rgerrors.GetCode(err) != "" {
			return nil, err
		}
		return nil, rgerrors.Wrap(rgerrors.ErrCodeInvalidCatalog, err, "invalid catalog")
	}
	return c, nil
}
