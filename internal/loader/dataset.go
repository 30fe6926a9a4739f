package loader

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/cellmesh/rnrmesh/internal/geometry"
	"github.com/cellmesh/rnrmesh/internal/mesh"
)

//go:embed schema.cue
var schemaCUE string

// Dataset is the decoded form of a tissue dataset file.
type Dataset struct {
	Name     string        `yaml:"name"`
	Vertices [][3]float64  `yaml:"vertices"`
	Cells    []DatasetCell `yaml:"cells"`
}

// DatasetCell lists one cell's faces as outward-wound vertex-id rings.
type DatasetCell struct {
	Faces [][]int `yaml:"faces"`
}

// LoadDataset reads, validates and builds a tissue mesh from a YAML dataset
// file. The file is checked against the embedded CUE schema before the mesh
// is constructed, so shape errors carry the schema's message instead of a
// half-built mesh.
func LoadDataset(path string) (*mesh.Mesh, *Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: err.Error()}
	}

	if err := validateSchema(raw, "#Dataset"); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeSchema, Path: path, Message: err.Error()}
	}

	var ds Dataset
	if err := yaml.Unmarshal(raw, &ds); err != nil {
		return nil, nil, &LoadError{Code: ErrCodeDecodeFailed, Path: path, Message: err.Error()}
	}

	m, err := BuildMesh(&ds)
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeBuildFailed, Path: path, Message: err.Error()}
	}
	return m, &ds, nil
}

// BuildMesh constructs a mesh from an already decoded dataset.
func BuildMesh(ds *Dataset) (*mesh.Mesh, error) {
	b := NewBuilder()
	for _, p := range ds.Vertices {
		b.Vertex(p[0], p[1], p[2])
	}
	for ci, c := range ds.Cells {
		if len(c.Faces) == 0 {
			return nil, fmt.Errorf("cell %d has no faces", ci)
		}
		if _, _, err := b.Cell(c.Faces); err != nil {
			return nil, err
		}
	}
	m := b.Mesh()
	if err := geometry.UpdateAll(m); err != nil {
		return nil, err
	}
	return m, nil
}

// validateSchema unifies the YAML document with the named definition from
// the embedded schema and reports any mismatch.
func validateSchema(raw []byte, def string) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decoding YAML: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compiling schema: %w", err)
	}
	defVal := schema.LookupPath(cue.ParsePath(def))
	if !defVal.Exists() {
		return fmt.Errorf("schema definition %s not found", def)
	}

	unified := defVal.Unify(ctx.Encode(doc))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return err
	}
	return nil
}
