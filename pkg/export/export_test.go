package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/nala-lattice/nala-go/pkg/element"
	"github.com/nala-lattice/nala-go/pkg/geometry"
	"github.com/nala-lattice/nala-go/pkg/lattice"
	"github.com/nala-lattice/nala-go/pkg/loader"
)

func place(name, hwType, area string, z, length float64) *element.Element {
	e := element.New(name, hwType)
	e.MachineArea = area
	e.Geometry.Middle = geometry.Position{Z: z}
	e.Geometry.Length = length
	return e
}

func testModel(t *testing.T) *lattice.Model {
	t.Helper()
	dip := place("SP1-DIP-01", element.TypeDipole, "SP1", 10, 0.4)
	dip.Geometry.Angle = 0.2
	dip.Geometry.Rotation = geometry.Rotation{Theta: -0.1}
	dip.Geometry.GlobalRotation = geometry.Rotation{Phi: 0.01, Psi: -0.02, Theta: 0.3}
	dip.Geometry.Middle.X = 0.125

	quad := place("INJ-QUAD-01", element.TypeQuadrupole, "INJ", 2, 0.2)
	quad.Model = "Custom"
	bpm := place("INJ-BPM-01", element.TypeBeamPositionMonitor, "INJ", 2, 0.1)
	bpm.Subelement = "INJ-QUAD-01"
	scr := place("SP1-SCR-01", element.TypeScreen, "SP1", 11, 0)
	scr.Subelement = element.SubelementUnnamed

	m, err := lattice.New([]*element.Element{
		place("INJ-CAV-01", element.TypeRFCavity, "INJ", 0.5, 1),
		quad,
		bpm,
		place("L01-HCOR-01", element.TypeHorizontalCorrector, "L01", 6, 0.1),
		dip,
		scr,
	},
		lattice.WithSections(lattice.SectionDefinitions{
			{Name: "L01", Members: []string{"L01-HCOR-01"}},
		}),
		lattice.WithLayouts(lattice.LayoutDefinitions{
			Layouts: []lattice.LayoutDefinition{
				{Name: "line", Sections: []string{"INJ", "L01"}},
				{Name: "SP1", Sections: []string{"INJ", "SP1"}},
			},
			Default: "line",
		}),
	)
	require.NoError(t, err)
	return m
}

func TestForFormat(t *testing.T) {
	for _, name := range []string{"yaml", ".yml", "JSON", "cbor", "msgpack", "mpk"} {
		enc, err := ForFormat(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, enc.Extension())
	}
	_, err := ForFormat("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cbor, json, msgpack, yaml")
	assert.Equal(t, []string{"cbor", "json", "msgpack", "yaml"}, Formats())
}

func TestWriteElementsKeepsOrder(t *testing.T) {
	m := testModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteElements(&buf, m.Elements(), YAML{}))

	parsed, err := loader.ParseElements(buf.Bytes())
	require.NoError(t, err)
	names := make([]string, len(parsed))
	for i, e := range parsed {
		names[i] = e.Name
	}
	assert.Equal(t, m.Names(), names)
	assert.NotContains(t, buf.String(), "name:")
}

func TestWriteElementsJSONOrder(t *testing.T) {
	elems := []*element.Element{
		place("Z", element.TypeQuadrupole, "S", 1, 1),
		place("A", element.TypeQuadrupole, "S", 3, 1),
	}
	var buf bytes.Buffer
	require.NoError(t, WriteElements(&buf, elems, JSON{}))

	out := buf.String()
	assert.Less(t, bytes.Index([]byte(out), []byte(`"Z"`)), bytes.Index([]byte(out), []byte(`"A"`)))

	var decoded map[string]element.Record
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, element.TypeQuadrupole, decoded["A"].HardwareType)
}

func TestBinaryEncoders(t *testing.T) {
	e := place("Q", element.TypeQuadrupole, "S", 1.5, 0.2)
	e.Subelement = "P"

	var cb bytes.Buffer
	require.NoError(t, WriteElement(&cb, e, CBOR{}))
	var fromCBOR element.Record
	require.NoError(t, cbor.Unmarshal(cb.Bytes(), &fromCBOR))
	assert.Equal(t, element.ToRecord(e), fromCBOR)

	var mp bytes.Buffer
	require.NoError(t, WriteElement(&mp, e, MsgPack{}))
	var fromMsgPack element.Record
	require.NoError(t, msgpack.Unmarshal(mp.Bytes(), &fromMsgPack))
	assert.Equal(t, element.ToRecord(e), fromMsgPack)
}

func TestOrderedBinaryMaps(t *testing.T) {
	doc := NewSectionsDocument(lattice.SectionDefinitions{
		{Name: "S02", Members: []string{"b"}},
		{Name: "S01", Members: []string{"a"}},
	})

	var cb bytes.Buffer
	require.NoError(t, CBOR{}.Encode(&cb, doc))
	var fromCBOR map[string]map[string][]string
	require.NoError(t, cbor.Unmarshal(cb.Bytes(), &fromCBOR))
	assert.Equal(t, []string{"a"}, fromCBOR["sections"]["S01"])

	var mp bytes.Buffer
	require.NoError(t, MsgPack{}.Encode(&mp, doc))
	var fromMsgPack map[string]map[string][]string
	require.NoError(t, msgpack.Unmarshal(mp.Bytes(), &fromMsgPack))
	assert.Equal(t, []string{"b"}, fromMsgPack["sections"]["S02"])

	assert.Equal(t, []byte{0xb8, 30}, cborMapHeader(30))
	assert.Equal(t, []byte{0xb9, 0x01, 0x00}, cborMapHeader(256))
}

func TestOrderedCBORIsDefiniteLength(t *testing.T) {
	doc := NewSectionsDocument(lattice.SectionDefinitions{
		{Name: "S02", Members: []string{"b"}},
		{Name: "S01", Members: []string{"a"}},
	})
	var buf bytes.Buffer
	require.NoError(t, CBOR{}.Encode(&buf, doc))

	strict, err := cbor.DecOptions{IndefLength: cbor.IndefLengthForbidden}.DecMode()
	require.NoError(t, err)
	var got map[string]map[string][]string
	require.NoError(t, strict.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got["sections"], 2)

	// Insertion order survives: S02 is the first key of the inner map.
	var outer map[string]cbor.RawMessage
	require.NoError(t, strict.Unmarshal(buf.Bytes(), &outer))
	inner := outer["sections"]
	require.NotEmpty(t, inner)
	assert.Equal(t, byte(0xa2), inner[0])
	key, err := cborMode.Marshal("S02")
	require.NoError(t, err)
	assert.Equal(t, key, []byte(inner[1:1+len(key)]))
}

func TestSectionsDocumentYAML(t *testing.T) {
	doc := NewSectionsDocument(lattice.SectionDefinitions{
		{Name: "S02", Members: []string{"C"}},
		{Name: "S01"},
	})
	var buf bytes.Buffer
	require.NoError(t, YAML{}.Encode(&buf, doc))
	assert.Equal(t, "sections:\n  S02:\n    - C\n  S01: []\n", buf.String())

	defs, err := loader.ParseSections(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []string{"S02", "S01"}, defs.Names())
}

func TestMachineRoundTrip(t *testing.T) {
	m := testModel(t)
	dir := t.TempDir()

	paths, err := WriteMachine(dir, m, YAML{})
	require.NoError(t, err)
	assert.Len(t, paths, m.Len()+2)
	assert.FileExists(t, filepath.Join(dir, ElementsDir, "Magnet", "Dipole", "SP1-DIP-01.yaml"))
	assert.FileExists(t, filepath.Join(dir, loader.SectionsFile))
	assert.FileExists(t, filepath.Join(dir, loader.LayoutsFile))

	back, err := loader.LoadMachine(dir)
	require.NoError(t, err)

	assert.ElementsMatch(t, m.Names(), back.Names())
	for _, name := range m.Names() {
		want, err := m.GetElement(name)
		require.NoError(t, err)
		got, err := back.GetElement(name)
		require.NoError(t, err)

		assert.Equal(t, want.Geometry, got.Geometry, name)
		assert.Equal(t, want.Class, got.Class, name)
		assert.Equal(t, want.Type, got.Type, name)
		assert.Equal(t, want.Model, got.Model, name)
		assert.Equal(t, want.MachineArea, got.MachineArea, name)
		assert.Equal(t, want.Subelement, got.Subelement, name)
	}

	assert.Equal(t, m.Sections(), back.Sections())
	assert.Equal(t, m.Layouts(), back.Layouts())
	assert.Equal(t, m.DefaultPath(), back.DefaultPath())
	for _, path := range m.Layouts() {
		want, err := m.ElementsBetween(lattice.Query{Path: path})
		require.NoError(t, err)
		got, err := back.ElementsBetween(lattice.Query{Path: path})
		require.NoError(t, err)
		assert.Equal(t, want, got, path)
	}
}

func TestWriteMachineOtherFormats(t *testing.T) {
	m := testModel(t)
	dir := t.TempDir()

	_, err := WriteMachine(dir, m, JSON{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "layouts.json"))
	require.NoError(t, err)
	var doc struct {
		Layouts map[string][]string `json:"layouts"`
		Default string              `json:"default_layout"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "line", doc.Default)
	assert.Equal(t, []string{"INJ", "SP1"}, doc.Layouts["SP1"])
}

func TestWriteSummary(t *testing.T) {
	m := testModel(t)

	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, m, YAML{}))

	var info map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &info))
	assert.NotEmpty(t, info)

	var cb bytes.Buffer
	require.NoError(t, WriteSummary(&cb, m, CBOR{}))
	var decoded lattice.ModelInfo
	require.NoError(t, cbor.Unmarshal(cb.Bytes(), &decoded))
	assert.Equal(t, m.BuildID(), decoded.BuildID)
	assert.Equal(t, "line", decoded.DefaultPath)
}

func TestBuildTable(t *testing.T) {
	m := testModel(t)

	table, err := BuildTable(m, lattice.Query{Path: "line"}, lattice.SOptions{})
	require.NoError(t, err)
	assert.Equal(t, "line", table.Path)

	names := make([]string, len(table.Rows))
	for i, r := range table.Rows {
		names[i] = r.Name
	}
	assert.Equal(t, []string{"INJ-CAV-01", "line_drift_1", "INJ-QUAD-01", "line_drift_2", "L01-HCOR-01"}, names)

	last := table.Rows[len(table.Rows)-1]
	assert.InDelta(t, 6.05, last.S, 1e-9)
	assert.Equal(t, element.ClassDrift, table.Rows[1].Class)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, m, lattice.Query{Path: "line"}, lattice.SOptions{}, JSON{}))
	assert.Contains(t, buf.String(), `"line_drift_2"`)

	_, err = BuildTable(m, lattice.Query{Path: "nope"}, lattice.SOptions{})
	assert.ErrorIs(t, err, lattice.ErrNotFound)
}
