package typetable

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/format"
	"github.com/arloliu/savkit/internal/hash"
)

// CRC32 of "Location" is 0xA7E8EB9D, which renders as -1477907555 when signed.
const tableJSON = `{
	"588553208": "s32",
	"-1477907555": "string64",
	"756757889": "vector3f_array"
}`

func TestFromJSON(t *testing.T) {
	table, err := FromJSON([]byte(tableJSON), WithNames("CurrentRupee", "Location", "Arr"))
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	kind, ok := table.KindOf("CurrentRupee")
	require.True(t, ok)
	require.Equal(t, format.KindS32, kind)

	kind, ok = table.Kind(0xA7E8EB9D)
	require.True(t, ok)
	require.Equal(t, format.KindString64, kind)

	name, ok := table.Name(hash.Field("Location"))
	require.True(t, ok)
	require.Equal(t, "Location", name)
	require.False(t, table.HasCollision())
	require.Equal(t, []uint32{hash.Field("CurrentRupee"), hash.Field("Arr"), hash.Field("Location")}, table.Hashes())
}

func TestFromJSON_Errors(t *testing.T) {
	_, err := FromJSON([]byte(`{"1": "vector9f"}`))
	require.ErrorIs(t, err, errs.ErrInvalidKind)

	_, err = FromJSON([]byte(`{"one": "s32"}`))
	require.ErrorIs(t, err, errs.ErrInvalidHashKey)

	_, err = FromJSON([]byte(`[1, 2]`))
	require.Error(t, err)
}

func TestFromYAML(t *testing.T) {
	data := []byte("588553208: s32\n-1477907555: string64\n")

	table, err := FromYAML(data)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	kind, ok := table.KindOf("Location")
	require.True(t, ok)
	require.Equal(t, format.KindString64, kind)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "gamedata.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(tableJSON), 0o600))
	table, err := Load(jsonPath)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	yamlPath := filepath.Join(dir, "gamedata.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("588553208: bool\n"), 0o600))
	table, err = Load(yamlPath)
	require.NoError(t, err)
	kind, _ := table.KindOf("CurrentRupee")
	require.Equal(t, format.KindBool, kind)

	_, err = Load(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestLoadNames(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "names.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`["A", "B"]`), 0o600))
	names, err := LoadNames(jsonPath)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, names)

	txtPath := filepath.Join(dir, "names.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("# fields\nA\n\n  B  \n"), 0o600))
	names, err = LoadNames(txtPath)
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, names)
}

func TestResolve(t *testing.T) {
	table, err := New(nil, WithKinds(map[string]format.Kind{
		"Rupee":    format.KindS32,
		"Pos":      format.KindVector3f,
		"Items":    format.KindString64Array,
		"Flags":    format.KindBoolArray,
		"Counts":   format.KindS32Array,
		"Markers":  format.KindVector2fArray,
		"Location": format.KindString,
	}))
	require.NoError(t, err)
	require.Equal(t, 7, table.Len())

	tests := []struct {
		key  string
		kind format.Kind
	}{
		{"Rupee", format.KindS32},
		{"Pos", format.KindVector3f},
		{"Pos[1]", format.KindF32},
		{"Items[4]", format.KindString},
		{"Flags[0]", format.KindBool},
		{"Counts[2]", format.KindS32},
		{"Markers", format.KindVector2fArray},
		{"Markers[3]", format.KindVector2f},
		{"Markers[3][1]", format.KindF32},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			kind, err := table.Resolve(tt.key)
			require.NoError(t, err)
			require.Equal(t, tt.kind, kind)
		})
	}

	_, err = table.Resolve("Rupee[0]")
	require.ErrorIs(t, err, errs.ErrUnsupportedKind)

	_, err = table.Resolve("Pos[0][1]")
	require.ErrorIs(t, err, errs.ErrUnsupportedKind)

	_, err = table.Resolve("Location[0]")
	require.ErrorIs(t, err, errs.ErrUnsupportedKind)

	_, err = table.Resolve("Missing")
	require.ErrorIs(t, err, errs.ErrUnknownKind)
	var lookupErr *errs.LookupError
	require.ErrorAs(t, err, &lookupErr)
	require.Equal(t, hash.Field("Missing"), lookupErr.Hash)

	_, err = table.Resolve("Pos[")
	require.ErrorIs(t, err, errs.ErrInvalidKey)
}

func TestBuilder(t *testing.T) {
	b, err := NewBuilder()
	require.NoError(t, err)

	require.ErrorIs(t, b.Add(1, format.KindInvalid), errs.ErrInvalidKind)
	require.NoError(t, b.AddEntry("-1", "f32"))
	b.AddName("Alpha")

	table, err := b.Build()
	require.NoError(t, err)

	// Later additions to the builder do not leak into a built table.
	require.NoError(t, b.Add(2, format.KindBool))
	require.Equal(t, 1, table.Len())

	kind, ok := table.Kind(0xFFFFFFFF)
	require.True(t, ok)
	require.Equal(t, format.KindF32, kind)
	require.Equal(t, []string{"Alpha"}, table.Names())

	b.AddName("")
	_, err = b.Build()
	require.ErrorIs(t, err, errs.ErrInvalidKey)
}

func TestTable_Collisions(t *testing.T) {
	// "plumless" and "buckeroo" share CRC32 0x4ddb0c25.
	table, err := New(map[uint32]format.Kind{0x4DDB0C25: format.KindS32}, WithNames("plumless", "buckeroo"))
	require.NoError(t, err)

	require.True(t, table.HasCollision())
	require.Equal(t, map[uint32][]string{0x4DDB0C25: {"plumless", "buckeroo"}}, table.Collisions())

	name, ok := table.Name(0x4DDB0C25)
	require.True(t, ok)
	require.Equal(t, "plumless", name)
}
