package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/internal/hash"
	"github.com/arloliu/savkit/section"
)

var testKinds = map[string]string{
	"PlayReport_PlayTime":  "s32",
	"CurrentRupee":         "s32",
	"CurrentHart":          "s32",
	"PlayerSavePosMapName": "string",
	"LastSaveTime_Lower":   "s32",
	"SaveDistrictName":     "string64",
	"SaveLocationName":     "string64",
	"PlayerSavePos":        "vector3f",
}

// saveBuilder assembles a small little-endian savefile.
type saveBuilder struct {
	engine endian.EndianEngine
	slots  []section.Slot
}

func (b *saveBuilder) s32(name string, v int32) *saveBuilder {
	s := section.Slot{Hash: hash.Field(name)}
	b.engine.PutUint32(s.Payload[:], uint32(v)) //nolint:gosec
	b.slots = append(b.slots, s)

	return b
}

func (b *saveBuilder) str(name string, capacity int, v string) *saveBuilder {
	for i := 0; i < capacity; i += 4 {
		s := section.Slot{Hash: hash.Field(name)}
		if i < len(v) {
			copy(s.Payload[:], v[i:])
		}
		b.slots = append(b.slots, s)
	}

	return b
}

func (b *saveBuilder) bytes() []byte {
	buf := make([]byte, section.SlotOffset(len(b.slots)))
	section.NewHeader(0x471E).WriteToSlice(buf, b.engine)
	for i, s := range b.slots {
		s.WriteToSlice(buf, section.SlotOffset(i), b.engine)
	}

	return buf
}

func testSave(rupees int32) []byte {
	b := &saveBuilder{engine: endian.GetLittleEndianEngine()}

	return b.s32("PlayReport_PlayTime", 3725).
		s32("CurrentRupee", rupees).
		s32("CurrentHart", 12).
		str("PlayerSavePosMapName", 32, "MainField").
		s32("LastSaveTime_Lower", 1700000000).
		str("SaveDistrictName", 64, "Location_Kakariko").
		str("SaveLocationName", 64, "Village").
		s32("PlayerSavePos", 0).s32("PlayerSavePos", 0).s32("PlayerSavePos", 0).
		bytes()
}

// testEnv writes a type table, name list, localization tables and two savefiles.
type testEnv struct {
	dir    string
	types  string
	names  string
	save   string
	other  string
	config string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()

	dir := t.TempDir()
	write := func(name string, data []byte) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, data, 0o600))
		return path
	}

	entries := map[string]string{}
	names := ""
	for name, kind := range testKinds {
		entries[strconv.Itoa(int(int32(hash.Field(name))))] = kind //nolint:gosec
		names += name + "\n"
	}
	types, err := json.Marshal(entries)
	require.NoError(t, err)

	env := testEnv{
		dir:   dir,
		types: write("gamedata.json", types),
		names: write("fields.txt", []byte("# field names\n"+names)),
		save:  write("progress.sav", testSave(500)),
		other: write("other.sav", testSave(750)),
	}
	write("LocationMarker.json", []byte(`{"Kakariko": "Kakariko Village", "Village": "Village Square"}`))
	write("locs.json", []byte(`{"Village": "Necluda"}`))
	env.config = write("savinfo.yaml", []byte("types: gamedata.json\nnames: fields.txt\nmarkers: LocationMarker.json\nlocations: locs.json\ncolor: never\n"))

	return env
}

// run executes savinfo with args and returns its standard output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()

	return out.String(), err
}

func TestInfoCommand(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Pretty output", func(t *testing.T) {
		out, err := run(t, "-t", env.types, "info", env.save)
		require.NoError(t, err)
		assert.Contains(t, out, "1.6.0 (0x471e)")
		assert.Contains(t, out, "little-endian")
		assert.Contains(t, out, "1:02:05")
		assert.Contains(t, out, "500")
		assert.Contains(t, out, "MainField")
	})

	t.Run("CSV output", func(t *testing.T) {
		out, err := run(t, "-t", env.types, "info", "--csv", env.save)
		require.NoError(t, err)
		assert.Equal(t, "3725,1:02:05,500,MainField,\n", out)
	})

	t.Run("Missing savefile", func(t *testing.T) {
		_, err := run(t, "-t", env.types, "info", filepath.Join(env.dir, "missing.sav"))
		assert.Error(t, err)
	})

	t.Run("Missing type table", func(t *testing.T) {
		_, err := run(t, "-t", filepath.Join(env.dir, "missing.json"), "info", env.save)
		assert.Error(t, err)
	})
}

func TestCaptionCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "-c", env.config, "caption", env.save)
	require.NoError(t, err)
	assert.Equal(t, "1700000000,14/11/2023,[Kakariko Village {Location_Kakariko}] Village Square {Village} (Necluda),\n", out)

	out, err = run(t, "-t", env.types, "caption", env.save)
	require.NoError(t, err)
	assert.Equal(t, "1700000000,14/11/2023,[Location_Kakariko {Location_Kakariko}] Village {Village},\n", out)
}

func TestGetCommand(t *testing.T) {
	env := newTestEnv(t)

	t.Run("Text", func(t *testing.T) {
		out, err := run(t, "-t", env.types, "--color", "never", "get", env.save, "CurrentRupee", "SaveLocationName", "PlayerSavePos[1]")
		require.NoError(t, err)
		assert.Contains(t, out, "CurrentRupee:     500")
		assert.Contains(t, out, `"Village"`)
		assert.Contains(t, out, "PlayerSavePos[1]: 0")
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := run(t, "-t", env.types, "get", "-f", "yaml", env.save, "CurrentRupee")
		require.NoError(t, err)
		assert.Equal(t, "CurrentRupee: 500\n", out)
	})

	t.Run("JSON", func(t *testing.T) {
		out, err := run(t, "-t", env.types, "get", "-f", "json", env.save, "CurrentHart")
		require.NoError(t, err)
		assert.JSONEq(t, `{"CurrentHart": 12}`, out)
	})

	t.Run("Unknown key", func(t *testing.T) {
		_, err := run(t, "-t", env.types, "get", env.save, "NoSuchField")
		assert.Error(t, err)
	})

	t.Run("Unknown format", func(t *testing.T) {
		_, err := run(t, "-t", env.types, "get", "-f", "xml", env.save, "CurrentRupee")
		assert.Error(t, err)
	})
}

func TestDumpCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "-c", env.config, "dump", env.save)
	require.NoError(t, err)
	assert.Contains(t, out, "0000000c PlayReport_PlayTime s32 3725")
	assert.Contains(t, out, `SaveDistrictName string64 "Location_Kakariko"`)
	assert.Contains(t, out, "PlayerSavePos vector3f [0, 0, 0]")

	out, err = run(t, "-c", env.config, "dump", "-n", "2", env.save)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte("\n")))
}

func TestDiffCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "-c", env.config, "diff", env.save, env.other)
	require.NoError(t, err)
	assert.Equal(t, "CurrentRupee: 500 -> 750\n", out)

	out, err = run(t, "-c", env.config, "diff", "--words", env.save, env.other)
	require.NoError(t, err)
	assert.Equal(t, "00000018\n", out)

	out, err = run(t, "-c", env.config, "diff", env.save, env.save)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPatchCommand(t *testing.T) {
	env := newTestEnv(t)
	before, err := os.ReadFile(env.save)
	require.NoError(t, err)

	t.Run("Preview", func(t *testing.T) {
		doc := filepath.Join(env.dir, "patch.yaml")
		require.NoError(t, os.WriteFile(doc, []byte("Rupees: 999\nCurrentHeart: 20\n"), 0o600))

		out, err := run(t, "-c", env.config, "patch", "--alias", "Rupees=CurrentRupee", env.save, doc)
		require.NoError(t, err)
		assert.Contains(t, out, "CurrentRupee: 500 -> 999")
		assert.Contains(t, out, "CurrentHart: 12 -> 20")
		assert.Contains(t, out, "2 applied, 0 rejected, 2 fields changed")
	})

	t.Run("Compressed snapshot", func(t *testing.T) {
		doc := filepath.Join(env.dir, "rupees.json")
		require.NoError(t, os.WriteFile(doc, []byte(`{"CurrentRupee": 42}`), 0o600))

		for _, codec := range []string{"zstd", "s2", "lz4"} {
			out, err := run(t, "-c", env.config, "--backup", codec, "patch", env.save, doc)
			require.NoError(t, err, codec)
			assert.Contains(t, out, "CurrentRupee: 500 -> 42", codec)
		}

		_, err := run(t, "-c", env.config, "--backup", "gzip", "patch", env.save, doc)
		assert.Error(t, err)
	})

	t.Run("Rejected fields", func(t *testing.T) {
		doc := filepath.Join(env.dir, "bad.json")
		require.NoError(t, os.WriteFile(doc, []byte(`{"CurrentRupee": 1.5, "CurrentHart": 3}`), 0o600))

		out, err := run(t, "-c", env.config, "patch", env.save, doc)
		assert.Error(t, err)
		assert.Contains(t, out, "1 applied, 1 rejected")
		assert.Contains(t, out, "rejected: CurrentRupee:")
	})

	after, err := os.ReadFile(env.save)
	require.NoError(t, err)
	assert.Equal(t, before, after, "patch must not modify the savefile")
}

func TestTypesCommand(t *testing.T) {
	env := newTestEnv(t)

	out, err := run(t, "-c", env.config, "types")
	require.NoError(t, err)
	assert.Contains(t, out, "Entries: 8")
	assert.Contains(t, out, "Names:   8")
	assert.Contains(t, out, "s32:")

	out, err = run(t, "-c", env.config, "types", "--list")
	require.NoError(t, err)
	assert.Contains(t, out, "CurrentRupee")
	assert.Contains(t, out, strconv.FormatUint(uint64(hash.Field("CurrentRupee")), 16))
}
