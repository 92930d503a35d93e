package savefile

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/errs"
	"github.com/arloliu/savkit/internal/hash"
	"github.com/arloliu/savkit/section"
)

func TestNew(t *testing.T) {
	t.Run("nil table", func(t *testing.T) {
		_, err := New(nil)
		require.Error(t, err)
	})

	t.Run("invalid backup compression", func(t *testing.T) {
		_, err := New(testTable(t), WithBackupCompression(0))
		require.ErrorIs(t, err, errs.ErrInvalidCompression)
	})

	t.Run("not loaded", func(t *testing.T) {
		sav, err := New(testTable(t))
		require.NoError(t, err)
		require.False(t, sav.Loaded())
		require.False(t, sav.IsKey("CurrentRupee"))

		_, err = sav.Get("CurrentRupee")
		require.ErrorIs(t, err, errs.ErrNotLoaded)
		require.ErrorIs(t, sav.Set("CurrentRupee", 1), errs.ErrNotLoaded)
		require.ErrorIs(t, sav.Add("CurrentRupee", 1), errs.ErrNotLoaded)
		require.ErrorIs(t, sav.Backup(), errs.ErrNotLoaded)
		_, err = sav.Clone()
		require.ErrorIs(t, err, errs.ErrNotLoaded)
	})
}

func TestRead(t *testing.T) {
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			sav := loadFixture(t, fullFixture(engine))

			require.True(t, sav.Loaded())
			require.Equal(t, uint32(testVersion), sav.Version())
			require.Equal(t, endian.IsBigEndian(engine), endian.IsBigEndian(sav.ByteOrder()))

			release, ok := sav.Release()
			require.True(t, ok)
			require.Equal(t, "1.6.0", release.Name)

			off, err := sav.Offset("CurrentRupee")
			require.NoError(t, err)
			require.Equal(t, section.SlotOffset(1), off)
		})
	}
}

func TestRead_FormatErrors(t *testing.T) {
	good := fullFixture(endian.GetLittleEndianEngine()).bytes()

	tests := []struct {
		name   string
		mutate func([]byte) []byte
		want   error
	}{
		{"too short", func(b []byte) []byte { return b[:8] }, errs.ErrBufferTooShort},
		{"bad probe", func(b []byte) []byte { b[8] = 2; return b }, errs.ErrUnknownByteOrder},
		{"unknown version", func(b []byte) []byte { b[0] = 0x01; return b }, errs.ErrUnknownVersion},
		{"bad marker", func(b []byte) []byte { b[5] = 0; return b }, errs.ErrInvalidMarker},
		{"size mismatch", func(b []byte) []byte { return append(b, make([]byte, 4000)...) }, errs.ErrSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sav, err := New(testTable(t))
			require.NoError(t, err)

			// a successful load first, so the failure must drop it
			require.NoError(t, sav.Read(bytes.Clone(good)))
			require.NoError(t, sav.Backup())

			err = sav.Read(tt.mutate(bytes.Clone(good)))
			require.ErrorIs(t, err, tt.want)
			require.False(t, sav.Loaded())
			require.False(t, sav.HasBackup())
			require.Nil(t, sav.Raw())

			_, err = sav.Get("CurrentRupee")
			require.ErrorIs(t, err, errs.ErrNotLoaded)
		})
	}
}

func TestRead_LowestOffsetWins(t *testing.T) {
	buf := newFixture(endian.GetLittleEndianEngine()).
		s32("CurrentRupee", 10).
		f32("Speed", 2).
		s32("CurrentRupee", 99).
		bytes()

	sav, err := New(testTable(t))
	require.NoError(t, err)
	require.NoError(t, sav.Read(buf))

	v, err := sav.GetS32("CurrentRupee")
	require.NoError(t, err)
	require.Equal(t, int32(10), v)

	n, err := sav.RunLength("CurrentRupee")
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestRead_IgnoresTrailingPartialSlot(t *testing.T) {
	buf := newFixture(endian.GetLittleEndianEngine()).s32("CurrentRupee", 10).bytes()
	buf = append(buf, 0xAA, 0xBB, 0xCC)

	sav, err := New(testTable(t))
	require.NoError(t, err)
	require.NoError(t, sav.Read(buf))
	require.Len(t, sav.Keys(), 1)
}

func TestIsKey(t *testing.T) {
	sav := loadFixture(t, fullFixture(endian.GetLittleEndianEngine()))

	require.True(t, sav.IsKey("CurrentRupee"))
	require.True(t, sav.IsKey("Items[7]"))
	require.True(t, sav.IsKey("UnknownLayout"))
	require.False(t, sav.IsKey("NotInFile"))
	require.False(t, sav.IsKey("Items["))
}

func TestKeys(t *testing.T) {
	sav := loadFixture(t, fullFixture(endian.GetBigEndianEngine()))

	keys := sav.Keys()
	require.Len(t, keys, len(testKinds))
	require.Equal(t, hash.Field("Flag"), keys[0])
	require.Equal(t, hash.Field("CurrentRupee"), keys[1])
	require.Equal(t, hash.Field("UnknownLayout"), keys[len(keys)-1])
}

func TestLookupErrors(t *testing.T) {
	sav := loadFixture(t, fullFixture(endian.GetLittleEndianEngine()))

	t.Run("offset missing", func(t *testing.T) {
		_, err := sav.Get("NotInFile")
		require.ErrorIs(t, err, errs.ErrUnknownKey)

		var lookupErr *errs.LookupError
		require.True(t, errors.As(err, &lookupErr))
		require.Equal(t, "NotInFile", lookupErr.Key)
		require.Equal(t, hash.Field("NotInFile"), lookupErr.Hash)
	})

	t.Run("kind missing", func(t *testing.T) {
		_, err := sav.Get("UnknownLayout")
		require.ErrorIs(t, err, errs.ErrUnknownKind)
		require.ErrorIs(t, sav.Set("UnknownLayout", 1), errs.ErrUnknownKind)
	})

	t.Run("malformed key", func(t *testing.T) {
		_, err := sav.Get("Items[x]")
		require.ErrorIs(t, err, errs.ErrInvalidKey)
	})
}

func TestWithLogger(t *testing.T) {
	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{Level: slog.LevelDebug}))

	sav := loadFixture(t, fullFixture(endian.GetLittleEndianEngine()), WithLogger(logger))
	require.Contains(t, out.String(), "savefile loaded")
	require.Contains(t, out.String(), "release=1.6.0")

	_, err := sav.Get("NotInFile")
	require.Error(t, err)
	require.Contains(t, out.String(), "field offset not found")
	require.Contains(t, out.String(), "key=NotInFile")
}

// The same logical content must decode identically whatever the byte order.
func TestEndiannessEquivalence(t *testing.T) {
	little := loadFixture(t, fullFixture(endian.GetLittleEndianEngine()))
	big := loadFixture(t, fullFixture(endian.GetBigEndianEngine()))

	require.NotEqual(t, little.Raw(), big.Raw())
	require.Equal(t, little.Keys(), big.Keys())

	for name := range testKinds {
		if name == "NotInFile" {
			continue
		}
		l, err := little.Get(name)
		require.NoError(t, err, name)
		b, err := big.Get(name)
		require.NoError(t, err, name)
		require.Equal(t, l, b, name)
	}
}

// Scenario: rupee count in a full-size 1.6.0 savefile.
func TestScenario_Rupees(t *testing.T) {
	for name, engine := range engines() {
		t.Run(name, func(t *testing.T) {
			f := newFixture(engine).s32("CurrentRupee", 500).pad(1027216)
			sav := loadFixture(t, f)

			release, ok := sav.Release()
			require.True(t, ok)
			require.Equal(t, "1.6.0", release.Name)
			require.Equal(t, 1027216, sav.Size())

			v, err := sav.Get("CurrentRupee")
			require.NoError(t, err)
			require.Equal(t, int32(500), v)

			require.NoError(t, sav.Add("CurrentRupee", 50))
			v, err = sav.Get("CurrentRupee")
			require.NoError(t, err)
			require.Equal(t, int32(550), v)
		})
	}
}

func TestFingerprint(t *testing.T) {
	a := loadFixture(t, fullFixture(endian.GetLittleEndianEngine()))
	b := loadFixture(t, fullFixture(endian.GetLittleEndianEngine()))
	require.Equal(t, a.Fingerprint(), b.Fingerprint())

	require.NoError(t, b.Set("CurrentRupee", 1))
	require.NotEqual(t, a.Fingerprint(), b.Fingerprint())
}
