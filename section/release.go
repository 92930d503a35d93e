package section

import (
	"cmp"
	"slices"
)

// Release describes a known savefile layout revision.
type Release struct {
	Version uint32 // header version word
	Name    string // game release that writes this version
	Size    int    // expected buffer size in bytes
}

// releases is keyed by version word. Release 1.4.0 shares 0x471A with 1.4.1 and reports
// as the later release.
var releases = map[uint32]Release{
	0x24E2: {Version: 0x24E2, Name: "1.0.0", Size: 896976},
	0x24EE: {Version: 0x24EE, Name: "1.1.0", Size: 897160},
	0x2588: {Version: 0x2588, Name: "1.2.0", Size: 897112},
	0x29C0: {Version: 0x29C0, Name: "1.3.0", Size: 907824},
	0x2A46: {Version: 0x2A46, Name: "1.3.1", Size: 907824},
	0x3EF8: {Version: 0x3EF8, Name: "1.3.3", Size: 1020648},
	0x3EF9: {Version: 0x3EF9, Name: "1.3.4", Size: 1020648},
	0x471A: {Version: 0x471A, Name: "1.4.1", Size: 1027208},
	0x471B: {Version: 0x471B, Name: "1.5.0", Size: 1027208},
	0x471E: {Version: 0x471E, Name: "1.6.0", Size: 1027216},
}

// LookupRelease returns the release for a header version word.
func LookupRelease(version uint32) (Release, bool) {
	r, ok := releases[version]
	return r, ok
}

// Releases returns every known release in ascending version order.
func Releases() []Release {
	out := make([]Release, 0, len(releases))
	for _, r := range releases {
		out = append(out, r)
	}
	slices.SortFunc(out, func(a, b Release) int {
		return cmp.Compare(a.Version, b.Version)
	})

	return out
}
