package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/savkit/endian"
	"github.com/arloliu/savkit/gametime"
	"github.com/arloliu/savkit/savefile"
)

const (
	playTimeKey = "PlayReport_PlayTime"
	rupeeKey    = "CurrentRupee"
	mapNameKey  = "PlayerSavePosMapName"
)

func newInfoCmd(a *app) *cobra.Command {
	var csv bool

	cmd := &cobra.Command{
		Use:   "info <savefile>",
		Short: "Show release, play time, rupees and map of a savefile",
		Long: `Show the header summary of a savefile along with its play time,
rupee count and current map.

Example:
  savinfo info progress.sav
  savinfo info --csv progress.sav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sav, err := a.open(args[0])
			if err != nil {
				return err
			}

			playTime := intOr(sav, playTimeKey)
			rupees := intOr(sav, rupeeKey)
			mapName := stringOr(sav, mapNameKey)

			if csv {
				a.out.line("%d,%s,%d,%s,", playTime, gametime.PlayTime(playTime), rupees, mapName)
				return nil
			}

			release, _ := sav.Release()
			order := "little-endian"
			if endian.IsBigEndian(sav.ByteOrder()) {
				order = "big-endian"
			}

			const w = 11
			a.out.field(w, "File", args[0])
			a.out.field(w, "Release", fmt.Sprintf("%s (0x%x)", release.Name, sav.Version()))
			a.out.field(w, "Byte order", order)
			a.out.field(w, "Size", fmt.Sprintf("%d bytes", sav.Size()))
			a.out.field(w, "Fields", fmt.Sprint(len(sav.Keys())))
			a.out.field(w, "Play time", gametime.PlayTime(playTime))
			a.out.field(w, "Rupees", fmt.Sprint(rupees))
			a.out.field(w, "Map", mapName)

			return nil
		},
	}
	cmd.Flags().BoolVar(&csv, "csv", false, "print one comma separated line")

	return cmd
}

// intOr decodes an integer field, or 0 when the savefile does not hold it.
func intOr(sav *savefile.Savefile, key string) int64 {
	if !sav.IsKey(key) {
		return 0
	}

	switch v, _ := sav.Get(key); x := v.(type) {
	case int32:
		return int64(x)
	case float32:
		return int64(x)
	default:
		return 0
	}
}

// stringOr decodes a string field, or "" when the savefile does not hold it.
func stringOr(sav *savefile.Savefile, key string) string {
	if !sav.IsKey(key) {
		return ""
	}
	s, _ := sav.GetString(key)

	return s
}
