package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/savkit/gametime"
)

const (
	saveTimeKey     = "LastSaveTime_Lower"
	saveDistrictKey = "SaveDistrictName"
	saveLocationKey = "SaveLocationName"
)

func newCaptionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "caption <savefile>",
		Short: "Print the save slot caption: save time, district and location",
		Long: `Print the caption a save slot shows: the time of the save, its district
and its location, with display names from the markers and locations tables.

Example:
  savinfo caption --markers LocationMarker.json --locations locs.json progress.sav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sav, err := a.open(args[0])
			if err != nil {
				return err
			}

			// the lower word holds the Unix time; it is stored signed
			stamp := int64(uint32(intOr(sav, saveTimeKey))) //nolint:gosec
			date := gametime.SaveTime(stamp).Format("02/01/2006")

			district := stringOr(sav, saveDistrictKey)
			location := stringOr(sav, saveLocationKey)

			a.out.line("%d,%s,%s,", stamp, date, a.caption(district, location))

			return nil
		},
	}
}

// caption renders "[District {id}] Location {id} (note)".
func (a *app) caption(district, location string) string {
	out := fmt.Sprintf("[%s {%s}]", a.markerName(district), district)
	if location == "" {
		return out
	}

	out += fmt.Sprintf(" %s {%s}", a.markerName(location), location)
	if note, ok := a.locationUI[location]; ok && note != "" {
		out += fmt.Sprintf(" (%s)", note)
	}

	return out
}
