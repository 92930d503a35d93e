package cmd

import (
	"cmp"
	"fmt"
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/arloliu/savkit/format"
)

func newTypesCmd(a *app) *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "types",
		Short: "Summarize the type table",
		Long: `Summarize the loaded type table: entry count per kind and, with --list,
every hash with its kind and registered name.

Example:
  savinfo types -t gamedata.json --list`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			counts := map[format.Kind]int{}
			hashes := a.table.Hashes()
			for _, h := range hashes {
				kind, _ := a.table.Kind(h)
				counts[kind]++
			}

			if list {
				for _, h := range hashes {
					kind, _ := a.table.Kind(h)
					a.out.line("%s %-16s %s", a.out.dim.Sprintf("%08x", h), kind, a.out.key.Sprint(a.label(h)))
				}
				return nil
			}

			a.out.field(8, "Entries", fmt.Sprint(a.table.Len()))
			a.out.field(8, "Names", fmt.Sprint(len(a.table.Names())))
			kinds := slices.SortedFunc(maps.Keys(counts), func(x, y format.Kind) int {
				return cmp.Compare(x.String(), y.String())
			})
			for _, kind := range kinds {
				a.out.field(17, "  "+kind.String(), fmt.Sprint(counts[kind]))
			}
			if a.table.HasCollision() {
				a.out.line("%s", a.out.warn.Sprint("warning: registered field names collide"))
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&list, "list", false, "list every entry")

	return cmd
}
