package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arloliu/savkit/errs"
)

func newDumpCmd(a *app) *cobra.Command {
	var limit int
	var unknown bool

	cmd := &cobra.Command{
		Use:   "dump <savefile>",
		Short: "List every field in offset order",
		Long: `List every field of a savefile in offset order with its offset, hash or
name, kind, slot count and value.

Fields missing from the type table are skipped unless --unknown is set.

Example:
  savinfo dump --names fields.txt progress.sav`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sav, err := a.open(args[0])
			if err != nil {
				return err
			}

			shown := 0
			for _, h := range sav.Keys() {
				if limit > 0 && shown >= limit {
					break
				}
				off, _ := sav.OffsetOf(h)

				v, err := sav.GetHash(h)
				if errors.Is(err, errs.ErrUnknownKind) {
					if unknown {
						a.out.line("%s %s %s", a.out.dim.Sprintf("%08x", off), a.out.key.Sprint(a.label(h)), a.out.warn.Sprint("unknown"))
						shown++
					}
					continue
				}
				if err != nil {
					return err
				}

				kind, _ := a.table.Kind(h)
				a.out.line("%s %s %s %s",
					a.out.dim.Sprintf("%08x", off),
					a.out.key.Sprint(a.label(h)),
					a.out.dim.Sprint(kind),
					a.out.value.Sprint(formatValue(v)),
				)
				shown++
			}

			if shown == 0 {
				return fmt.Errorf("no fields of %s are in the type table", args[0])
			}

			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "stop after this many fields (0 for all)")
	cmd.Flags().BoolVar(&unknown, "unknown", false, "also list fields missing from the type table")

	return cmd
}
