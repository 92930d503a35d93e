package cmd

import (
	"github.com/spf13/cobra"

	"github.com/arloliu/savkit/savefile"
)

func newDiffCmd(a *app) *cobra.Command {
	var words bool

	cmd := &cobra.Command{
		Use:   "diff <old> <new>",
		Short: "Show the fields that differ between two savefiles",
		Long: `Compare two savefiles slot by slot and show every changed field with its
old and new value.

Example:
  savinfo diff before.sav after.sav
  savinfo diff --words before.sav after.sav`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			before, err := a.open(args[0])
			if err != nil {
				return err
			}
			after, err := a.open(args[1])
			if err != nil {
				return err
			}

			if words {
				for _, off := range savefile.Diff(before, after) {
					a.out.line("%08x", off)
				}
				return nil
			}

			a.printChanges(before, after)

			return nil
		},
	}
	cmd.Flags().BoolVar(&words, "words", false, "list differing 4-byte word offsets instead of fields")

	return cmd
}

// printChanges prints "label: old -> new" for every field that differs.
func (a *app) printChanges(before, after *savefile.Savefile) int {
	changed := savefile.ChangedFields(before, after)
	for _, h := range changed {
		old, errOld := before.GetHash(h)
		cur, errNew := after.GetHash(h)
		if errOld != nil || errNew != nil {
			a.out.line("%s %s", a.out.key.Sprint(a.label(h)), a.out.warn.Sprint("changed (unknown kind)"))
			continue
		}
		a.out.line("%s %s -> %s",
			a.out.key.Sprint(a.label(h)+":"),
			a.out.gone.Sprint(formatValue(old)),
			a.out.added.Sprint(formatValue(cur)),
		)
	}

	return len(changed)
}
