package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/arloliu/savkit/patch"
)

func newPatchCmd(a *app) *cobra.Command {
	var aliases map[string]string

	cmd := &cobra.Command{
		Use:   "patch <savefile> <document>",
		Short: "Preview the changes a patch document would make",
		Long: `Apply a JSON or YAML patch document to an in-memory copy of a savefile and
show the fields it would change. The savefile on disk is left untouched.

Document keys are field keys; nested mappings are flattened. CurrentHeart and
MaxHeartValue are accepted as aliases and WM_Time / WM_BloodyMoonTimer take
clock text such as "1 d 06:30".

Example:
  savinfo patch progress.sav changes.yaml
  savinfo patch --alias Rupees=CurrentRupee progress.sav changes.json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sav, err := a.open(args[0])
			if err != nil {
				return err
			}
			doc, err := patch.Load(args[1])
			if err != nil {
				return err
			}
			p, err := patch.New(patch.WithAliases(aliases), patch.WithLogger(a.logger))
			if err != nil {
				return err
			}

			// Apply in place, keep a copy of the result and roll the savefile back.
			if err := sav.Backup(); err != nil {
				return err
			}
			res, applyErr := p.Apply(sav, doc)
			patched, err := sav.Clone()
			if err != nil {
				return err
			}
			if err := sav.Restore(); err != nil {
				return err
			}

			n := a.printChanges(sav, patched)
			a.out.line("%d applied, %d rejected, %d fields changed", len(res.Applied), len(res.Failed), n)
			for _, err := range unjoin(applyErr) {
				a.out.line("%s %v", a.out.warn.Sprint("rejected:"), err)
			}

			if len(res.Failed) > 0 {
				return errors.New("patch document has rejected fields")
			}

			return nil
		},
	}
	cmd.Flags().StringToStringVar(&aliases, "alias", nil, "extra document key aliases (name=field)")

	return cmd
}

// unjoin splits an error made by errors.Join back into its parts.
func unjoin(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}

	return []error{err}
}
