package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newGetCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "get <savefile> <key>...",
		Short: "Print field values",
		Long: `Print the value of one or more fields. Keys may carry indices.

Example:
  savinfo get progress.sav CurrentRupee "PorchItem[0]" "PlayerSavePos[2]"
  savinfo get --format yaml progress.sav CurrentRupee MaxHartValue`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sav, err := a.open(args[0])
			if err != nil {
				return err
			}

			keys := args[1:]
			values := make(map[string]any, len(keys))
			for _, key := range keys {
				v, err := sav.Get(key)
				if err != nil {
					return err
				}
				values[key] = v
			}

			switch format {
			case "text":
				width := 0
				for _, key := range keys {
					width = max(width, len(key)+1)
				}
				for _, key := range keys {
					a.out.field(width, key, formatValue(values[key]))
				}
			case "json":
				data, err := json.MarshalIndent(values, "", "  ")
				if err != nil {
					return err
				}
				a.out.line("%s", data)
			case "yaml":
				data, err := yaml.Marshal(values)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")

	return cmd
}
