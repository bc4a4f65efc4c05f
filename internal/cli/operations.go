package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kolah/synth/model"
)

func OperationsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "operations",
		Short: "List operations and their example keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}

			cmd.PrintErrf("Loaded OpenAPI %s: %s v%s\n", s.result.Version, s.doc.Info.Title, s.doc.Info.Version)
			for _, op := range s.doc.Operations {
				line := op.Selector()
				if op.ID != "" {
					line += " (" + op.ID + ")"
				}
				if op.Deprecated {
					line += " [deprecated]"
				}
				if keys := exampleKeys(op); len(keys) > 0 {
					line += "  examples: " + strings.Join(keys, ", ")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}

// exampleKeys lists the example keys used by any parameter or body media type of op,
// in first-seen order.
func exampleKeys(op *model.Operation) []string {
	var keys []string
	seen := make(map[string]bool)
	add := func(examples model.Examples) {
		for _, k := range examples.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	for _, p := range op.Parameters {
		add(p.Examples)
		for _, mt := range p.Content {
			add(mt.Examples)
		}
	}
	if op.RequestBody != nil {
		for _, mt := range op.RequestBody.Content {
			add(mt.Examples)
		}
	}
	return keys
}
