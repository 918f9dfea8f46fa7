package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <person>",
		Short: "Remove a person and everything they own",
		Long:  "Deletes a person together with their interactions, answers, life events, analysis notes and every relationship touching them.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemove(cmd, args[0], yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation prompt")

	return cmd
}

func runRemove(cmd *cobra.Command, ref string, yes bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		detail, err := d.Person.HandleShow(ctx, ref)
		if err != nil {
			return err
		}
		p := detail.Person

		if !yes {
			fmt.Printf("Remove %s and everything recorded about them? [y/N] ", p.DisplayName())
			reader := bufio.NewReader(os.Stdin)
			response, _ := reader.ReadString('\n') // Error ignored: EOF/error treated as "no"
			response = strings.ToLower(strings.TrimSpace(response))
			if response != "y" && response != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if _, err := d.Person.HandleRemove(ctx, p.ID); err != nil {
			return fmt.Errorf("removing person: %w", err)
		}

		fmt.Printf("Removed %s\n", p.DisplayName())
		return nil
	})
}
