package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/widgethook/pkg/widget/standard"
)

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the stock component types",
		Run: func(cmd *cobra.Command, args []string) {
			for _, t := range standard.Registry().Types() {
				fmt.Fprintln(cmd.OutOrStdout(), t)
			}
		},
	}
}
