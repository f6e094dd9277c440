package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/deep6ix/gillespie/internal/config"
)

var displayFormat string

var displayCmd = &cobra.Command{
	Use:   "display <network.toml>",
	Short: "Print a reaction network's declaration",
	Args:  cobra.ExactArgs(1),
	RunE:  runDisplay,
}

func init() {
	displayCmd.Flags().StringVar(&displayFormat, "format", "text", "output format: text or table")
}

func runDisplay(cmd *cobra.Command, args []string) error {
	net, err := config.LoadNetwork(args[0])
	if err != nil {
		return err
	}

	if displayFormat == "text" {
		fmt.Println(net.String())
		return nil
	}
	if displayFormat != "table" {
		return fmt.Errorf("gillespie: unknown --format %q (want text or table)", displayFormat)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Reaction"})
	for _, line := range strings.Split(net.String(), "\n") {
		if line == "" {
			continue
		}
		table.Append([]string{line})
	}
	table.Render()
	return nil
}
