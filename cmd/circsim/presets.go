package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/circsim/internal/config"
)

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	names := config.Kinds
	if len(args) > 0 {
		names = args
	}

	for _, name := range names {
		presets := config.ListPresets(name)
		if len(presets) == 0 {
			fmt.Fprintf(out, "no presets for: %s\n", name)
			continue
		}
		fmt.Fprintf(out, "presets for %s:\n", name)
		for _, p := range presets {
			fmt.Fprintf(out, "  %s\n", p)
		}
	}
	return nil
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	f, err := config.ParseFormatName(configFormat)
	if err != nil {
		return err
	}
	data, err := config.MarshalFormat(cfg, f)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
