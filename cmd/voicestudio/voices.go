package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/example/voice-studio/internal/tts"
	"github.com/spf13/cobra"
)

func newVoicesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "voices",
		Short: "List and manage voices",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listVoices()
		},
	}

	cmd.AddCommand(newVoicesSaveCmd())
	cmd.AddCommand(newVoicesDeleteCmd())
	cmd.AddCommand(newVoicesExportCmd())
	cmd.AddCommand(newVoicesImportCmd())

	return cmd
}

func openVoiceManager() (*tts.VoiceManager, error) {
	cfg, err := requireConfig()
	if err != nil {
		return nil, err
	}
	return tts.NewVoiceManager(cfg.Paths.VoicesPath)
}

func listVoices() error {
	voices, err := openVoiceManager()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tBASE\tDESCRIPTION")
	for _, v := range voices.ListVoices() {
		category := v.Category
		if v.IsCustom {
			category = "Custom"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", v.ID, v.Name, category, v.BaseVoiceID, v.Description)
	}
	return w.Flush()
}

func newVoicesSaveCmd() *cobra.Command {
	var name string
	var base string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Save a custom voice preset",
		RunE: func(_ *cobra.Command, _ []string) error {
			voices, err := openVoiceManager()
			if err != nil {
				return err
			}
			v, err := voices.SaveCustom(name, base)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(os.Stdout, "saved %s (%s)\n", v.ID, v.Name)
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Name of the new voice")
	cmd.Flags().StringVar(&base, "base", "", "Base voice ID the preset builds on")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("base")

	return cmd
}

func newVoicesDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <voice-id>",
		Short: "Delete a custom voice preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			voices, err := openVoiceManager()
			if err != nil {
				return err
			}
			return voices.DeleteCustom(args[0])
		},
	}

	return cmd
}

func newVoicesExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export custom voices as JSON to stdout",
		RunE: func(_ *cobra.Command, _ []string) error {
			voices, err := openVoiceManager()
			if err != nil {
				return err
			}
			data, err := voices.ExportCustom()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(append(data, '\n'))
			return err
		},
	}

	return cmd
}

func newVoicesImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import custom voices from an exported JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			voices, err := openVoiceManager()
			if err != nil {
				return err
			}
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read import file: %w", err)
			}
			added, err := voices.ImportCustom(data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(os.Stdout, "imported %d voice(s)\n", added)
			return err
		},
	}

	return cmd
}
