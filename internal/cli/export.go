package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/nhle/sortbase/internal/store"
)

func newExportCmd(a *App) *cobra.Command {
	var outFormat string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the whole inventory document to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, st, err := a.openSession(cmd.Context(), true)
			if err != nil {
				return err
			}
			defer st.Close()

			doc, err := s.Snapshot()
			if err != nil {
				return err
			}
			data, err := store.EncodeDocument(doc)
			if err != nil {
				return err
			}
			switch outFormat {
			case "json":
				data = append(data, '\n')
			case "yaml":
				if data, err = jsonToYAML(data); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown format %q (want json or yaml)", outFormat)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&outFormat, "format", "json", "Output format (json|yaml)")
	return cmd
}

// jsonToYAML re-renders a JSON document as block-style YAML. Going through
// yaml.Node keeps the key order of the JSON, which matters for item
// properties.
func jsonToYAML(data []byte) ([]byte, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("converting to yaml: %w", err)
	}
	blockStyle(&n)
	out, err := yaml.Marshal(&n)
	if err != nil {
		return nil, fmt.Errorf("converting to yaml: %w", err)
	}
	return out, nil
}

func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func newImportCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the inventory with a JSON document",
		Long:  "Replace the inventory with a JSON document. Older file shapes (a bare array of lists, or sortOptions instead of viewState) are accepted.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			doc, err := store.DecodeDocument(data)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			s, st, err := a.openSession(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := s.LoadError(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: existing data could not be read: %v\n", err)
			}

			if err := s.Import(cmd.Context(), doc); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d lists into %s\n", len(s.Lists()), a.cfg.Storage.Path)
			return nil
		},
	}
}

// readInput reads path, or stdin for "-".
func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
