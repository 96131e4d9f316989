package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"rink-finder-service/internal/adapters/catalog"
	"rink-finder-service/internal/services"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newResourcesCommand(deps Dependencies) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "List the resources of the rink package with their download URLs.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}
			if f == formatCSV {
				return fmt.Errorf("unsupported format %q", format)
			}

			resources, err := describeResources(cmd, deps)
			if err != nil {
				return errors.New(services.UserMessage(err))
			}

			return renderResources(cmd.OutOrStdout(), resources, f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, or yaml.")

	return cmd
}

// describeResources lists the package resources. Files outside the datastore
// are looked up one by one so their download URL is known.
func describeResources(cmd *cobra.Command, deps Dependencies) ([]catalog.Resource, error) {
	if deps.Catalog == nil {
		return nil, errNoCatalog
	}
	ctx := cmd.Context()

	resources, err := deps.Catalog.Resources(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]catalog.Resource, 0, len(resources))
	for _, r := range resources {
		if !r.DatastoreActive {
			meta, err := deps.Catalog.ResourceMetadata(ctx, r.ID)
			if err != nil {
				return nil, err
			}
			r.URL = meta.URL
		}
		out = append(out, r)
	}

	return out, nil
}

func renderResources(out io.Writer, resources []catalog.Resource, format outputFormat) error {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(resources, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(b))
		return err

	case formatYAML:
		b, err := yaml.Marshal(resources)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = out.Write(b)
		return err

	default:
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "ID\tNAME\tFORMAT\tDATASTORE\tURL")
		for _, r := range resources {
			u := r.URL
			if u == "" {
				u = "-"
			}
			_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%s\n", r.ID, r.Name, r.Format, r.DatastoreActive, u)
		}
		return tw.Flush()
	}
}
