package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"rink-finder-service/internal/adapters/catalog"
	"rink-finder-service/internal/domain"
	"rink-finder-service/internal/services"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type outputFormat string

const (
	formatTable outputFormat = "table"
	formatJSON  outputFormat = "json"
	formatYAML  outputFormat = "yaml"
	formatCSV   outputFormat = "csv"
)

// errNoCatalog is returned by commands that read the catalog directly when none is wired.
var errNoCatalog = errors.New("this command needs the catalog client")

func parseFormat(v string) (outputFormat, error) {
	switch outputFormat(strings.ToLower(strings.TrimSpace(v))) {
	case "", formatTable:
		return formatTable, nil
	case formatJSON:
		return formatJSON, nil
	case formatYAML:
		return formatYAML, nil
	case formatCSV:
		return formatCSV, nil
	default:
		return "", fmt.Errorf("unsupported format %q", v)
	}
}

type rinkRow struct {
	Name      string  `json:"name" yaml:"name"`
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

type listPayload struct {
	Resource *catalog.Resource `json:"resource,omitempty" yaml:"resource,omitempty"`
	Rinks    []rinkRow         `json:"rinks" yaml:"rinks"`
}

func newListCommand(deps Dependencies) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every rink in the current dataset.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := parseFormat(format)
			if err != nil {
				return err
			}

			if f == formatCSV {
				if err := dumpQueryable(cmd, deps); err != nil {
					return errors.New(services.UserMessage(err))
				}
				return nil
			}

			payload, err := buildListPayload(cmd, deps)
			if err != nil {
				return errors.New(services.UserMessage(err))
			}

			return renderList(cmd.OutOrStdout(), payload, f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table, json, yaml, or csv (raw datastore dump).")

	return cmd
}

func buildListPayload(cmd *cobra.Command, deps Dependencies) (listPayload, error) {
	ctx := cmd.Context()
	var payload listPayload

	if deps.Catalog != nil {
		resources, err := deps.Catalog.Resources(ctx)
		if err != nil {
			return listPayload{}, err
		}
		if res, ok := catalog.FirstQueryable(resources); ok {
			payload.Resource = &res
		}
	}

	rinks, err := deps.Source.FetchRinks(ctx)
	if err != nil {
		return listPayload{}, err
	}

	payload.Rinks = make([]rinkRow, 0, len(rinks))
	for _, r := range rinks {
		loc, err := r.Location()
		if err != nil {
			return listPayload{}, fmt.Errorf("list rinks: %w: %w", domain.ErrUpstream, err)
		}
		payload.Rinks = append(payload.Rinks, rinkRow{Name: r.Name(), Latitude: loc.Lat, Longitude: loc.Lon})
	}

	return payload, nil
}

// dumpQueryable streams the CSV export of the resource FetchRinks reads from.
func dumpQueryable(cmd *cobra.Command, deps Dependencies) error {
	if deps.Catalog == nil {
		return errNoCatalog
	}

	resources, err := deps.Catalog.Resources(cmd.Context())
	if err != nil {
		return err
	}

	res, ok := catalog.FirstQueryable(resources)
	if !ok {
		return fmt.Errorf("dump: %w: package %q has no datastore_active resource", domain.ErrUpstream, catalog.PackageID)
	}

	return deps.Catalog.DumpCSV(cmd.Context(), res.ID, cmd.OutOrStdout())
}

func renderList(out io.Writer, payload listPayload, format outputFormat) error {
	switch format {
	case formatJSON:
		b, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(b))
		return err

	case formatYAML:
		b, err := yaml.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		_, err = out.Write(b)
		return err

	default:
		if payload.Resource != nil {
			_, _ = fmt.Fprintf(out, "resource: %s (%s)\n\n", payload.Resource.Name, payload.Resource.ID)
		}
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		_, _ = fmt.Fprintln(tw, "NAME\tLATITUDE\tLONGITUDE")
		for _, r := range payload.Rinks {
			_, _ = fmt.Fprintf(tw, "%s\t%g\t%g\n", r.Name, r.Latitude, r.Longitude)
		}
		return tw.Flush()
	}
}
