package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"swgapi/internal/catalog"
	"swgapi/internal/openapi"
	"swgapi/internal/output"
)

func (a *App) newEndpointsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "endpoints",
		Aliases: []string{"ls", "list"},
		Short:   "List the endpoints swgapi can call",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			eps := catalog.All()
			switch f := a.format(output.DetectFormat("")); f {
			case output.FormatJSON, output.FormatYAML:
				return output.NewFormatter(f).Format(a.out, output.Summaries(eps))
			default:
				return output.NewFormatter(output.FormatTable).Format(a.out, output.EndpointTable(eps))
			}
		},
	}
}

func (a *App) newOpenAPICommand() *cobra.Command {
	return &cobra.Command{
		Use:     "openapi",
		Short:   "Print the endpoint catalog as an OpenAPI 3 document",
		Long:    "Print the endpoint catalog as a validated OpenAPI 3 document (json by default, -o yaml for YAML).",
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := openapi.Build(cmd.Context(), catalog.All(), a.version)
			if err != nil {
				return err
			}
			var b []byte
			if a.format(output.FormatJSON) == output.FormatYAML {
				b, err = openapi.MarshalYAML(doc)
			} else {
				b, err = openapi.MarshalJSON(doc)
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.out, string(b))
			return err
		},
	}
}

func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "swgapi version %s\n", a.version)
			fmt.Fprintf(a.out, "commit: %s\n", a.commit)
			fmt.Fprintf(a.out, "built: %s\n", a.date)
			fmt.Fprintf(a.out, "go version: %s\n", runtime.Version())
			fmt.Fprintf(a.out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}
