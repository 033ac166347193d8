package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"swgapi/internal/catalog"
	"swgapi/internal/errors"
	"swgapi/internal/httpclient"
	"swgapi/internal/model"
	"swgapi/internal/output"
)

type callFlags struct {
	oid    string
	name   string
	by     string
	dryRun bool
}

func (a *App) newCallCommand() *cobra.Command {
	var f callFlags
	cmd := &cobra.Command{
		Use:   "call <endpoint>",
		Short: "Send one request and print the response",
		Long: `Send one request to the Core3 REST API and print the response body.

<endpoint> is a catalog name ("version", "object-info", "guild lookup")
or its number from "swgapi endpoints".

Exit status is 0 on HTTP 200, 1 on a transport or application error and
2 when the input is invalid (the request is not sent).`,
		Example: `  swgapi call version
  swgapi call object-info --oid 12345
  swgapi call character-lookup --name "Han Solo"
  swgapi call guild-lookup --by id --oid 281474976710656`,
		GroupID: "core",
		Args:    exactlyOneEndpoint,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCall(cmd, args[0], f, cmd.Flags().Changed("by"))
		},
	}
	cmd.Flags().StringVar(&f.oid, "oid", "", "object id")
	cmd.Flags().StringVar(&f.name, "name", "", "character or guild name")
	cmd.Flags().StringVar(&f.by, "by", "name", "lookup mode: name or id")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "print the request instead of sending it")
	return cmd
}

func exactlyOneEndpoint(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.NewValidationError("endpoint", fmt.Sprintf("expected one endpoint, got %d", len(args)))
	}
	return nil
}

// resolveEndpoint accepts a catalog name or a 1-based catalog index.
func resolveEndpoint(arg string) (model.Endpoint, error) {
	if ep, ok := catalog.Lookup(arg); ok {
		return ep, nil
	}
	if n, err := strconv.Atoi(arg); err == nil {
		all := catalog.All()
		if n >= 1 && n <= len(all) {
			return all[n-1], nil
		}
	}
	return model.Endpoint{}, errors.NewValidationError("endpoint", fmt.Sprintf("unknown endpoint %q, expected one of: %s", arg, strings.Join(catalog.Names(), ", ")))
}

// searchMode picks the lookup mode. Without --by, giving only --oid means
// a lookup by id.
func searchMode(ep model.Endpoint, f callFlags, byChanged bool) (model.SearchMode, error) {
	mode, ok := model.ParseSearchMode(f.by)
	if !ok {
		return model.SearchAny, errors.NewValidationError("by", fmt.Sprintf("must be name or id, got %q", f.by))
	}
	if !byChanged && ep.HasSearchModes() && f.name == "" && f.oid != "" {
		mode = model.SearchByID
	}
	return mode, nil
}

func (a *App) runCall(cmd *cobra.Command, arg string, f callFlags, byChanged bool) error {
	ep, err := resolveEndpoint(arg)
	if err != nil {
		return err
	}
	mode, err := searchMode(ep, f, byChanged)
	if err != nil {
		return err
	}
	ri := model.NewRequestIntent(ep, a.cfg.Connection, mode, map[string]string{
		"oid":  f.oid,
		"name": f.name,
	})

	if f.dryRun {
		req, err := httpclient.BuildRequest(ri)
		if err != nil {
			return err
		}
		output.WriteRequest(a.out, req)
		return nil
	}

	req, res, err := httpclient.Dispatch(cmd.Context(), ri)
	if err != nil {
		if errors.Is(err, errors.ErrInvalidInput) {
			return err
		}
		a.logger.Debug().Str("endpoint", ep.Name).Str("url", req.URL).Msg("request failed")
		output.WriteOutcome(a.errOut, res, err, a.format(output.FormatJSON), false)
		return reportedError{err}
	}

	a.logger.Debug().Str("execution", res.ID).Int("status", res.StatusCode).Dur("elapsed", res.Elapsed).Msg("request completed")
	format := a.format(output.FormatJSON)
	if format == output.FormatTable {
		format = output.FormatJSON
	}
	return output.WriteBody(a.out, res, format, a.color())
}
