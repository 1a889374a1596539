package options

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/api"
)

// OutputOptions selects machine readable output.
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

type errorOutput struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// HandleError prints err as a JSON object on stdout in JSON mode and
// swallows it; otherwise err is returned for cobra to report.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	out := errorOutput{Error: err.Error()}
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		out.Error = api.Message(err, err.Error())
		out.Status = apiErr.Status
	}
	b, merr := json.Marshal(out)
	if merr != nil {
		return merr
	}
	_, _ = fmt.Fprintln(color.Output, string(b))
	return nil
}
