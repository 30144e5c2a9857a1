package commands

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fivetwenty-io/remp-client/internal/constants"
)

// paramFlags collects request params from --data and repeated --param flags.
type paramFlags struct {
	pairs []string
	data  string
}

func addParamFlags(cmd *cobra.Command, flags *paramFlags) {
	cmd.Flags().StringArrayVarP(&flags.pairs, "param", "p", nil, "request parameter as key=value (repeatable)")
	cmd.Flags().StringVarP(&flags.data, "data", "d", "", "request parameters as a JSON object")
}

// build merges --data and --param values; --param wins on conflicts.
// It returns nil when neither flag was given so the request has no body.
func (f *paramFlags) build() (interface{}, error) {
	if f.data == "" && len(f.pairs) == 0 {
		return nil, nil
	}

	params := make(map[string]interface{})

	if f.data != "" {
		err := json.Unmarshal([]byte(f.data), &params)
		if err != nil {
			return nil, fmt.Errorf("failed to parse --data: %w", err)
		}
	}

	for _, pair := range f.pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("%w: %q", constants.ErrInvalidParam, pair)
		}

		params[key] = value
	}

	return params, nil
}
