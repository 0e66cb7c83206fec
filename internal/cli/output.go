package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tidwall/gjson"
	"sigs.k8s.io/yaml"
)

// printJSON prints data as indented JSON to w
func printJSON(w io.Writer, data any) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		errorLabel.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(jsonData))
}

// printResult writes an API result as YAML, or as a JSON envelope in JSON
// mode. A --query path narrows the value first.
func (cc *cliContext) printResult(value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}

	if cc.opts.query != "" {
		res := gjson.GetBytes(raw, cc.opts.query)
		if !res.Exists() {
			return fmt.Errorf("query %q matched nothing", cc.opts.query)
		}
		raw = []byte(res.Raw)
	}

	if cc.opts.jsonOutput {
		printJSON(cc.out, map[string]any{
			"result": 1,
			"value":  json.RawMessage(raw),
		})
		return nil
	}

	yamlBytes, err := yaml.JSONToYAML(raw)
	if err != nil {
		return fmt.Errorf("failed to convert to YAML: %w", err)
	}
	fmt.Fprint(cc.out, string(yamlBytes))
	return nil
}

// printOK reports a call that returns no data.
func (cc *cliContext) printOK(msg string) {
	if cc.opts.jsonOutput {
		printJSON(cc.out, map[string]any{"result": 1, "message": msg})
		return
	}
	okLabel.Fprintf(cc.out, "✓ %s\n", msg)
}

// plural builds messages such as "2 sellers created".
func plural(n int, noun, verb string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s %s", noun, verb)
	}
	return fmt.Sprintf("%d %ss %s", n, noun, verb)
}
