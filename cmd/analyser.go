/*
Copyright 2020 Google LLC

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

// Analysis is the table form of a command's result. The first row of results
// is the header.
type Analysis struct {
	results [][]string
	summary string
}

func (a Analysis) String() string {
	out := new(bytes.Buffer)
	if len(a.results) > 0 {
		table := tablewriter.NewWriter(out)
		table.Header(a.results[0])
		for _, row := range a.results[1:] {
			if err := table.Append(row); err != nil {
				return fmt.Sprintf("Error rendering table: %v", err)
			}
		}
		if err := table.Render(); err != nil {
			return fmt.Sprintf("Error rendering table: %v", err)
		}
	}
	fmt.Fprintf(out, "%s\n", a.summary)
	return out.String()
}

func parseFormat(format string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(format)); f {
	case "", formatTable:
		return formatTable, nil
	case formatYAML, "yml":
		return formatYAML, nil
	case formatJSON:
		return formatJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q, expected table, yaml or json", format)
	}
}

// render writes value as YAML or JSON, or the analysis as a table.
func render(w io.Writer, format string, value interface{}, analysis Analysis) error {
	switch format {
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return encoder.Close()

	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(value); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil

	default:
		_, err := fmt.Fprint(w, analysis)
		return err
	}
}
