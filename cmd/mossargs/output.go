package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/digitalcave/moss/pkg/parsecommands"
	"github.com/ghodss/yaml"
	"github.com/pkg/errors"
)

// resultView is the printable form of a parse. Unset flags are left out.
type resultView struct {
	Flags    map[string]interface{} `json:"flags"`
	Commands []string               `json:"commands"`
	Warnings []string               `json:"warnings,omitempty"`
}

func newResultView(results *parsecommands.Results) resultView {
	view := resultView{
		Flags:    make(map[string]interface{}),
		Commands: results.Commands(),
	}

	for _, decl := range results.Declarations() {
		if v, ok := results.Value(decl.Name()); ok {
			view.Flags[decl.Name()] = v.Interface()
		}
	}

	for _, warning := range results.Warnings() {
		view.Warnings = append(view.Warnings, warning.Error())
	}

	return view
}

func render(w io.Writer, results *parsecommands.Results, format string) error {
	view := newResultView(results)

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(view), "encoding json")
	case "yaml":
		out, err := yaml.Marshal(view)
		if err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		_, err = w.Write(out)
		return errors.Wrap(err, "writing yaml")
	}

	return fmt.Errorf("unknown output format %s", format)
}
