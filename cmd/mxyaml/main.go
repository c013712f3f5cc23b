// Command mxyaml parses Magix dialect text and prints its JSON projection.
//
//	mxyaml config.mx            JSON projection to stdout
//	mxyaml --mx config.mx       JSON projection with Magix key rewriting
//	mxyaml --reprint config.mx  canonical dialect text
//	mxyaml --from-yaml in.yaml  import plain YAML, emit dialect text
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
	yaml "github.com/goccy/go-yaml"

	"github.com/magix-dev/mxyaml"
)

var cli struct {
	Path     string `arg:"" optional:"" type:"existingfile" help:"Input file (defaults to stdin)."`
	MX       bool   `name:"mx" help:"Rewrite Magix header keys in the projection."`
	Reprint  bool   `help:"Emit canonical dialect text instead of JSON."`
	FromYAML bool   `name:"from-yaml" help:"Treat the input as plain YAML and emit canonical dialect text."`
	MaxDepth int    `default:"1000" help:"Maximum nesting depth accepted by the parser."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("mxyaml"),
		kong.Description("Parse Magix dialect text and project it to JSON."),
	)
	if err := run(os.Stdout); err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, "mxyaml:", err)
		kctx.Exit(1)
	}
}

func run(out io.Writer) error {
	data, err := readInput()
	if err != nil {
		return err
	}
	if cli.FromYAML {
		return importYAML(out, data)
	}

	node, err := mxyaml.Parse(data, mxyaml.MaxDepth(cli.MaxDepth))
	if err != nil {
		return err
	}
	var v any
	if cli.MX {
		v = mxyaml.ToMX(node)
	} else {
		v = mxyaml.ToJSON(node)
	}
	if cli.Reprint {
		return mxyaml.Fprint(out, v)
	}
	enc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, string(enc))
	return err
}

func readInput() ([]byte, error) {
	if cli.Path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(cli.Path)
}

// importYAML reads foreign YAML with ordered maps and re-emits it as
// canonical dialect text.
func importYAML(out io.Writer, data []byte) error {
	var raw any
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return fmt.Errorf("reading yaml: %w", err)
	}
	return mxyaml.Fprint(out, fromYAML(raw))
}

// fromYAML maps the decoder's value space onto the printer's: MapSlice
// becomes an ordered Object and integer widths collapse to int64.
func fromYAML(v any) any {
	switch v := v.(type) {
	case yaml.MapSlice:
		obj := mxyaml.NewObject()
		for _, item := range v {
			key, ok := item.Key.(string)
			if !ok {
				key = fmt.Sprint(item.Key)
			}
			obj.Set(key, fromYAML(item.Value))
		}
		return obj
	case []any:
		items := make([]any, len(v))
		for i, item := range v {
			items[i] = fromYAML(item)
		}
		return items
	case int:
		return int64(v)
	case uint64:
		if v <= 1<<63-1 {
			return int64(v)
		}
		return float64(v)
	}
	return v
}
