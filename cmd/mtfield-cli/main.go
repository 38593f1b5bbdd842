package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	mtfield "github.com/goliatone/go-mtfield"
	"github.com/goliatone/go-mtfield/pkg/describe"
	"github.com/goliatone/go-mtfield/pkg/prompt"
	"github.com/goliatone/go-mtfield/pkg/validation"
)

func main() {
	mode := flag.String("mode", "parse", "parse, check, compose, describe, list, schema or decode")
	name := flag.String("field", "", "field tag, e.g. 32A")
	value := flag.String("value", "", `field value (parse) or JSON object (decode); \n and \r\n escapes are expanded`)
	overlay := flag.String("registry", "", "directory of registry files to overlay")
	tmpl := flag.String("template", describe.TemplateText, "describe template name")
	validate := flag.Bool("validate", true, "validate decode input against the field schema")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	var opts []mtfield.Option
	if *overlay != "" {
		opts = append(opts, mtfield.WithOverlayDir(*overlay))
	}
	opts = append(opts, mtfield.WithDescribeOptions(describe.WithTemplate(*tmpl)))

	engine, err := mtfield.NewEngine(opts...)
	if err != nil {
		log.Fatalf("Failed to load registry: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), engine, *mode, *name, unescape(*value), *validate, &out); err != nil {
		log.Fatalf("%s: %v", *mode, err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out.Bytes(), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
		return
	}
	fmt.Print(out.String())
}

var errInvalidValue = errors.New("value is not valid for the field")

func run(ctx context.Context, engine *mtfield.Engine, mode, name, value string, validate bool, out io.Writer) error {
	switch mode {
	case "parse":
		f, err := engine.Parse(name, value)
		if err != nil {
			return err
		}
		return writeJSON(out, f)

	case "check":
		def, err := engine.Lookup(name)
		if err != nil {
			return err
		}
		result := validation.CheckValue(def, value)
		if err := writeJSON(out, result); err != nil {
			return err
		}
		if !result.Valid {
			return errInvalidValue
		}
		return nil

	case "decode":
		if validate {
			if err := engine.Validate(name, []byte(value)); err != nil {
				for _, issue := range validation.IssuesFromError(err) {
					fmt.Fprintln(os.Stderr, issue.String())
				}
				return errInvalidValue
			}
		}
		f, err := engine.Decode(name, []byte(value))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, f.String())
		return err

	case "compose":
		composer := prompt.NewComposer(prompt.WithOutput(os.Stderr))
		def, err := engine.Lookup(name)
		if name == "" {
			def, err = composer.ChooseField(ctx, engine.Registry())
		}
		if err != nil {
			return err
		}
		f, err := composer.Compose(ctx, def)
		if err != nil {
			return err
		}
		return writeJSON(out, f)

	case "describe":
		if value != "" {
			f, err := engine.Parse(name, value)
			if err != nil {
				return err
			}
			text, err := engine.DescribeField(f)
			if err != nil {
				return err
			}
			_, err = io.WriteString(out, text)
			return err
		}
		text, err := engine.Describe(name)
		if err != nil {
			return err
		}
		_, err = io.WriteString(out, text)
		return err

	case "list":
		for _, def := range engine.Registry().Definitions() {
			if _, err := fmt.Fprintf(out, "%-4s %s\n", def.Name(), def.Description()); err != nil {
				return err
			}
		}
		return nil

	case "schema":
		if name == "" {
			return writeJSON(out, engine.Catalog())
		}
		schema, err := engine.Schema(name)
		if err != nil {
			return err
		}
		return writeJSON(out, schema)
	}
	return fmt.Errorf("unknown mode %q", mode)
}

func writeJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = out.Write(data)
	return err
}

func unescape(s string) string {
	return strings.NewReplacer(`\r\n`, "\r\n", `\n`, "\r\n").Replace(s)
}
