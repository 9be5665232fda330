// Command gqlvalidate validates a JSON-encoded query document against a
// JSON-encoded schema and reports the first violation, if any.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/kirra-gql/validate/internal/jsondoc"
	"github.com/kirra-gql/validate/validator"
)

func Run(w io.Writer, args ...string) []error {
	flags := pflag.NewFlagSet(os.Args[0], pflag.ExitOnError)

	schemaPath := flags.String("schema", "", "path to the schema JSON file")
	documentPath := flags.StringP("document", "d", "", "path to the query document JSON file")
	flags.Parse(args)

	if *schemaPath == "" {
		return []error{fmt.Errorf("the --schema flag is required")}
	}
	if *documentPath == "" {
		return []error{fmt.Errorf("the --document flag is required")}
	}

	schemaFile, err := os.Open(*schemaPath)
	if err != nil {
		return []error{fmt.Errorf("error opening schema: %w", err)}
	}
	defer schemaFile.Close()

	s, err := jsondoc.DecodeSchema(schemaFile)
	if err != nil {
		return []error{fmt.Errorf("error loading schema: %w", err)}
	}

	docFile, err := os.Open(*documentPath)
	if err != nil {
		return []error{fmt.Errorf("error opening document: %w", err)}
	}
	defer docFile.Close()

	doc, err := jsondoc.DecodeDocument(docFile)
	if err != nil {
		return []error{fmt.Errorf("error loading document: %w", err)}
	}

	if err := validator.Validate(s, doc); err != nil {
		return []error{err}
	}

	fmt.Fprintln(w, "ok")
	return nil
}

func main() {
	if errs := Run(os.Stdout, os.Args[1:]...); len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, err.Error())
		}
		os.Exit(1)
	}
}
