// Command jsonschema-validate compiles JSON Schema documents (draft-04/06/07)
// and validates instance documents against them. It is a thin wrapper: all
// compilation and validation logic lives in the library package.
package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	jsonschema "github.com/kaptinlin/jsonschema04"
	internallog "github.com/kaptinlin/jsonschema04/internal/log"
)

// ErrReadInput indicates a schema or instance file could not be read.
var ErrReadInput = errors.New("read input")

// sharedFlags are registered on both subcommands.
type sharedFlags struct {
	draft     string
	assertFmt bool
	async     bool
	logLevel  string
	logFormat string
}

func (f *sharedFlags) register(flags *pflag.FlagSet) {
	flags.StringVar(&f.draft, "draft", "", "default draft when $schema is absent (04, 06, 07)")
	flags.BoolVar(&f.assertFmt, "assert-format", true, "assert the \"format\" keyword")
	flags.BoolVar(&f.async, "async", false, "compile using the asynchronous $ref resolver")
	flags.StringVar(&f.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flags.StringVar(&f.logFormat, "log-format", "logfmt", "log format (logfmt, json)")
}

func (f *sharedFlags) newLogger() (*slog.Logger, error) {
	handler, err := internallog.NewHandler(os.Stderr, f.logLevel, f.logFormat)
	if err != nil {
		return nil, err
	}
	return slog.New(handler), nil
}

func (f *sharedFlags) compile(ctx context.Context, schemaPath string) (*jsonschema.Schema, error) {
	schemaBytes, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, schemaPath, err)
	}

	compiler := jsonschema.NewCompiler()
	if f.draft != "" {
		draft, err := parseDraft(f.draft)
		if err != nil {
			return nil, err
		}
		compiler.SetDefaultDraft(draft)
	}
	compiler.SetAssertFormat(f.assertFmt)

	if f.async {
		return compiler.CompileAsync(ctx, schemaBytes, schemaPath)
	}
	return compiler.Compile(schemaBytes, schemaPath)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "jsonschema-validate",
		Short:         "Compile and validate JSON Schema documents (draft-04/06/07)",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(newCompileCmd(), newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newCompileCmd() *cobra.Command {
	f := &sharedFlags{}
	cmd := &cobra.Command{
		Use:   "compile <schema-file>",
		Short: "Compile a schema and report compile errors, without validating any instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := f.newLogger()
			if err != nil {
				return err
			}
			schema, err := f.compile(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("compile %s: %w", args[0], err)
			}
			logger.Info("schema compiled", "path", args[0], "draft", schema.GetDraft())
			return nil
		},
	}
	f.register(cmd.Flags())
	return cmd
}

func newValidateCmd() *cobra.Command {
	f := &sharedFlags{}
	var allErrors bool
	cmd := &cobra.Command{
		Use:   "validate <schema-file> <instance-file> [instance2-file ...]",
		Short: "Validate one or more instance documents against a schema",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := f.newLogger()
			if err != nil {
				return err
			}

			schemaPath, instancePaths := args[0], args[1:]
			schema, err := f.compile(cmd.Context(), schemaPath)
			if err != nil {
				return fmt.Errorf("compile %s: %w", schemaPath, err)
			}
			logger.Debug("compiled schema", "path", schemaPath, "async", f.async)

			failures := 0
			for _, instancePath := range instancePaths {
				instanceBytes, err := os.ReadFile(instancePath)
				if err != nil {
					return fmt.Errorf("%w: %s: %w", ErrReadInput, instancePath, err)
				}

				var instance any
				dec := json.NewDecoder(bytes.NewReader(instanceBytes))
				dec.UseNumber() // preserve integer-vs-number literal form (type:integer under draft-04 vs draft-06/07)
				if err := dec.Decode(&instance); err != nil {
					logger.Error("invalid JSON instance", "path", instancePath, "error", err)
					failures++
					continue
				}

				opts := []jsonschema.ValidateOption{
					jsonschema.ReportMultipleErrors(allErrors),
					jsonschema.ValidateFormats(f.assertFmt),
				}

				errs := schema.ValidateWithErrors(instance, opts...)
				if len(errs) == 0 {
					logger.Info("valid", "path", instancePath)
					continue
				}

				failures++
				for _, e := range errs {
					logger.Warn("validation error", "path", instancePath, "instancePath", e.InstancePath, "schemaPath", e.SchemaPath, "message", e.Message)
				}
			}

			if failures > 0 {
				return fmt.Errorf("%d of %d instances failed validation", failures, len(instancePaths))
			}
			return nil
		},
	}
	f.register(cmd.Flags())
	cmd.Flags().BoolVar(&allErrors, "all-errors", false, "report every violation instead of stopping at the first")
	return cmd
}

func parseDraft(s string) (jsonschema.Draft, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return jsonschema.DraftUnknown, fmt.Errorf("invalid draft %q", s)
	}
	switch n {
	case 4:
		return jsonschema.Draft04, nil
	case 6:
		return jsonschema.Draft06, nil
	case 7:
		return jsonschema.Draft07, nil
	}
	return jsonschema.DraftUnknown, fmt.Errorf("unsupported draft %q (want 04, 06, or 07)", s)
}
