package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"mapforge/strata/pkg/cli"
	vmfErrors "mapforge/strata/pkg/vmf/errors"
	"mapforge/strata/pkg/vmf/parser"
	"mapforge/strata/pkg/vmf/validator"
)

var lintFlags struct {
	file   string
	dir    string
	strict bool
	format string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate map files",
	Long: `Validate VMF map files for syntax and structural errors.

The lint command parses map files and performs comprehensive validation:
  - Line syntax validation
  - Brace balance and nesting depth
  - Structural validation (world block, duplicate ids)
  - Reference validation (group membership, light properties)

Findings the importer would skip over (missing classnames, dangling
group references) are reported as warnings; --strict promotes them
to errors.

Examples:
  # Lint single file
  mapforge lint --file maps/arena.vmf

  # Lint directory
  mapforge lint --dir maps/

  # Strict mode (warnings as errors)
  mapforge lint --file maps/arena.vmf --strict

  # JSON output for CI/CD
  mapforge lint --file maps/arena.vmf --format json`,
	RunE: lintMaps,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "map file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of map files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "text", "output format: text, json")
}

func lintMaps(cmd *cobra.Command, args []string) error {
	if lintFlags.file == "" && lintFlags.dir == "" {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var files []string

	if lintFlags.file != "" {
		files = append(files, lintFlags.file)
	}

	if lintFlags.dir != "" {
		matches, err := filepath.Glob(filepath.Join(lintFlags.dir, "*.vmf"))
		if err != nil {
			return fmt.Errorf("failed to list map files: %w", err)
		}
		files = append(files, matches...)
	}

	if len(files) == 0 {
		return fmt.Errorf("no map files found")
	}

	results := make([]ValidationResult, 0, len(files))

	for _, file := range files {
		result := validateMapFile(file)
		results = append(results, result)
	}

	// Output results
	if lintFlags.format == "json" {
		return outputJSON(results, lintFlags.strict)
	}
	return outputText(results, lintFlags.strict)
}

// ValidationResult represents the validation result for a single map file.
type ValidationResult struct {
	File     string            `json:"file"`
	Valid    bool              `json:"valid"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Warnings []ValidationError `json:"warnings,omitempty"`
}

// ValidationError represents a single validation error or warning.
type ValidationError struct {
	Line     int    `json:"line,omitempty"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Type     string `json:"type,omitempty"`
}

func validateMapFile(path string) ValidationResult {
	result := ValidationResult{
		File:  path,
		Valid: true,
	}

	// Parse map
	doc, err := parser.NewParser().Parse(path)
	if err != nil {
		result.Valid = false
		result.Errors = toFindings(err)
		return result
	}

	// Validate document
	if err := validator.NewValidator().Validate(doc); err != nil {
		for _, finding := range toFindings(err) {
			if finding.Severity == "warning" {
				result.Warnings = append(result.Warnings, finding)
			} else {
				result.Errors = append(result.Errors, finding)
			}
		}
		result.Valid = len(result.Errors) == 0
	}

	return result
}

// toFindings flattens a parser or validator error into individual findings.
// Semantic findings become warnings: the importer proceeds past them, so
// they only fail a lint run under --strict.
func toFindings(err error) []ValidationError {
	var findings []ValidationError

	switch e := err.(type) {
	case *vmfErrors.ErrorList:
		for _, item := range e.Errors {
			findings = append(findings, toFinding(item))
		}
	case *vmfErrors.Error:
		findings = append(findings, toFinding(e))
	default:
		findings = append(findings, ValidationError{
			Message:  err.Error(),
			Severity: "error",
		})
	}

	return findings
}

func toFinding(e *vmfErrors.Error) ValidationError {
	severity := "error"
	if e.Type == vmfErrors.ErrorTypeSemantic {
		severity = "warning"
	}
	return ValidationError{
		Line:     e.Location.Line,
		Message:  e.Message,
		Severity: severity,
		Type:     string(e.Type),
	}
}

func outputText(results []ValidationResult, strict bool) error {
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		fmt.Printf("Validating %s...\n", result.File)

		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			fmt.Println("✓ Parses cleanly")
			fmt.Println("✓ No lint findings")
		}

		for _, err := range result.Errors {
			fmt.Printf("✗ Error: %s", err.Message)
			if err.Line > 0 {
				fmt.Printf(" (line %d)", err.Line)
			}
			if err.Type != "" {
				fmt.Printf(" [%s]", err.Type)
			}
			fmt.Println()
			totalErrors++
		}

		for _, warn := range result.Warnings {
			fmt.Printf("⚠  Warning: %s", warn.Message)
			if warn.Line > 0 {
				fmt.Printf(" (line %d)", warn.Line)
			}
			fmt.Println()
			totalWarnings++
		}

		fmt.Println()
	}

	fmt.Println("Summary:")
	fmt.Printf("  %d error(s), %d warning(s)\n", totalErrors, totalWarnings)

	if strict && totalWarnings > 0 {
		fmt.Println("  Strict mode enabled: treating warnings as errors")
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}

	if totalErrors > 0 {
		return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
	}

	return nil
}

func outputJSON(results []ValidationResult, strict bool) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return err
	}

	for _, result := range results {
		if len(result.Errors) > 0 || (strict && len(result.Warnings) > 0) {
			return cli.NewCommandError("lint", fmt.Errorf("validation failed"))
		}
	}

	return nil
}
