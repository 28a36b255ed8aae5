package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/datascan/internal/config"
)

//go:embed templates
var templateFS embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new datascan configuration file",
		Long: `Initialize creates a new .datascan.yaml configuration file in the current
directory.

The generated file includes:
- Default settings for the threshold and report file
- A commented example of named dataset pairs
- Documentation for all available options

Examples:
  # Create .datascan.yaml in current directory
  datascan init

  # Create config file at a specific path
  datascan init -o myconfig.yaml

  # Also write sample input files next to the configuration
  datascan init --samples

  # Force overwrite existing file
  datascan init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().Bool("samples", false,
		"Also write sample numeric and categorical input files")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing files")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}

	samples, err := cmd.Flags().GetBool("samples")
	if err != nil {
		return err
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if err := writeTemplate("templates/datascan.yaml", outputPath, force); err != nil {
		return err
	}
	fmt.Printf("Created configuration file: %s\n", outputPath)

	if samples {
		// Sample inputs land next to the configuration file so the
		// exam-results pair in the template works as written.
		dir := filepath.Dir(outputPath)
		for _, name := range []string{"student_marks.csv", "courses.csv"} {
			samplePath := filepath.Join(dir, name)
			if err := writeTemplate("templates/"+name, samplePath, force); err != nil {
				return err
			}
			fmt.Printf("Created sample input file: %s\n", samplePath)
		}
	}

	fmt.Println("\nEdit this file to configure settings such as:")
	fmt.Println("  - The performance threshold and report file path")
	fmt.Println("  - Named dataset pairs for 'datascan analyze <name>'")
	fmt.Println("  - Defaults shared by all dataset pairs")

	return nil
}

// writeTemplate copies one embedded template to the given path, refusing to
// overwrite an existing file unless force is set.
func writeTemplate(templatePath, outputPath string, force bool) error {
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("file already exists: %s (use -f to overwrite)", outputPath)
		}
	}

	content, err := templateFS.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}

	dir := filepath.Dir(outputPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(outputPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}
