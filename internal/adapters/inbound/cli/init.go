package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scriptorium/scriptorium/internal/adapters/outbound/config"
)

func newInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Generate a .scriptorium.yaml configuration file",
		Long:  "Create a .scriptorium.yaml skeleton in the project root. Sections left empty keep the built-in defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			dest := filepath.Join(absPath, config.FileName)
			if !force {
				if _, err := os.Stat(dest); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", config.FileName)
				}
			}

			if err := os.WriteFile(dest, []byte(starterConfig), 0644); err != nil {
				return fmt.Errorf("writing config: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", config.FileName)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing .scriptorium.yaml")

	return cmd
}

// starterConfig is the skeleton written by init. Empty sections fall back
// to the built-in defaults.
const starterConfig = `# Scriptorium configuration.
# Empty sections keep the built-in defaults.

# Override the expected directory tree. Each node is a map entry with a
# kind (file or dir), a required flag, and optional children.
# structure:
#   index.md:
#     type: file
#     required: true
#   chapitres:
#     type: dir
#     required: true

# Override the expected templates (relative to templates/).
# templates:
#   chapitre.md:
#     required: true

# Front-matter rules keyed by a path pattern matched against the start of
# each document's relative path.
# frontmatter:
#   "personnages/.*":
#     required_fields: [nom]
#     recommended_fields: [tags, citation]
#     valid_tags: [personnage, secondaire]

# Paths skipped entirely during scans, relative to the project root.
# exclude_paths:
#   - archives
`
