package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sassdep/sass-dep/internal/config"
	"github.com/sassdep/sass-dep/internal/diag"
)

const starterConfig = `# sass-dep configuration.
# Uncomment and edit any of the following to override the built-in
# defaults. CLI flags and SASSDEP_* environment variables still take
# precedence over whatever is set here.

# Directories searched for "@use"/"@forward"/"@import" specifiers that
# are not relative to the importing file. -I/--load-path appends to
# this list rather than replacing it.
# load_paths = ["src/styles", "vendor/scss"]

# Candidate file extensions tried, in order, for each unresolved
# specifier.
# extensions = ["scss", "sass"]

[thresholds]
# A node with more incoming edges than this is flagged high_fan_in.
# high_fan_in = 5

# A node with more outgoing edges than this is flagged high_fan_out.
# high_fan_out = 10
`

func newInitCmd(g *globals, stdout, stderr io.Writer) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter .sass-dep.toml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := filepath.Abs(g.root)
			if err != nil {
				return diag.NewConfigError("resolving --root: %v", err)
			}
			path := config.DefaultPath(root)

			if _, err := os.Stat(path); err == nil && !force {
				return diag.NewConfigError("%s already exists (use --force to overwrite)", path)
			}

			if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
				return &diag.IoError{Path: path, Err: err}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing .sass-dep.toml")
	return cmd
}
