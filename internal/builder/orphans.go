package builder

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/sassdep/sass-dep/internal/depgraph"
)

var skipDirs = map[string]struct{}{
	"node_modules": {},
	".git":         {},
	".hg":          {},
	".svn":         {},
	"dist":         {},
	"build":        {},
}

// discoverOrphans walks opts.Root for .scss/.sass files not already
// present in g and adds each as a new, edge-less node; the analyzer
// later classifies any such node Orphan once it finds no path from an
// entry point. When root has its own .git directory, tracked-and-
// untracked-but-not-ignored files come from `git ls-files`; otherwise
// opts.IgnoreFile, a .sass-depignore (or,
// failing that, a .gitignore) at the root is matched by hand.
func discoverOrphans(g *depgraph.Graph, opts Options) error {
	gitFiles := gitLsFiles(opts.Root)
	var gi *ignore.GitIgnore
	if gitFiles == nil {
		gi = loadIgnore(opts)
	}

	return filepath.WalkDir(opts.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		name := d.Name()

		if d.IsDir() {
			if path == opts.Root {
				return nil
			}
			if _, skip := skipDirs[name]; skip || strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type()&os.ModeSymlink != 0 {
			return nil
		}
		if !hasSassExtension(name) {
			return nil
		}

		rel, err := filepath.Rel(opts.Root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if gitFiles != nil {
			if _, tracked := gitFiles[rel]; !tracked {
				return nil
			}
		} else if gi != nil && gi.MatchesPath(rel) {
			return nil
		}

		id := depgraph.NodeId(rel)
		if _, ok := g.Node(id); ok {
			return nil
		}

		canon, err := canonicalizeExisting(path)
		if err != nil {
			canon = path
		}
		// Leave flags to the analyzer: a node unreachable from any entry
		// point is classified Orphan there, from depth alone.
		g.EnsureNode(id, canon)
		return nil
	})
}

// gitLsFiles returns the set of paths (relative to root) that git
// considers tracked-or-untracked-but-not-ignored, or nil if root has
// no .git directory of its own (a root nested deeper inside a
// worktree also gets nil) or the git command fails. This
// mirrors the cache-freshness git integration used elsewhere in the
// reference tooling this builder is modeled on.
func gitLsFiles(root string) map[string]struct{} {
	if info, err := os.Stat(filepath.Join(root, ".git")); err != nil || !info.IsDir() {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "ls-files", "--cached", "--others", "--exclude-standard")
	cmd.Dir = root
	out, err := cmd.Output()
	if err != nil {
		return nil
	}

	files := make(map[string]struct{})
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		if line != "" {
			files[line] = struct{}{}
		}
	}
	return files
}

func hasSassExtension(name string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	return ext == "scss" || ext == "sass"
}

func loadIgnore(opts Options) *ignore.GitIgnore {
	if opts.IgnoreFile != "" {
		if gi, err := ignore.CompileIgnoreFile(opts.IgnoreFile); err == nil {
			return gi
		}
	}
	path := filepath.Join(opts.Root, ".sass-depignore")
	if gi, err := ignore.CompileIgnoreFile(path); err == nil {
		return gi
	}
	path = filepath.Join(opts.Root, ".gitignore")
	if gi, err := ignore.CompileIgnoreFile(path); err == nil {
		return gi
	}
	return nil
}
