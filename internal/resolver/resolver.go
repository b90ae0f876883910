// Package resolver locates the file a partial reference element points at.
package resolver

import (
	"os"
	"path/filepath"

	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.lsp.dev/uri"

	"mdxls/internal/ast"
	"mdxls/internal/config"
)

// FindMatchingPartial resolves the element's src attribute against the
// configured search directories, in order; the first directory containing
// the file wins. The returned location addresses the file as a whole, so its
// range is zero. Every failure mode degrades to false: empty search path,
// unset workspace root, missing or non-literal src, and any stat error
// (a file we cannot stat is treated the same as one that does not exist).
//
// Each call re-probes the filesystem. Resolution volume is interactive
// definition requests, so no caching is done here.
func FindMatchingPartial(node *ast.Node, cfg config.Values) (protocol.Location, bool) {
	if len(cfg.PartialsDirs) == 0 || cfg.WorkspaceRoot == "" {
		return protocol.Location{}, false
	}

	src, ok := node.AttributeValue("src")
	if !ok {
		return protocol.Location{}, false
	}

	for _, dir := range cfg.PartialsDirs {
		candidate := filepath.Join(cfg.WorkspaceRoot, dir, src)
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		return protocol.Location{URI: protocol.DocumentUri(uri.File(candidate))}, true
	}
	return protocol.Location{}, false
}
