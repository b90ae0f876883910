// Package manager tracks the parsed tree of every open document.
package manager

import (
	"sync"

	"mdxls/internal/ast"
)

// DocumentManager maps document URIs to their current syntax tree. Trees are
// immutable once published, so a reader holding one never needs a lock; the
// map itself is guarded, and reads do not serialize against each other.
type DocumentManager struct {
	mu    sync.RWMutex
	trees map[string]*ast.Node
}

// NewDocumentManager creates an initialized DocumentManager.
func NewDocumentManager() *DocumentManager {
	return &DocumentManager{
		trees: make(map[string]*ast.Node),
	}
}

// SetTree atomically replaces the tree for a URI.
func (dm *DocumentManager) SetTree(uri string, tree *ast.Node) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	dm.trees[uri] = tree
}

// Tree returns the current snapshot for a URI, or false if the document was
// never opened or has been closed.
func (dm *DocumentManager) Tree(uri string) (*ast.Node, bool) {
	dm.mu.RLock()
	defer dm.mu.RUnlock()
	tree, ok := dm.trees[uri]
	return tree, ok
}

// Remove drops the tree for a URI.
func (dm *DocumentManager) Remove(uri string) {
	dm.mu.Lock()
	defer dm.mu.Unlock()
	delete(dm.trees, uri)
}
