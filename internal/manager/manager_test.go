package manager_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"mdxls/internal/ast"
	"mdxls/internal/manager"
)

func TestSetTreeAndTree(t *testing.T) {
	dm := manager.NewDocumentManager()
	tree := &ast.Node{Kind: ast.KindRoot}

	dm.SetTree("file:///a.mdx", tree)

	got, ok := dm.Tree("file:///a.mdx")
	require.True(t, ok)
	require.Same(t, tree, got)
}

func TestSetTreeReplaces(t *testing.T) {
	dm := manager.NewDocumentManager()
	first := &ast.Node{Kind: ast.KindRoot}
	second := &ast.Node{Kind: ast.KindRoot}

	dm.SetTree("file:///a.mdx", first)
	dm.SetTree("file:///a.mdx", second)

	got, ok := dm.Tree("file:///a.mdx")
	require.True(t, ok)
	require.Same(t, second, got)
}

func TestTreeUnknown(t *testing.T) {
	dm := manager.NewDocumentManager()

	_, ok := dm.Tree("file:///never-opened.mdx")
	require.False(t, ok)
}

func TestRemove(t *testing.T) {
	dm := manager.NewDocumentManager()
	dm.SetTree("file:///a.mdx", &ast.Node{Kind: ast.KindRoot})

	dm.Remove("file:///a.mdx")

	_, ok := dm.Tree("file:///a.mdx")
	require.False(t, ok)
}

func TestConcurrentAccess(t *testing.T) {
	dm := manager.NewDocumentManager()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		uri := fmt.Sprintf("file:///%d.mdx", i%4)
		wg.Add(2)
		go func() {
			defer wg.Done()
			dm.SetTree(uri, &ast.Node{Kind: ast.KindRoot})
		}()
		go func() {
			defer wg.Done()
			dm.Tree(uri)
		}()
	}
	wg.Wait()
}
