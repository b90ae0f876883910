package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"mdxls/internal/ast"
	"mdxls/internal/resolver"
)

func (s *Server) textDocumentDefinition(
	context *glsp.Context,
	params *protocol.DefinitionParams,
) (any, error) {
	tree, ok := s.manager.Tree(params.TextDocument.URI)
	if !ok {
		return nil, nil
	}

	chain := ast.AncestorChain(tree, params.Position)
	match := ast.FindDeepestMatch(chain, (*ast.Node).IsPartial)
	if match == nil {
		return nil, nil
	}

	location, ok := resolver.FindMatchingPartial(match, s.config.Snapshot())
	if !ok {
		return nil, nil
	}
	return location, nil
}
