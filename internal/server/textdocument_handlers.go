package server

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"mdxls/internal/parser"
)

func (s *Server) textDocumentDidOpen(
	context *glsp.Context,
	params *protocol.DidOpenTextDocumentParams,
) error {
	s.updateDocument(params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (s *Server) textDocumentDidChange(
	context *glsp.Context,
	params *protocol.DidChangeTextDocumentParams,
) error {
	// Full sync: every change event carries the whole document, so only the
	// last one matters.
	var text string
	found := false
	for _, raw := range params.ContentChanges {
		switch change := raw.(type) {
		case protocol.TextDocumentContentChangeEvent:
			text = change.Text
			found = true
		case protocol.TextDocumentContentChangeEventWhole:
			text = change.Text
			found = true
		default:
			return fmt.Errorf("unexpected change event type %T", raw)
		}
	}
	if found {
		s.updateDocument(params.TextDocument.URI, text)
	}
	return nil
}

func (s *Server) textDocumentDidSave(
	context *glsp.Context,
	params *protocol.DidSaveTextDocumentParams,
) error {
	if params.Text != nil {
		s.updateDocument(params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (s *Server) textDocumentDidClose(
	context *glsp.Context,
	params *protocol.DidCloseTextDocumentParams,
) error {
	s.manager.Remove(params.TextDocument.URI)
	return nil
}

// updateDocument reparses the whole document and installs the new tree. A
// parse failure leaves the previous snapshot in place and is never surfaced
// to the client.
func (s *Server) updateDocument(uri string, text string) {
	tree, err := parser.Parse(text)
	if err != nil {
		log.Warningf("keeping previous snapshot of %s: %s", uri, err.Error())
		return
	}
	s.manager.SetTree(uri, tree)
}
