package server

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"go.lsp.dev/uri"
)

const docURI = "file:///doc.mdx"

func initServer(t *testing.T, workspace string, options any) *Server {
	t.Helper()
	s := newServer()
	rootURI := protocol.DocumentUri(uri.File(workspace))
	_, err := s.initialize(nil, &protocol.InitializeParams{
		RootURI:               &rootURI,
		InitializationOptions: options,
	})
	require.NoError(t, err)
	return s
}

func openDocument(t *testing.T, s *Server, text string) {
	t.Helper()
	err := s.textDocumentDidOpen(nil, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        docURI,
			LanguageID: "mdx",
			Version:    1,
			Text:       text,
		},
	})
	require.NoError(t, err)
}

func changeDocument(t *testing.T, s *Server, text string) {
	t.Helper()
	err := s.textDocumentDidChange(nil, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: docURI},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: text},
		},
	})
	require.NoError(t, err)
}

func definitionAt(t *testing.T, s *Server, line, character protocol.UInteger) any {
	t.Helper()
	result, err := s.textDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
			Position:     protocol.Position{Line: line, Character: character},
		},
	})
	require.NoError(t, err)
	return result
}

func writePartial(t *testing.T, workspace, dir, name string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(workspace, dir), 0o755))
	path := filepath.Join(workspace, dir, name)
	require.NoError(t, os.WriteFile(path, []byte("# partial"), 0o644))
	return path
}

const document = "# H\n\n<$Partial src=\"a.mdx\" />"

func TestDefinitionResolvesPartial(t *testing.T) {
	workspace := t.TempDir()
	path := writePartial(t, workspace, "partials", "a.mdx")

	s := initServer(t, workspace, map[string]any{"partials_dir": "partials"})
	openDocument(t, s, document)

	// cursor inside the element tag
	result := definitionAt(t, s, 2, 3)
	location, ok := result.(protocol.Location)
	require.True(t, ok)
	require.Equal(t, protocol.DocumentUri(uri.File(path)), location.URI)
	require.Equal(t, protocol.Range{}, location.Range)
}

func TestDefinitionInHeading(t *testing.T) {
	workspace := t.TempDir()
	writePartial(t, workspace, "partials", "a.mdx")

	s := initServer(t, workspace, map[string]any{"partials_dir": "partials"})
	openDocument(t, s, document)

	require.Nil(t, definitionAt(t, s, 0, 1))
}

func TestDefinitionUnknownDocument(t *testing.T) {
	s := initServer(t, t.TempDir(), map[string]any{"partials_dir": "partials"})

	require.Nil(t, definitionAt(t, s, 0, 0))
}

func TestDefinitionWithoutOptions(t *testing.T) {
	workspace := t.TempDir()
	writePartial(t, workspace, "partials", "a.mdx")

	s := initServer(t, workspace, nil)
	openDocument(t, s, document)

	require.Nil(t, definitionAt(t, s, 2, 3))
}

func TestInitializeWithoutRoot(t *testing.T) {
	s := newServer()
	_, err := s.initialize(nil, &protocol.InitializeParams{
		InitializationOptions: map[string]any{"partials_dir": "partials"},
	})
	require.NoError(t, err)

	openDocument(t, s, document)
	require.Nil(t, definitionAt(t, s, 2, 3))
}

func TestParseFailureKeepsSnapshot(t *testing.T) {
	workspace := t.TempDir()
	writePartial(t, workspace, "partials", "a.mdx")

	s := initServer(t, workspace, map[string]any{"partials_dir": "partials"})
	openDocument(t, s, document)

	// broken edit, previous tree stays in place
	changeDocument(t, s, "<$Partial src=\"a.mdx\"")
	result := definitionAt(t, s, 2, 3)
	_, ok := result.(protocol.Location)
	require.True(t, ok)

	// valid edit replaces the tree
	changeDocument(t, s, "# gone")
	require.Nil(t, definitionAt(t, s, 2, 3))
}

func TestDidCloseRemovesDocument(t *testing.T) {
	workspace := t.TempDir()
	writePartial(t, workspace, "partials", "a.mdx")

	s := initServer(t, workspace, map[string]any{"partials_dir": "partials"})
	openDocument(t, s, document)

	err := s.textDocumentDidClose(nil, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: docURI},
	})
	require.NoError(t, err)

	require.Nil(t, definitionAt(t, s, 2, 3))
}
