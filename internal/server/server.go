// Package server wires the language protocol handlers to the document
// manager, parser, and partial resolver.
package server

import (
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glspserver "github.com/tliron/glsp/server"

	"mdxls/internal/config"
	"mdxls/internal/manager"
)

const lsName = "mdxls"

var log = commonlog.GetLogger(lsName)

type Server struct {
	handler *protocol.Handler
	manager *manager.DocumentManager
	config  *config.State
}

// NewServer creates the stdio-ready language server.
func NewServer() (*glspserver.Server, error) {
	ls := newServer()
	return glspserver.NewServer(ls.handler, lsName, false), nil
}

func newServer() *Server {
	ls := &Server{
		manager: manager.NewDocumentManager(),
		config:  config.NewState(),
	}
	ls.handler = &protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDefinition: ls.textDocumentDefinition,
	}
	return ls
}
