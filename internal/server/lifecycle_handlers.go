package server

import (
	"net/url"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"mdxls/internal/config"
)

func (s *Server) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	dirs := config.PartialDirs(params.InitializationOptions)

	var root string
	if params.RootURI != nil {
		if u, err := url.Parse(string(*params.RootURI)); err == nil && u.Path != "" {
			root = u.Path
		} else {
			log.Warningf("unusable root uri %q, continuing with empty search path", *params.RootURI)
		}
	} else {
		log.Warning("no root uri, continuing with empty search path")
	}

	s.config.Initialize(root, dirs)
	log.Infof("initialized with root %q and partials dirs %v", root, dirs)

	syncKind := protocol.TextDocumentSyncKindFull
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
		Save:      &protocol.SaveOptions{IncludeText: &protocol.True},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name: lsName,
		},
	}, nil
}

func (s *Server) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	log.Info("client initialized")
	return nil
}

func (s *Server) shutdown(context *glsp.Context) error {
	return nil
}
