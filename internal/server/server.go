package server

import (
	"github.com/hashicorp/go-hclog"

	"github.com/readable-research/readable/internal/config"
	"github.com/readable-research/readable/pkg/papers"
)

// Server contains the server configuration and the dependencies shared by
// all API handlers. It is built once at startup and never mutated.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// Logger is the logger for the server.
	Logger hclog.Logger

	// Papers is the read-only paper store rooted at Config.Papers.Dir.
	Papers *papers.Store
}
