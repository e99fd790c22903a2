package base

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlagSet_Help(t *testing.T) {
	var config string
	var verbose bool

	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))
	f.StringVar(&config, "config", "", "Path to config file")
	f.BoolVar(&verbose, "verbose", false, "Print more")

	help := f.Help()
	assert.Contains(t, help, "Options:")
	assert.Contains(t, help, "-config\n      Path to config file")
	assert.Contains(t, help, "-verbose=false\n      Print more")
}

func TestFlagSet_ParseError(t *testing.T) {
	f := NewFlagSet(flag.NewFlagSet("test", flag.ContinueOnError))

	err := f.Parse([]string{"-unknown"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}
