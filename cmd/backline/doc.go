// Package main hosts the backline CLI entrypoint and command graph.
//
// The Cobra command tree edits the band's equipment inventory, prints the
// derived channel list, renders the stage plot and exports the printable
// technical rider. Configuration resolution, record store access and logging
// setup live in the command context so subcommands stay declarative.
//
// Add new behaviour to the internal packages first and surface it here.
package main
