// Package main hosts the photofind CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into read-only
// queries against the Photos library database: keyword search, recency
// windows, album listings, single-item lookup, and export. It centralizes
// configuration resolution, library location, and structured logging setup so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality to the internal packages
// first, then surface it through dedicated commands or flags here.
package main
