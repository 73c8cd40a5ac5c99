// Package buildinfo holds version data injected at link time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/biteboxd/internal/buildinfo.buildVersion=v1.0.0" ./cmd/cli
package buildinfo

import (
	"fmt"
	"io"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// PrintBuildData writes the version banner to w. Unset values print as N/A.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", valueOrNA(buildVersion))
	fmt.Fprintf(w, "Build date: %s\n", valueOrNA(buildDate))
	fmt.Fprintf(w, "Build commit: %s\n", valueOrNA(buildCommit))
}
