package cmd

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	version   = "dev"
	commit    = ""
	buildDate = ""
)

// versionInfo is the text printed by --version.
func versionInfo() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Version:    %s\n", version)
	fmt.Fprintf(&b, "Commit:     %s\n", emptyAsNA(commit))
	fmt.Fprintf(&b, "Build Date: %s\n", emptyAsNA(buildDate))
	fmt.Fprintf(&b, "Go Version: %s\n", runtime.Version())
	fmt.Fprintf(&b, "OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	return b.String()
}

func emptyAsNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
