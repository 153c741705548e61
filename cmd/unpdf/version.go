package main

import "runtime/debug"

// getVersion reports the module version embedded by `go build`, falling
// back to "(devel)" outside a tagged release build.
func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "(devel)"
}

// getGitHash extracts the vcs.revision build setting go build embeds when
// run from within a git checkout.
func getGitHash() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return "unknown"
}
