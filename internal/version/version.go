package version

import (
	"runtime"
	"time"
)

// Name is the service name reported by /healthz and the CLI.
const Name = "rolewithai"

// Overridden at build time with -ldflags "-X".
var (
	Version   = "dev"                           // ex: v0.3.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-02-11T18:42:00Z
	GoVersion = runtime.Version()
)

// String is the one-line banner printed at startup.
func String() string {
	return Name + " " + Version + " (commit=" + Commit + ", built=" + BuildDate + ", go=" + GoVersion + ")"
}
