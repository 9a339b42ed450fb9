package config

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// RawVersion is set via build flags.
var RawVersion = "dev"

// getVersion returns the version string in the form "v<RawVersion>-<shortCommit>",
// where <shortCommit> is the first 7 characters of the git commit SHA with
// "+dirty" appended if there were uncommitted changes at build time.
func getVersion() string {
	var (
		err         error
		isDirty     bool
		shortCommit string
	)

	// read git commit sha and modified flag from go build information
	bi, ok := debug.ReadBuildInfo()
	if ok {
		for _, bs := range bi.Settings {
			switch bs.Key {
			case "vcs.revision":
				shortCommit = bs.Value
				if len(bs.Value) >= 7 {
					shortCommit = bs.Value[:7]
				}
			case "vcs.modified":
				isDirty, err = strconv.ParseBool(bs.Value)
				if err != nil {
					isDirty = false
				}
			}
		}
	}

	if isDirty {
		shortCommit += "+dirty"
	}

	return fmt.Sprintf("v%s-%s", RawVersion, shortCommit)
}
