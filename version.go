package go_maplegw

import (
	"fmt"
	"runtime"
)

var version = "dev"

func VersionNumberString() string {
	return version
}

func VersionString() string {
	return fmt.Sprintf("go-maplegw %s", VersionNumberString())
}

func SystemInfoString() string {
	return fmt.Sprintf("%s; Go %s (%s/%s)", VersionString(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// UserAgent is sent on every upstream request.
func UserAgent() string {
	return fmt.Sprintf("go-maplegw/%s Go/%s", VersionNumberString(), runtime.Version())
}
