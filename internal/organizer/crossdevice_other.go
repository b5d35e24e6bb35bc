//go:build !unix

package organizer

import "os"

// Without errno values to inspect, any rename failure that is not a
// permission problem gets the copy fallback.
func isCrossDevice(err error) bool {
	return !os.IsPermission(err) && !os.IsNotExist(err)
}
