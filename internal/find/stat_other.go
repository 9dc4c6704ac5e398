//go:build !linux

package vexyglob

import (
	"os"
	"time"
)

// accessTime falls back to the modification time on platforms without a
// portable access-time field.
func accessTime(info os.FileInfo) time.Time {
	return info.ModTime()
}

// changeTime falls back to the modification time on platforms without a
// portable change-time field.
func changeTime(info os.FileInfo) time.Time {
	return info.ModTime()
}

// deviceID reports no device information; same-file-system pruning becomes a
// no-op on these platforms.
func deviceID(os.FileInfo) (uint64, bool) {
	return 0, false
}
