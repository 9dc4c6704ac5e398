//go:build linux

package vexyglob

import (
	"os"
	"syscall"
	"time"
)

// accessTime returns the last access time, falling back to the modification
// time when the platform data is unavailable.
func accessTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Atim.Sec, st.Atim.Nsec)
	}
	return info.ModTime()
}

// changeTime returns the inode change time. Go exposes no portable creation
// time, so ctime filters use the change time here.
func changeTime(info os.FileInfo) time.Time {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
	}
	return info.ModTime()
}

// deviceID identifies the filesystem holding the entry, for the
// same-file-system option.
func deviceID(info os.FileInfo) (uint64, bool) {
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		return uint64(st.Dev), true
	}
	return 0, false
}
