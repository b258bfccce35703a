package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// minFreeBytes is the floor below which the output volume is considered
// too full to start a recording.
const minFreeBytes uint64 = 256 * 1024 * 1024

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckFreeSpace verifies that the filesystem holding path has at least
// minimum bytes available to the calling user.
func CheckFreeSpace(name, path string, minimum uint64) Result {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: statfs: %v)", path, err)}
	}
	available := stat.Bavail * uint64(stat.Bsize)
	if available < minimum {
		return Result{
			Name:   name,
			Detail: fmt.Sprintf("%s (%d MiB available, %d MiB required)", path, available/(1024*1024), minimum/(1024*1024)),
		}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (%d MiB available)", path, available/(1024*1024))}
}

// CheckCaptureDevice verifies that the configured capture device node
// exists and is readable. "synthetic" is always accepted; it selects the
// built-in test source.
func CheckCaptureDevice(device string) Result {
	const name = "Capture device"
	if device == "synthetic" {
		return Result{Name: name, Passed: true, Detail: "synthetic (built-in source)"}
	}
	info, err := os.Stat(device)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", device)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", device, err)}
	}
	if info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is a directory)", device)}
	}
	if err := unix.Access(device, unix.R_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", device, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (readable)", device)}
}
