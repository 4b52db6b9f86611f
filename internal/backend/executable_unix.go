//go:build !windows

package backend

import (
	"io/fs"
	"os/exec"
)

// DefaultExecutable is the file name the supervisor looks for when no
// explicit backend name is configured.
const DefaultExecutable = "backend"

func platformExecutable(name string) string {
	return name
}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

func configureCmdSysProcAttr(cmd *exec.Cmd) {}
