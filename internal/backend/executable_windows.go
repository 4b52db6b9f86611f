//go:build windows

package backend

import (
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"

	"golang.org/x/sys/windows"
)

// DefaultExecutable is the file name the supervisor looks for when no
// explicit backend name is configured.
const DefaultExecutable = "backend.exe"

func platformExecutable(name string) string {
	if filepath.Ext(name) == "" {
		return name + ".exe"
	}
	return name
}

func isExecutable(info fs.FileInfo) bool {
	return info.Mode().IsRegular() && strings.EqualFold(filepath.Ext(info.Name()), ".exe")
}

// The shell is a windowed application, so a console backend would otherwise
// pop up its own console window.
func configureCmdSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
