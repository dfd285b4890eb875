package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"syscall"
)

const (
	EnvDataDir = "GREENHOUSE_DATA"
	EnvStore   = "GREENHOUSE_STORE"
)

// RunExtension attempts to find and execute an external ghs-<subcommand>
// binary. It returns (true, exitCode) if an extension was found and
// executed, and (false, 0) if no extension was found.
func RunExtension(subcommand string, args []string) (bool, int) {
	externalCmdName := "ghs-" + subcommand

	lp, err := exec.LookPath(externalCmdName)
	if err != nil {
		slog.Debug("no extension in PATH", "command", externalCmdName)
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	// Pass the resolved global flags down as environment variables.
	cmd.Env = append(os.Environ(),
		EnvDataDir+"="+*dataDir,
		EnvStore+"="+*storeBackend,
	)

	if err := cmd.Run(); err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			if status, ok := exitError.Sys().(syscall.WaitStatus); ok {
				return true, status.ExitStatus()
			}
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", externalCmdName, err)
		return true, 1
	}

	return true, 0
}

// IsRegistered reports whether name is one of the built-in subcommands.
func IsRegistered(name string) bool {
	switch name {
	case "add-partner", "rename-partner", "delete-partner", "list-partners",
		"add-delivery", "edit-delivery", "delete-delivery", "list-deliveries",
		"add-settlement", "edit-settlement", "delete-settlement", "list-settlements",
		"summary", "report", "topic",
		"help", "flags", "commands":
		return true
	}
	return false
}
