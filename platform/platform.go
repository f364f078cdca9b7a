// Package platform learns about the current platform and process:
// executable flavor identification, 64-bit OS and process detection, and
// CPU counting.
package platform

import (
	"fmt"
	"math/bits"
	"os"
	"runtime"
	"strconv"
	"strings"
)

// Known host-executable flavors, returned by Flavor
const (
	FlavorMaya    = "Maya Python"
	FlavorExefile = "Exefile Python"
	FlavorVanilla = "Pure Python"
)

// Flavor classifies a host executable path into one of the Flavor consts.
// Matching is case-insensitive and treats debug builds ("_d.exe") like
// their release counterparts. Unrecognized paths return an error
func Flavor(exePath string) (string, error) {
	// the lowercasing is questionable under POSIX, but the scope is
	// limited to a handful of executables we know about
	path := strings.ToLower(exePath)
	path = strings.ReplaceAll(path, "_d.exe", ".exe")
	switch {
	case hasSuffix(path, "exefile.exe", "exefileconsole.exe"):
		return FlavorExefile, nil
	case hasSuffix(path, "maya.exe", "mayabatch.exe", "mayapy.exe"):
		return FlavorMaya, nil
	case hasSuffix(path, "python.exe", "pythonw.exe", "python"):
		return FlavorVanilla, nil
	}
	return "", fmt.Errorf("could not identify executable path %q", exePath)
}

func hasSuffix(s string, suffixes ...string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return true
		}
	}
	return false
}

// Is64BitWindows returns true if the current OS is a 64-bit Windows.
// Behavior is unreliable on other OSes. There is no explicit probe for
// this, so it uses the recommended environment heuristic
func Is64BitWindows() bool {
	_, ok := os.LookupEnv("PROGRAMFILES(x86)")
	return ok
}

// Is64BitProcess returns true if the current process is 64 bits
func Is64BitProcess() bool {
	return bits.UintSize == 64
}

// CPUCount returns the number of virtual or physical CPUs on this system.
// It falls back to the NUMBER_OF_PROCESSORS environment variable when the
// runtime reports nothing useful, and errors when neither source works
func CPUCount() (int, error) {
	if n := runtime.NumCPU(); n > 0 {
		return n, nil
	}
	if env := os.Getenv("NUMBER_OF_PROCESSORS"); env != "" {
		n, err := strconv.Atoi(env)
		if err == nil && n > 0 {
			return n, nil
		}
	}
	return 0, fmt.Errorf("number of processors could not be determined")
}
