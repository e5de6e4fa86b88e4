// Package envcheck inspects a Linux host for the prerequisites of a real
// Ocean Optics spectrometer: libusb, udev rules, plugdev membership and the
// python-seabreeze driver. Every check is advisory and never fails hard.
package envcheck

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// Host prerequisites.
const (
	MinGoMajor = 1
	MinGoMinor = 21

	UdevRulesPath = "/etc/udev/rules.d/10-oceanoptics.rules"
	UdevRulesURL  = "https://raw.githubusercontent.com/ap--/python-seabreeze/master/misc/10-oceanoptics.rules"
	DeviceGroup   = "plugdev"
	LibUSBPackage = "libusb-1.0-0-dev"
)

// DefaultLibDirs are searched for the libusb shared object.
var DefaultLibDirs = []string{
	"/usr/lib",
	"/usr/lib64",
	"/usr/local/lib",
	"/lib",
	"/usr/lib/x86_64-linux-gnu",
	"/usr/lib/aarch64-linux-gnu",
	"/lib/x86_64-linux-gnu",
	"/lib/aarch64-linux-gnu",
}

// Result is the outcome of one check.
type Result struct {
	Name   string
	Passed bool
	Detail string
	Remedy []string // shell commands or instructions that fix a failure
}

// Runner executes an external command and returns its standard output.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return string(out), err
}

// Checker runs the host checks. The zero value is not usable; use New.
type Checker struct {
	Root      string // prefix for absolute paths, "/" on a live host
	LibDirs   []string
	Runner    Runner
	Python    string
	Timeout   time.Duration
	GoVersion string
	Groups    func() ([]string, error)
	CPU       func() CPUFeatures // nil detects the running host
}

// New returns a Checker for the running host.
func New() *Checker {
	return &Checker{
		Root:      "/",
		LibDirs:   DefaultLibDirs,
		Runner:    ExecRunner{},
		Python:    "python3",
		Timeout:   10 * time.Second,
		GoVersion: runtime.Version(),
		Groups:    currentGroups,
		CPU:       detectCPU,
	}
}

// Run performs all checks in order. The backend check runs only when the
// seabreeze package is importable.
func (c *Checker) Run(ctx context.Context) []Result {
	results := []Result{
		c.CheckGoVersion(),
		c.CheckCPU(),
		c.CheckLibUSB(),
		c.CheckUdevRules(),
		c.CheckGroup(),
	}

	sb := c.CheckSeabreeze(ctx)
	results = append(results, sb)
	if sb.Passed {
		results = append(results, c.CheckBackend(ctx))
	}

	return results
}

func (c *Checker) path(p string) string {
	return filepath.Join(c.Root, p)
}

// CheckGoVersion verifies the toolchain the binary was built with.
func (c *Checker) CheckGoVersion() Result {
	r := Result{Name: "Go version"}

	major, minor, ok := parseGoVersion(c.GoVersion)
	switch {
	case !ok:
		r.Passed = true
		r.Detail = fmt.Sprintf("%s detected (unreleased toolchain, not verified)", c.GoVersion)
	case major > MinGoMajor || (major == MinGoMajor && minor >= MinGoMinor):
		r.Passed = true
		r.Detail = fmt.Sprintf("%s detected", c.GoVersion)
	default:
		r.Detail = fmt.Sprintf("go%d.%d+ required, found %s", MinGoMajor, MinGoMinor, c.GoVersion)
		r.Remedy = []string{"Install a current Go release from https://go.dev/dl/"}
	}

	return r
}

// parseGoVersion extracts major and minor from strings like "go1.25.1".
func parseGoVersion(v string) (int, int, bool) {
	rest, ok := strings.CutPrefix(v, "go")
	if !ok {
		return 0, 0, false
	}
	if i := strings.IndexAny(rest, " -+"); i >= 0 {
		rest = rest[:i]
	}

	parts := strings.Split(rest, ".")
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	// Pre-releases look like "1.26rc1".
	minorStr := parts[1]
	if i := strings.IndexFunc(minorStr, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		minorStr = minorStr[:i]
	}
	minor, err := strconv.Atoi(minorStr)
	if err != nil {
		return 0, 0, false
	}

	return major, minor, true
}

// CheckLibUSB looks for libusb-1.0 shared objects in the library paths.
func (c *Checker) CheckLibUSB() Result {
	r := Result{Name: "libusb"}

	for _, dir := range c.LibDirs {
		matches, _ := filepath.Glob(filepath.Join(c.path(dir), "libusb-1.0.so*"))
		if len(matches) > 0 {
			rel, err := filepath.Rel(c.Root, matches[0])
			if err != nil {
				rel = matches[0]
			}
			r.Passed = true
			r.Detail = "libusb-1.0 found at /" + filepath.ToSlash(rel)
			return r
		}
	}

	r.Detail = LibUSBPackage + " not found"
	r.Remedy = []string{"sudo apt update && sudo apt install " + LibUSBPackage}
	return r
}

// CheckUdevRules verifies the Ocean Optics udev rule file is installed and
// readable.
func (c *Checker) CheckUdevRules() Result {
	r := Result{Name: "udev rules"}

	if readable(c.path(UdevRulesPath)) {
		r.Passed = true
		r.Detail = "Ocean Optics udev rules found"
		return r
	}

	r.Detail = "Ocean Optics udev rules not found"
	r.Remedy = []string{
		"sudo wget " + UdevRulesURL + " -O " + UdevRulesPath,
		"sudo udevadm control --reload-rules",
		"sudo udevadm trigger",
	}
	return r
}

// CheckGroup verifies the current user is in the device group.
func (c *Checker) CheckGroup() Result {
	r := Result{Name: "User groups"}

	groups, err := c.Groups()
	if err != nil {
		r.Detail = fmt.Sprintf("could not determine groups: %v", err)
		return r
	}

	for _, g := range groups {
		if g == DeviceGroup {
			r.Passed = true
			r.Detail = fmt.Sprintf("User is in %q group", DeviceGroup)
			return r
		}
	}

	r.Detail = fmt.Sprintf("User is NOT in %q group", DeviceGroup)
	r.Remedy = []string{
		"sudo usermod -a -G " + DeviceGroup + " $USER",
		"Then log out and log back in (or reboot)",
	}
	return r
}

// CheckSeabreeze verifies python-seabreeze can be imported.
func (c *Checker) CheckSeabreeze(ctx context.Context) Result {
	r := Result{Name: "seabreeze"}

	out, err := c.python(ctx, "import seabreeze; print(seabreeze.__version__)")
	if err != nil {
		r.Detail = "seabreeze is NOT installed"
		r.Remedy = []string{
			"pip install seabreeze",
			"or: conda install -c conda-forge seabreeze",
		}
		return r
	}

	r.Passed = true
	r.Detail = fmt.Sprintf("seabreeze is installed (version: %s)", strings.TrimSpace(out))
	return r
}

// CheckBackend loads the cseabreeze backend, falling back to pyseabreeze.
func (c *Checker) CheckBackend(ctx context.Context) Result {
	r := Result{Name: "Backend"}

	var failures []string
	for _, backend := range []string{"cseabreeze", "pyseabreeze"} {
		_, err := c.python(ctx, fmt.Sprintf("import seabreeze; seabreeze.use(%q)", backend))
		if err == nil {
			r.Passed = true
			r.Detail = backend + " backend loaded successfully"
			if len(failures) > 0 {
				r.Detail += " (" + strings.Join(failures, "; ") + ")"
			}
			return r
		}
		failures = append(failures, fmt.Sprintf("%s: %v", backend, err))
	}

	r.Detail = "no seabreeze backend could be loaded: " + strings.Join(failures, "; ")
	r.Remedy = []string{"pip install --force-reinstall seabreeze"}
	return r
}

func (c *Checker) python(ctx context.Context, code string) (string, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}
	return c.Runner.Run(ctx, c.Python, "-c", code)
}
