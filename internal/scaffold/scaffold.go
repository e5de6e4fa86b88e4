// Package scaffold writes the helper files produced by uvvis-setup: a host
// installation script and a simulator configuration.
package scaffold

import (
	_ "embed"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/cwbudde/algo-uvvis/internal/config"
	"github.com/cwbudde/algo-uvvis/internal/envcheck"
)

// File names written by Write.
const (
	InstallScriptName = "install_uvvis_setup.sh"
	ConfigName        = config.FileName
)

//go:embed install_uvvis_setup.sh.tmpl
var installScriptTemplate string

var installScript = template.Must(template.New(InstallScriptName).Parse(installScriptTemplate))

// ScriptData parameterises the installation script.
type ScriptData struct {
	ScriptName     string
	Steps          int
	LibUSBPackage  string
	RulesURL       string
	RulesPath      string
	Group          string
	PythonPackages []string
	CheckCommand   string
}

// DefaultScriptData matches the prerequisites verified by envcheck.
func DefaultScriptData() ScriptData {
	return ScriptData{
		ScriptName:     InstallScriptName,
		Steps:          5,
		LibUSBPackage:  envcheck.LibUSBPackage,
		RulesURL:       envcheck.UdevRulesURL,
		RulesPath:      envcheck.UdevRulesPath,
		Group:          envcheck.DeviceGroup,
		PythonPackages: []string{"numpy", "pandas", "matplotlib"},
		CheckCommand:   "uvvis-setup",
	}
}

// RenderInstallScript executes the embedded script template.
func RenderInstallScript(data ScriptData) ([]byte, error) {
	var buf bytes.Buffer
	if err := installScript.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render install script: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteInstallScript renders the script into dir with mode 0755 and
// returns its path.
func WriteInstallScript(dir string, data ScriptData) (string, error) {
	content, err := RenderInstallScript(data)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, InstallScriptName)
	if err := os.WriteFile(path, content, 0o755); err != nil {
		return "", fmt.Errorf("write install script: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("chmod install script: %w", err)
	}

	return path, nil
}

// WriteConfig saves cfg as the simulator configuration in dir and returns
// its path.
func WriteConfig(dir string, cfg *config.Config) (string, error) {
	path := filepath.Join(dir, ConfigName)
	if err := cfg.Save(path); err != nil {
		return "", fmt.Errorf("write simulator config: %w", err)
	}
	return path, nil
}
