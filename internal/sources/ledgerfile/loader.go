package ledgerfile

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Loader reads a ledger file from disk.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Path is the file the loader reads.
func (l *Loader) Path() string { return l.filePath }

// Load reads and parses the file.
func (l *Loader) Load() (File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return File{}, fmt.Errorf("failed to read ledger file: %w", err)
	}
	return Parse(data)
}

// Parse decodes ledger YAML. ${VAR} references are replaced by the
// environment value so one file can serve several deployments.
func Parse(data []byte) (File, error) {
	data = expandEnv(data)

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("failed to parse ledger yaml: %w", err)
	}
	return f, nil
}

var envRefRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnv substitutes ${VAR}. Unset variables become empty strings.
func expandEnv(data []byte) []byte {
	return envRefRe.ReplaceAllFunc(data, func(m []byte) []byte {
		name := envRefRe.FindSubmatch(m)[1]
		return []byte(os.Getenv(string(name)))
	})
}
