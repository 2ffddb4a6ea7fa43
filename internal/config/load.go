package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"gopkg.in/yaml.v3"
)

// LoadFile reads options from a JSON or YAML file on top of base. Keys missing
// from the file keep their value from base.
func LoadFile(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("failed to read options file: %w", err)
	}
	return Decode(data, filepath.Ext(path), base)
}

// Decode parses options encoded as JSON (ext ".json") or YAML (anything else)
func Decode(data []byte, ext string, base Options) (Options, error) {
	out := base.Clone()

	var err error
	if strings.EqualFold(ext, ".json") {
		err = sonic.Unmarshal(data, &out)
	} else {
		err = yaml.Unmarshal(data, &out)
	}
	if err != nil {
		return Options{}, fmt.Errorf("failed to parse options: %w", err)
	}

	if err := out.Validate(); err != nil {
		return Options{}, err
	}
	return out, nil
}
