package corpus

import (
	"fmt"
	"os"
)

// LoadFile reads the entire file at path and returns it as a string.
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read corpus file: %w", err)
	}
	return string(data), nil
}
