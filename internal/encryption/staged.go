package encryption

import (
	"fmt"
	"os"
)

// ReplaceFile publishes data over the file at path using a
// write-to-temp-then-rename so a crash mid-write never leaves a partially
// encrypted file behind. The rename is atomic on POSIX filesystems.
func ReplaceFile(path string, data []byte) error {
	tmp := path + ".staged"

	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("staging encrypted file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("publishing encrypted file: %w", err)
	}

	return nil
}
