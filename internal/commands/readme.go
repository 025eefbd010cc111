package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/tyemirov/repomd/internal/utils"
)

const (
	errorReadReadmeFormat   = "reading README %s: %w"
	errorDecodeReadmeFormat = "decoding README %s: invalid UTF-8"
)

// LoadReadme returns the text of README.md directly inside root with line
// endings normalized. A missing README yields an empty string.
func LoadReadme(root string) (string, error) {
	readmePath := utils.JoinPath(root, utils.ReadmeFileName)
	readmeBytes, readError := os.ReadFile(readmePath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf(errorReadReadmeFormat, readmePath, readError)
	}
	readmeText, decoded := utils.DecodeText(readmeBytes)
	if !decoded {
		return "", fmt.Errorf(errorDecodeReadmeFormat, readmePath)
	}
	return readmeText, nil
}
