package commands

import (
	"go.uber.org/zap"

	"github.com/tyemirov/repomd/internal/types"
	"github.com/tyemirov/repomd/internal/utils"
)

const logSkipNonText = "skipping file with non-text type"

// GetTextFiles returns the paths of every file below root whose type, guessed
// from its name, is text or unknown. Paths are built from root as given, in
// walk order. Ignore patterns do not apply here.
func GetTextFiles(root string, logger *zap.Logger) ([]string, error) {
	logger = utils.LoggerOrNop(logger)
	var textFiles []string
	walkError := WalkTopDown(root, func(listing types.DirectoryListing) error {
		for _, fileName := range listing.FileNames {
			filePath := utils.JoinPath(listing.Path, fileName)
			if !utils.IsProbablyText(fileName) {
				logger.Debug(logSkipNonText,
					zap.String("path", filePath),
					zap.String("mimeType", utils.GuessMimeType(fileName)))
				continue
			}
			textFiles = append(textFiles, filePath)
		}
		return nil
	}, logger)
	if walkError != nil {
		return nil, walkError
	}
	return textFiles, nil
}
