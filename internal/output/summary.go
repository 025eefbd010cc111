package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tyemirov/repomd/internal/types"
)

const (
	summaryFormat       = "Summary: %d %s written, %d ignored, %d undecodable, %s"
	summaryTokensFormat = ", %d tokens (model: %s)"
	fileLabelSingular   = "file"
	fileLabelPlural     = "files"

	byteUnitStep = 1024
)

var byteUnits = []string{"b", "kb", "mb", "gb", "tb", "pb"}

// FormatSummaryLine reports what a run wrote. The token count is appended once
// a model has been recorded for the summary.
func FormatSummaryLine(summary types.RepositorySummary) string {
	label := fileLabelPlural
	if summary.FilesWritten == 1 {
		label = fileLabelSingular
	}
	line := fmt.Sprintf(summaryFormat, summary.FilesWritten, label, summary.FilesIgnored, summary.FilesUndecodable, formatByteSize(summary.BytesWritten))
	if summary.TokenModel != "" {
		line += fmt.Sprintf(summaryTokensFormat, summary.Tokens, summary.TokenModel)
	}
	return line
}

// formatByteSize renders byteCount in binary units with one decimal below ten.
func formatByteSize(byteCount int64) string {
	if byteCount < byteUnitStep {
		return strconv.FormatInt(max(byteCount, 0), 10) + byteUnits[0]
	}
	scaled := float64(byteCount)
	unitIndex := 0
	for scaled >= byteUnitStep && unitIndex < len(byteUnits)-1 {
		scaled /= byteUnitStep
		unitIndex++
	}
	precision := 0
	if scaled < 10 {
		precision = 1
	}
	rendered := strings.TrimSuffix(strconv.FormatFloat(scaled, 'f', precision, 64), ".0")
	return rendered + byteUnits[unitIndex]
}
