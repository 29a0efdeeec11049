package snapshot

import "strings"

const codeFence = "```"

// Render concatenates records into the snapshot document. Each block holds the relative
// path, an opening fence, the verbatim content followed by a newline, a closing fence, and
// a blank separator line.
func Render(records []FileRecord) string {
	var documentBuilder strings.Builder
	for _, record := range records {
		documentBuilder.WriteString(record.RelativePath)
		documentBuilder.WriteString("\n" + codeFence + "\n")
		documentBuilder.WriteString(record.Content)
		documentBuilder.WriteString("\n" + codeFence + "\n\n")
	}
	return documentBuilder.String()
}
