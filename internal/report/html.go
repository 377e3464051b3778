package report

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/harrison/sweepsafe/internal/analyzer"
	"github.com/harrison/sweepsafe/internal/models"
)

const htmlStyle = `body{font-family:system-ui,sans-serif;margin:2rem;color:#222}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #ccc;padding:.25rem .5rem;text-align:left}
code{background:#f4f4f4;padding:0 .25rem}`

// WriteHTML renders the markdown report to a standalone HTML page.
func WriteHTML(w io.Writer, result *analyzer.Result, entries []models.FileEntry) error {
	var src bytes.Buffer
	writeMarkdown(&src, result, entries)

	md := goldmark.New(goldmark.WithExtensions(extension.GFM))

	var body bytes.Buffer
	if err := md.Convert(src.Bytes(), &body); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>Cleanup report: %s</title>\n<style>\n%s\n</style>\n</head>\n<body>\n%s</body>\n</html>\n",
		html.EscapeString(result.Root), htmlStyle, body.String())
	if err != nil {
		return fmt.Errorf("failed to write HTML: %w", err)
	}
	return nil
}
