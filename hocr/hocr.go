// Package hocr renders recognized pages as hOCR, the de facto XHTML
// microformat for OCR output. The rendered document carries one
// ocr_page div per page, ocr_line spans for each text line, and
// ocrx_word spans for each word, all annotated with bbox coordinates
// in the title attribute.
package hocr

import (
	"fmt"
	"html"
	"strings"

	"github.com/tsawler/pageread"
	"github.com/tsawler/pageread/geom"
)

// Render converts a recognized [pageread.Page] into a complete hOCR
// document. Lines and words appear in the order the page carries them,
// which is reading order when the layout model provides line markers.
func Render(page *pageread.Page) string {
	var sb strings.Builder
	for i, line := range page.Lines {
		fmt.Fprintf(&sb, "<span class='ocr_line' id='line_%d' title='%s'>\n", i+1, bboxTitle(line.Box))
		for j, word := range line.Words {
			fmt.Fprintf(&sb, "<span class='ocrx_word' id='word_%d_%d' title='%s'>%s</span>\n",
				i+1, j+1, bboxTitle(word.Box), html.EscapeString(word.Text))
		}
		sb.WriteString("</span>\n")
	}
	return wrapDocument(strings.TrimRight(sb.String(), "\n"), page.Width, page.Height)
}

func bboxTitle(b geom.Box) string {
	return fmt.Sprintf("bbox %d %d %d %d", b.Left, b.Top, b.Right, b.Bottom)
}

func wrapDocument(content string, width, height int) string {
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Transitional//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-transitional.dtd">
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="en" lang="en">
<head>
<title></title>
<meta http-equiv="Content-Type" content="text/html;charset=utf-8" />
<meta name='ocr-system' content='pageread' />
<meta name='ocr-capabilities' content='ocr_page ocr_line ocrx_word' />
</head>
<body>
<div class='ocr_page' id='page_1' title='bbox 0 0 %d %d'>
%s
</div>
</body>
</html>`, width, height, content)
}
