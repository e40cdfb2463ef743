package hocr

import (
	"strings"
	"testing"

	"github.com/tsawler/pageread"
	"github.com/tsawler/pageread/geom"
)

func TestRender_WordAndLineSpans(t *testing.T) {
	page := &pageread.Page{
		Width:  200,
		Height: 100,
		Lines: []pageread.Line{
			{
				Box: geom.Box{Top: 10, Left: 5, Bottom: 30, Right: 180},
				Words: []pageread.Word{
					{Box: geom.Box{Top: 10, Left: 5, Bottom: 30, Right: 60}, Text: "hello"},
					{Box: geom.Box{Top: 10, Left: 70, Bottom: 30, Right: 180}, Text: "world"},
				},
			},
		},
	}

	doc := Render(page)

	for _, want := range []string{
		"<div class='ocr_page' id='page_1' title='bbox 0 0 200 100'>",
		"<span class='ocr_line' id='line_1' title='bbox 5 10 180 30'>",
		"<span class='ocrx_word' id='word_1_1' title='bbox 5 10 60 30'>hello</span>",
		"<span class='ocrx_word' id='word_1_2' title='bbox 70 10 180 30'>world</span>",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document missing %q", want)
		}
	}
}

func TestRender_EscapesText(t *testing.T) {
	page := &pageread.Page{
		Width:  50,
		Height: 20,
		Lines: []pageread.Line{
			{Words: []pageread.Word{{Text: "a<b&c"}}},
		},
	}

	doc := Render(page)
	if !strings.Contains(doc, "a&lt;b&amp;c") {
		t.Errorf("text content was not escaped:\n%s", doc)
	}
	if strings.Contains(doc, "a<b&c") {
		t.Error("raw text content leaked into the document")
	}
}

func TestRender_EmptyPage(t *testing.T) {
	doc := Render(&pageread.Page{Width: 10, Height: 10})
	if !strings.Contains(doc, "class='ocr_page'") {
		t.Error("empty page should still render a page div")
	}
	if strings.Contains(doc, "class='ocrx_word'") {
		t.Error("empty page should carry no word spans")
	}
}
