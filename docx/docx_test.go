package docx

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unidoc/unioffice/document"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// buildTree returns a detached document with p top-level paragraphs and one
// table of r rows x c cells, each cell holding q paragraphs.
func buildTree(p, r, c, q int) *Document {
	d := NewDocument()
	for i := 0; i < p; i++ {
		d.Paragraphs = append(d.Paragraphs, d.NewParagraph(fmt.Sprintf("p%d", i)))
	}
	tbl := &Table{}
	for ri := 0; ri < r; ri++ {
		row := &Row{}
		for ci := 0; ci < c; ci++ {
			cell := &Cell{}
			for qi := 0; qi < q; qi++ {
				cell.Paragraphs = append(cell.Paragraphs, d.NewParagraph(fmt.Sprintf("r%dc%dq%d", ri, ci, qi)))
			}
			row.Cells = append(row.Cells, cell)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	d.Tables = append(d.Tables, tbl)
	return d
}

func TestWalk_VisitsEveryParagraphOnce(t *testing.T) {
	for _, dims := range [][4]int{{0, 0, 0, 0}, {3, 0, 0, 0}, {2, 3, 4, 2}, {1, 1, 1, 5}} {
		p, r, c, q := dims[0], dims[1], dims[2], dims[3]
		t.Run(fmt.Sprintf("P%d_R%d_C%d_Q%d", p, r, c, q), func(t *testing.T) {
			d := buildTree(p, r, c, q)

			seen := make(map[string]int)
			n := Walk(d, func(s string) string {
				seen[s]++
				return s
			})

			assert.Equal(t, p+r*c*q, n)
			assert.Len(t, seen, n)
			for text, count := range seen {
				assert.Equal(t, 1, count, "visited %q more than once", text)
			}
		})
	}
}

func TestWalk_Order(t *testing.T) {
	d := buildTree(2, 2, 2, 1)

	var order []string
	Walk(d, func(s string) string {
		order = append(order, s)
		return s
	})

	assert.Equal(t, []string{"p0", "p1", "r0c0q0", "r0c1q0", "r1c0q0", "r1c1q0"}, order)
}

func TestWalk_NestedTables(t *testing.T) {
	d := NewDocument()
	inner := &Table{Rows: []*Row{{Cells: []*Cell{{Paragraphs: []*Paragraph{d.NewParagraph("inner")}}}}}}
	outer := &Table{Rows: []*Row{{Cells: []*Cell{{
		Paragraphs: []*Paragraph{d.NewParagraph("outer")},
		Tables:     []*Table{inner},
	}}}}}
	d.Tables = append(d.Tables, outer)

	var order []string
	n := Walk(d, func(s string) string {
		order = append(order, s)
		return strings.ToUpper(s)
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"outer", "inner"}, order)
	assert.Equal(t, "INNER", inner.Rows[0].Cells[0].Paragraphs[0].Text)
}

func TestWalk_KeepsShapeAndIdentity(t *testing.T) {
	d := buildTree(2, 2, 2, 2)
	before := append([]*Paragraph(nil), d.AllParagraphs()...)
	cell := d.Tables[0].Rows[1].Cells[1]

	Walk(d, func(s string) string { return s + "!" })

	require.Len(t, d.AllParagraphs(), len(before))
	for i, p := range d.AllParagraphs() {
		assert.Same(t, before[i], p)
		assert.True(t, p.Changed())
	}
	assert.Same(t, cell, d.Tables[0].Rows[1].Cells[1])
}

func TestSave_Detached(t *testing.T) {
	d := buildTree(1, 0, 0, 0)
	_, err := d.Bytes()
	assert.ErrorIs(t, err, ErrDetached)
}

// newTemplate builds a DOCX with a leading paragraph split over two runs (the
// first one bold) and a 2x2 table.
func newTemplate(t *testing.T) []byte {
	t.Helper()

	doc := document.New()

	para := doc.AddParagraph()
	first := para.AddRun()
	first.Properties().SetBold(true)
	first.AddText("Name: <f")
	para.AddRun().AddText("1>, Code: <f3>")

	doc.AddParagraph().AddRun().AddText("No tokens here")

	tbl := doc.AddTable()
	for r := 0; r < 2; r++ {
		row := tbl.AddRow()
		for c := 0; c < 2; c++ {
			row.AddCell().AddParagraph().AddRun().AddText(fmt.Sprintf("cell %d/%d <f%d>", r, c, r*2+c+1))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	return buf.Bytes()
}

func paragraphTexts(d *Document) []string {
	var out []string
	Walk(d, func(s string) string {
		out = append(out, s)
		return s
	})
	return out
}

func findParagraph(t *testing.T, d *Document, text string) *Paragraph {
	t.Helper()
	for _, p := range d.AllParagraphs() {
		if p.Text == text {
			return p
		}
	}
	t.Fatalf("paragraph %q not found", text)
	return nil
}

// rewrite parses b, passes every paragraph through fn and serializes the
// result.
func rewrite(t *testing.T, b []byte, fn func(string) string) ([]byte, int) {
	t.Helper()
	d, err := ParseBytes(b)
	require.NoError(t, err)
	n := Walk(d, fn)
	out, err := d.Bytes()
	require.NoError(t, err)
	return out, n
}

func TestParse(t *testing.T) {
	d, err := ParseBytes(newTemplate(t))
	require.NoError(t, err)

	texts := paragraphTexts(d)
	assert.Contains(t, texts, "Name: <f1>, Code: <f3>")
	assert.Contains(t, texts, "No tokens here")
	assert.Contains(t, texts, "cell 1/1 <f4>")

	require.Len(t, d.Tables, 1)
	require.Len(t, d.Tables[0].Rows, 2)
	require.Len(t, d.Tables[0].Rows[0].Cells, 2)
	assert.Equal(t, "cell 0/1 <f2>", d.Tables[0].Rows[0].Cells[1].Paragraphs[0].Text)

	// Top-level paragraphs are listed before the table in block order.
	require.NotEmpty(t, d.Blocks)
	assert.NotNil(t, d.Blocks[0].Paragraph)
}

func TestParse_Malformed(t *testing.T) {
	_, err := ParseBytes([]byte("definitely not a zip"))
	assert.Error(t, err)
}

func TestRewrite_RoundTrip(t *testing.T) {
	repl := strings.NewReplacer("<f1>", "Alpha", "<f3>", "Gamma", "<f4>", "Delta")
	out, n := rewrite(t, newTemplate(t), repl.Replace)
	assert.Positive(t, n)

	d, err := ParseBytes(out)
	require.NoError(t, err)
	texts := paragraphTexts(d)
	assert.Contains(t, texts, "Name: Alpha, Code: Gamma")
	assert.Contains(t, texts, "No tokens here")
	assert.Contains(t, texts, "cell 0/1 <f2>")
	assert.Contains(t, texts, "cell 1/1 Delta")

	// The merged text lands in the first run, which keeps its formatting.
	raw, err := document.Read(bytes.NewReader(out), int64(len(out)))
	require.NoError(t, err)
	var found bool
	for _, p := range raw.Paragraphs() {
		runs := p.Runs()
		if len(runs) == 0 || runs[0].Text() != "Name: Alpha, Code: Gamma" {
			continue
		}
		found = true
		assert.True(t, runs[0].Properties().IsBold())
		for _, r := range runs[1:] {
			assert.Empty(t, r.Text())
		}
	}
	assert.True(t, found, "rewritten paragraph not found")
}

func TestSync_OnlyChanged(t *testing.T) {
	d, err := ParseBytes(newTemplate(t))
	require.NoError(t, err)

	assert.Equal(t, 0, d.Sync())

	p := findParagraph(t, d, "No tokens here")
	p.Text = "replaced"
	assert.Equal(t, 1, d.Sync())
	assert.False(t, p.Changed())
	assert.Equal(t, "replaced", paragraphText(p.x))
}

func TestSetParagraphText_PreservesSpaces(t *testing.T) {
	d, err := ParseBytes(newTemplate(t))
	require.NoError(t, err)

	p := findParagraph(t, d, "Name: <f1>, Code: <f3>")
	setParagraphText(p.x, "  padded  ")

	rs := runs(p.x)
	require.Len(t, rs, 2)
	require.Len(t, rs[0].EG_RunInnerContent, 1)
	text := rs[0].EG_RunInnerContent[0].T
	require.NotNil(t, text)
	assert.Equal(t, "  padded  ", text.Content)
	require.NotNil(t, text.SpaceAttr)
	assert.False(t, hasText(rs[1]))
	assert.Equal(t, "  padded  ", paragraphText(p.x))
}

// newFormTemplate builds a paragraph "Name:<tab><f1><br>line two<page break>"
// in a single run.
func newFormTemplate(t *testing.T) []byte {
	t.Helper()

	doc := document.New()
	run := doc.AddParagraph().AddRun()
	run.AddText("Name:")
	run.AddTab()
	run.AddText("<f1>")
	run.AddBreak()
	run.AddText("line two")
	run.AddPageBreak()

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))
	return buf.Bytes()
}

func TestParagraphText_TabsAndBreaks(t *testing.T) {
	d, err := ParseBytes(newFormTemplate(t))
	require.NoError(t, err)
	findParagraph(t, d, "Name:\t<f1>\nline two")
}

func TestRewrite_TabsAndBreaks(t *testing.T) {
	out, _ := rewrite(t, newFormTemplate(t), func(s string) string {
		return strings.ReplaceAll(s, "<f1>", "Alpha")
	})

	d, err := ParseBytes(out)
	require.NoError(t, err)
	p := findParagraph(t, d, "Name:\tAlpha\nline two")

	rs := runs(p.x)
	require.Len(t, rs, 1)
	var kinds []string
	for _, ic := range rs[0].EG_RunInnerContent {
		switch {
		case ic.T != nil:
			kinds = append(kinds, "t:"+ic.T.Content)
		case ic.Tab != nil:
			kinds = append(kinds, "tab")
		case ic.Br != nil && ic.Br.TypeAttr == wml.ST_BrTypePage:
			kinds = append(kinds, "page")
		case ic.Br != nil:
			kinds = append(kinds, "br")
		}
	}
	assert.Equal(t, []string{"t:Name:", "tab", "t:Alpha", "br", "t:line two", "page"}, kinds)
}

func TestTextContent(t *testing.T) {
	tests := map[string]int{
		"":        1,
		"plain":   1,
		"a\tb":    3,
		"\tlead":  2,
		"trail\n": 2,
		"a\n\nb":  4,
	}
	for in, want := range tests {
		ics := textContent(in)
		assert.Len(t, ics, want, "%q", in)
		var b strings.Builder
		for _, ic := range ics {
			s, ok := innerText(ic)
			require.True(t, ok)
			b.WriteString(s)
		}
		assert.Equal(t, in, b.String())
	}
}

func TestWalk_HyperlinkRuns(t *testing.T) {
	doc := document.New()
	para := doc.AddParagraph()
	para.AddRun().AddText("See ")
	para.AddHyperLink().AddRun().AddText("<f1>")

	var buf bytes.Buffer
	require.NoError(t, doc.Save(&buf))

	out, _ := rewrite(t, buf.Bytes(), func(s string) string {
		return strings.ReplaceAll(s, "<f1>", "the order")
	})
	d, err := ParseBytes(out)
	require.NoError(t, err)
	assert.Contains(t, paragraphTexts(d), "See the order")
}

func TestRenderHTML(t *testing.T) {
	d := buildTree(1, 1, 1, 1)
	d.Paragraphs[0].Text = "a < b"

	html := RenderHTML(d)
	assert.Contains(t, html, "<p>a &lt; b</p>")
	assert.Contains(t, html, "<table")
	assert.Contains(t, html, "r0c0q0")

	DebugHTML = true
	defer func() { DebugHTML = false }()
	assert.Contains(t, RenderHTML(d), `data-changed="true"`)
}

func TestRenderHTML_Parsed(t *testing.T) {
	d, err := ParseBytes(newTemplate(t))
	require.NoError(t, err)
	html := RenderHTML(d)
	assert.Contains(t, html, "Name: &lt;f1&gt;, Code: &lt;f3&gt;")
	assert.Contains(t, html, "cell 1/0 &lt;f3&gt;")
}
