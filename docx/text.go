package docx

import (
	"strings"

	"github.com/unidoc/unioffice"
	"github.com/unidoc/unioffice/schema/soo/wml"
)

// runs returns the runs of p in document order, including runs inside
// hyperlinks, inline content controls and smart tags. Tracked insertions
// and simple fields are not descended into.
func runs(p *wml.CT_P) []*wml.CT_R {
	return appendPContentRuns(nil, p.EG_PContent)
}

func appendPContentRuns(out []*wml.CT_R, pcs []*wml.EG_PContent) []*wml.CT_R {
	for _, pc := range pcs {
		out = appendHyperlinkRuns(out, pc.Hyperlink)
		out = appendContentRuns(out, pc.EG_ContentRunContent)
	}
	return out
}

func appendHyperlinkRuns(out []*wml.CT_R, h *wml.CT_Hyperlink) []*wml.CT_R {
	for ; h != nil; h = h.Hyperlink {
		out = appendContentRuns(out, h.EG_ContentRunContent)
	}
	return out
}

func appendContentRuns(out []*wml.CT_R, rcs []*wml.EG_ContentRunContent) []*wml.CT_R {
	for _, rc := range rcs {
		if rc.R != nil {
			out = append(out, rc.R)
		}
		if rc.Sdt != nil && rc.Sdt.SdtContent != nil {
			out = appendHyperlinkRuns(out, rc.Sdt.SdtContent.Hyperlink)
			out = appendContentRuns(out, rc.Sdt.SdtContent.EG_ContentRunContent)
		}
		if rc.SmartTag != nil {
			out = appendPContentRuns(out, rc.SmartTag.EG_PContent)
		}
	}
	return out
}

// innerText returns what ic contributes to the paragraph text: <w:t> as is,
// a tab as "\t", a line break or carriage return as "\n". Page and column
// breaks, drawings, field characters and the rest are not text.
func innerText(ic *wml.EG_RunInnerContent) (string, bool) {
	switch {
	case ic.T != nil:
		return ic.T.Content, true
	case ic.Tab != nil:
		return "\t", true
	case ic.Cr != nil:
		return "\n", true
	case ic.Br != nil && (ic.Br.TypeAttr == wml.ST_BrTypeUnset || ic.Br.TypeAttr == wml.ST_BrTypeTextWrapping):
		return "\n", true
	}
	return "", false
}

func hasText(r *wml.CT_R) bool {
	for _, ic := range r.EG_RunInnerContent {
		if _, ok := innerText(ic); ok {
			return true
		}
	}
	return false
}

// paragraphText concatenates the run text of p.
func paragraphText(p *wml.CT_P) string {
	var b strings.Builder
	for _, r := range runs(p) {
		for _, ic := range r.EG_RunInnerContent {
			if s, ok := innerText(ic); ok {
				b.WriteString(s)
			}
		}
	}
	return b.String()
}

// setParagraphText writes s into the first run of p that carries text, so
// s takes that run's formatting, and strips the text of every later run.
// Tabs and newlines in s become <w:tab/> and <w:br/>. Content that is not
// text (drawings, page breaks, field characters) stays where it is.
func setParagraphText(p *wml.CT_P, s string) {
	rs := runs(p)
	target := -1
	for i, r := range rs {
		if hasText(r) {
			target = i
			break
		}
	}
	if target < 0 {
		if s == "" {
			return
		}
		p.EG_PContent = append(p.EG_PContent, newTextContent(s))
		return
	}

	rs[target].EG_RunInnerContent = replaceText(rs[target].EG_RunInnerContent, textContent(s))
	for _, r := range rs[target+1:] {
		r.EG_RunInnerContent = replaceText(r.EG_RunInnerContent, nil)
	}
}

// replaceText drops the text items of ics and inserts repl where the first
// one was.
func replaceText(ics []*wml.EG_RunInnerContent, repl []*wml.EG_RunInnerContent) []*wml.EG_RunInnerContent {
	out := make([]*wml.EG_RunInnerContent, 0, len(ics)+len(repl))
	inserted := false
	for _, ic := range ics {
		if _, ok := innerText(ic); !ok {
			out = append(out, ic)
			continue
		}
		if !inserted {
			out = append(out, repl...)
			inserted = true
		}
	}
	return out
}

// textContent splits s into <w:t>, <w:tab/> and <w:br/> items. An empty s
// yields one empty <w:t> so the run keeps a text anchor.
func textContent(s string) []*wml.EG_RunInnerContent {
	var out []*wml.EG_RunInnerContent
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] != '\t' && s[i] != '\n' {
			continue
		}
		if start < i {
			out = append(out, newTextItem(s[start:i]))
		}
		ic := wml.NewEG_RunInnerContent()
		if s[i] == '\t' {
			ic.Tab = wml.NewCT_Empty()
		} else {
			ic.Br = wml.NewCT_Br()
		}
		out = append(out, ic)
		start = i + 1
	}
	if start < len(s) || len(out) == 0 {
		out = append(out, newTextItem(s[start:]))
	}
	return out
}

func newTextItem(s string) *wml.EG_RunInnerContent {
	t := wml.NewCT_Text()
	t.Content = s
	if unioffice.NeedsSpacePreserve(s) {
		preserve := "preserve"
		t.SpaceAttr = &preserve
	}
	ic := wml.NewEG_RunInnerContent()
	ic.T = t
	return ic
}

func newTextContent(s string) *wml.EG_PContent {
	r := wml.NewCT_R()
	r.EG_RunInnerContent = textContent(s)

	rc := wml.NewEG_ContentRunContent()
	rc.R = r

	pc := wml.NewEG_PContent()
	pc.EG_ContentRunContent = append(pc.EG_ContentRunContent, rc)
	return pc
}
