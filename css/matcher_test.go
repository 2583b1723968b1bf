package css

import (
	"testing"

	"github.com/chrisuehlinger/dragbounds/dom"
)

// buildList creates <html><body><ul id="list" class="menu"><li>*3</ul></body></html>.
func buildList(t *testing.T) (*dom.Document, *dom.Element, []*dom.Element) {
	t.Helper()
	doc := dom.NewDocument()
	html := doc.CreateElement("html")
	body := doc.CreateElement("body")
	ul := doc.CreateElement("ul")
	ul.SetAttribute("id", "list")
	ul.SetAttribute("class", "menu main")
	ul.SetAttribute("lang", "en-US")
	doc.AppendChild(html.AsNode())
	html.AppendChild(body.AsNode())
	body.AppendChild(ul.AsNode())

	var items []*dom.Element
	for i := 0; i < 3; i++ {
		li := doc.CreateElement("li")
		li.SetAttribute("data-index", string(rune('0'+i)))
		ul.AppendChild(li.AsNode())
		ul.AppendChild(doc.CreateTextNode(" "))
		items = append(items, li)
	}
	return doc, ul, items
}

func TestMatches(t *testing.T) {
	_, ul, items := buildList(t)

	tests := []struct {
		el       *dom.Element
		selector string
		want     bool
	}{
		{ul, "ul", true},
		{ul, "UL", true},
		{ul, "#list", true},
		{ul, ".menu.main", true},
		{ul, ".menu.other", false},
		{ul, "[lang|=en]", true},
		{ul, "[class~=main]", true},
		{ul, "[class^=men]", true},
		{ul, "[class$=ain]", true},
		{ul, "[class*='u m']", true},
		{ul, "[class^='']", false},
		{ul, "body > ul", true},
		{ul, "html > ul", false},
		{ul, "html ul", true},
		{ul, ":root ul", true},
		{ul, ":root", false},
		{items[0], "li:first-child", true},
		{items[1], "li:first-child", false},
		{items[2], "li:last-child", true},
		{items[1], "li + li", true},
		{items[0], "li + li", false},
		{items[2], "[data-index='0'] ~ li", true},
		{items[1], "li:not([data-index='1'])", false},
		{items[1], "li:not(.x, #y)", true},
		{items[0], ":empty", true},
		{ul, ":empty", false},
		{items[0], "div, #list li", true},
		{items[0], "*", true},
	}
	for _, tt := range tests {
		got, err := Matches(tt.el, tt.selector)
		if err != nil {
			t.Errorf("Matches(%s, %q) error: %v", tt.el.TagName(), tt.selector, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Matches(%s, %q) = %v, want %v", tt.el.TagName(), tt.selector, got, tt.want)
		}
	}
}

func TestMatches_DescendantBacktracking(t *testing.T) {
	doc := dom.NewDocument()
	outer := doc.CreateElement("div")
	outer.SetAttribute("class", "a")
	mid := doc.CreateElement("div")
	inner := doc.CreateElement("span")
	doc.AppendChild(outer.AsNode())
	outer.AppendChild(mid.AsNode())
	mid.AppendChild(inner.AsNode())

	// The nearest div ancestor is not .a, so the matcher must keep looking.
	if ok, _ := Matches(inner, ".a > div span"); !ok {
		t.Error("Expected '.a > div span' to match via backtracking")
	}
	if ok, _ := Matches(inner, ".a > span"); ok {
		t.Error("'.a > span' should not match a grandchild")
	}
}

func TestQuerySelector(t *testing.T) {
	doc, ul, items := buildList(t)

	got, err := QuerySelector(doc.AsNode(), "li")
	if err != nil {
		t.Fatalf("QuerySelector: %v", err)
	}
	if got != items[0] {
		t.Error("QuerySelector should return the first li in tree order")
	}

	got, err = QuerySelector(doc.AsNode(), ".missing")
	if err != nil || got != nil {
		t.Errorf("Expected (nil, nil) for no match, got (%v, %v)", got, err)
	}

	if _, err := QuerySelector(doc.AsNode(), "li >"); err == nil {
		t.Error("Expected an error for an invalid selector")
	}

	all, err := QuerySelectorAll(ul.AsNode(), "li")
	if err != nil || len(all) != 3 {
		t.Errorf("Expected 3 li elements, got %d (%v)", len(all), err)
	}
}
