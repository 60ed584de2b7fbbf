package markup

import "testing"

const fixture = `<html><body>
<section class="lineup">
  <div class="card featured" data-qa="tesla-model-3"><a data-card-link="" href="/m3"><span>Model 3</span></a></div>
  <div class="card" data-qa="tesla-model-y"><a href="/my">  Model Y  </a></div>
  <div class="other" data-qa="kia-ev6">EV6</div>
</section>
</body></html>`

func mustParse(t *testing.T) *Node {
	t.Helper()
	doc, err := Parse(fixture)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestFindAllByClass(t *testing.T) {
	doc := mustParse(t)
	if got := len(doc.FindAll("div", "card")); got != 2 {
		t.Errorf("FindAll(div, card): got %d, want 2", got)
	}
	if got := len(doc.FindAll("div", "")); got != 3 {
		t.Errorf("FindAll(div, \"\"): got %d, want 3", got)
	}
}

func TestFindByAttrPrefix(t *testing.T) {
	doc := mustParse(t)
	n := doc.FindByAttr("div", "data-qa", HasPrefix("tesla-"))
	if !n.Exists() {
		t.Fatal("expected a tesla- card")
	}
	if v, _ := n.Attr("data-qa"); v != "tesla-model-3" {
		t.Errorf("first match: got %q, want tesla-model-3", v)
	}
	if got := len(doc.FindAllByAttr("div", "data-qa", HasPrefix("tesla-"))); got != 2 {
		t.Errorf("FindAllByAttr: got %d, want 2", got)
	}
}

func TestFindByAttrPresence(t *testing.T) {
	doc := mustParse(t)
	links := doc.FindAllByAttr("a", "data-card-link", Present())
	if len(links) != 1 {
		t.Fatalf("links with data-card-link: got %d, want 1", len(links))
	}
	if got := links[0].Text(); got != "Model 3" {
		t.Errorf("Text: got %q, want %q", got, "Model 3")
	}
	if doc.FindByAttr("a", "data-card-link", Equals("x")).Exists() {
		t.Error("Equals(x) should not match an empty attribute")
	}
}

func TestMissingNodesAreEmpty(t *testing.T) {
	doc := mustParse(t)
	missing := doc.Find("table", "prices")
	if missing.Exists() {
		t.Fatal("table.prices should not exist")
	}
	if got := missing.Find("td", "").Text(); got != "" {
		t.Errorf("Text of nested miss: got %q, want empty", got)
	}
	if got := missing.FindAll("td", ""); got != nil {
		t.Errorf("FindAll on miss: got %v, want nil", got)
	}
	if _, ok := missing.Attr("id"); ok {
		t.Error("Attr on miss should report false")
	}
}

func TestTextTrims(t *testing.T) {
	doc := mustParse(t)
	n := doc.FindByAttr("div", "data-qa", Equals("tesla-model-y"))
	if got := n.Text(); got != "Model Y" {
		t.Errorf("Text: got %q, want %q", got, "Model Y")
	}
}
