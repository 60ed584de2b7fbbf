package cars

import (
	"strings"
	"unicode"

	"car-price-scraper/models"
	"car-price-scraper/scraper/markup"
	"car-price-scraper/utils"
)

// Markup signatures of the new-car lineup page.
const (
	cardTag   = "spark-card"
	cardClass = "new-car-lineup-model-card"

	identityTag  = "div"
	identityAttr = "data-qa"

	linkTag  = "a"
	linkAttr = "data-card-link"

	nameTag   = "div"
	nameClass = "new-car-model-card-name"

	priceTag   = "div"
	priceClass = "new-car-model-card-price"
)

// anchorStep locates one required node beneath the node found by the
// previous step. A card is kept only if every step finds its node.
type anchorStep struct {
	anchor models.Anchor
	find   func(scope *markup.Node, slug string) *markup.Node
}

var requiredAnchors = []anchorStep{
	{models.AnchorModelIdentity, func(card *markup.Node, slug string) *markup.Node {
		return card.FindByAttr(identityTag, identityAttr, markup.HasPrefix(slug+"-"))
	}},
	{models.AnchorCardLink, func(identity *markup.Node, _ string) *markup.Node {
		return identity.FindByAttr(linkTag, linkAttr, markup.Equals(""))
	}},
	{models.AnchorNameLabel, func(link *markup.Node, _ string) *markup.Node {
		return link.Find(nameTag, nameClass)
	}},
}

// Extractor pulls raw year/model/price triples out of a brand's lineup page.
type Extractor struct {
	logger *utils.Logger
}

// NewExtractor creates an Extractor with the given logger.
func NewExtractor(logger *utils.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Extract returns one RawListing per complete model card, in page order.
// Cards missing a required anchor are skipped and reported as misses.
// A missing price label yields models.PriceNotFound instead of a skip.
func (e *Extractor) Extract(brand, html string) (*models.ExtractResult, error) {
	doc, err := markup.Parse(html)
	if err != nil {
		return nil, err
	}

	slug := models.Slug(brand)
	result := &models.ExtractResult{}

	for i, card := range doc.FindAll(cardTag, cardClass) {
		label, miss := locateNameLabel(card, slug)
		if miss != "" {
			m := models.StructuralMiss{Brand: brand, Card: i + 1, Anchor: miss}
			e.logger.Warn("[extractor] Skipping card: %s", m)
			result.Misses = append(result.Misses, m)
			continue
		}

		yearText, model := splitNameLabel(label.Text())

		priceText := models.PriceNotFound
		if price := card.Find(priceTag, priceClass); price.Exists() {
			priceText = price.Text()
		}

		result.Listings = append(result.Listings, models.RawListing{
			YearText:  yearText,
			Model:     model,
			PriceText: priceText,
		})
	}

	e.logger.Debug("[extractor] %s: %d cards kept, %d skipped",
		brand, len(result.Listings), len(result.Misses))
	return result, nil
}

// locateNameLabel walks the required anchors. It returns the anchor that was
// missing, if any. A name label with no text counts as missing so a kept
// listing always has a model name.
func locateNameLabel(card *markup.Node, slug string) (*markup.Node, models.Anchor) {
	node := card
	for _, step := range requiredAnchors {
		node = step.find(node, slug)
		if !node.Exists() {
			return nil, step.anchor
		}
	}
	if node.Text() == "" {
		return nil, models.AnchorNameLabel
	}
	return node, ""
}

// splitNameLabel splits "2025 Model Y" at the first whitespace into year
// text and model name. Without whitespace the whole label is both. Runs of
// whitespace inside the model name collapse to one space, so markup
// indentation never leaks into stored names.
func splitNameLabel(label string) (yearText, model string) {
	label = strings.TrimSpace(label)
	i := strings.IndexFunc(label, unicode.IsSpace)
	if i < 0 {
		return label, label
	}
	return label[:i], strings.Join(strings.Fields(label[i:]), " ")
}
