package schema

// ContentDeckTable represents the 'content.deck' table
type ContentDeckTable struct {
	Table     string
	Slug      string
	Title     string
	Cover     string
	Sound     string
	Spreads   string
	UpdatedAt string
}

// ContentDeck is the schema definition for content.deck
var ContentDeck = ContentDeckTable{
	Table:     "content.deck",
	Slug:      "slug",
	Title:     "title",
	Cover:     "cover",
	Sound:     "sound",
	Spreads:   "spreads",
	UpdatedAt: "updatedat",
}

func (t ContentDeckTable) Columns() []string {
	return []string{t.Slug, t.Title, t.Cover, t.Sound, t.Spreads, t.UpdatedAt}
}
