package domain

// Source is a provider/author registry row. Trace authors, the two POI
// sources and the scrape source all get a row here.
type Source struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

const (
	SourceOSM        = "osm"
	SourceWikidata   = "wikidata"
	SourceP4N        = "Park4Night"
	SourceUnknownAut = "unknown"
)
