package wikimedia

// APIResponse represents the Commons query API response for a search generator.
type APIResponse struct {
	Query *Query `json:"query"`
}

type Query struct {
	Pages map[string]Page `json:"pages"`
}

type Page struct {
	PageID    int64       `json:"pageid"`
	Title     string      `json:"title"`
	Index     int         `json:"index"`
	ImageInfo []ImageInfo `json:"imageinfo"`
}

type ImageInfo struct {
	URL            string      `json:"url"`
	ThumbURL       string      `json:"thumburl"`
	DescriptionURL string      `json:"descriptionurl"`
	ExtMetadata    ExtMetadata `json:"extmetadata"`
}

type ExtMetadata struct {
	DateTimeOriginal *MetadataValue `json:"DateTimeOriginal"`
	DateTime         *MetadataValue `json:"DateTime"`
	ObjectName       *MetadataValue `json:"ObjectName"`
}

// MetadataValue holds a single extmetadata entry. Values may contain HTML markup.
type MetadataValue struct {
	Value string `json:"value"`
}
