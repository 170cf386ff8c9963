package bing

// Metadata is the JSON blob stored in the "m" attribute of result anchors.
type Metadata struct {
	MediaURL string `json:"murl"`
	ThumbURL string `json:"turl"`
	PageURL  string `json:"purl"`
	Title    string `json:"t"`
}
