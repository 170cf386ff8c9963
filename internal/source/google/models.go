package google

// APIResponse represents the Custom Search JSON API response.
type APIResponse struct {
	Items []Item `json:"items"`
}

type Item struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	DisplayLink string `json:"displayLink"`
	Image       *Image `json:"image"`
}

type Image struct {
	ContextLink   string `json:"contextLink"`
	ThumbnailLink string `json:"thumbnailLink"`
}
