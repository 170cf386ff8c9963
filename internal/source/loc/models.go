package loc

// APIResponse represents the loc.gov JSON search response.
type APIResponse struct {
	Results []Result `json:"results"`
}

type Result struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	URL      string   `json:"url"`
	ImageURL []string `json:"image_url"`
	Date     string   `json:"date"`
}
