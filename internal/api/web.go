package api

type WebSearchRequest struct {
	// Required
	Query string

	// Optional
	Limit int
}

type WebSearchResponse struct {
	Query   string
	Results []*ScoredDocument
}

type RerankRequest struct {
	// Required params
	Query     string
	Documents []string

	// Optional params
	Limit     int
	ModelName string
}

type RerankResponse struct {
	Query     string
	Documents []*ScoredDocument

	ModelName string
}
