package api

type DocumentPage struct {
	Index int
	Text  string
}

type DocumentContent struct {
	Title string
	Pages []DocumentPage
}

func (dc DocumentContent) Text() string {
	text := ""
	for _, page := range dc.Pages {
		text += page.Text
	}
	return text
}

// Chunk is a bounded piece of a source document, the unit of retrieval.
// Index is the chunk's position in the order the splitter produced them.
type Chunk struct {
	ID    string
	Text  string
	Index int
}

type ScoredChunk struct {
	Chunk Chunk
	Score float64
}

type ScoredDocument struct {
	// Required
	Content string
	Score   float64

	// Optional
	Title string
	Url   string
}
