package cohere

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	co "github.com/cohere-ai/cohere-go/v2"
	coclient "github.com/cohere-ai/cohere-go/v2/client"
	cocore "github.com/cohere-ai/cohere-go/v2/core"
	"golang.org/x/sync/errgroup"

	"askdoc/internal/api"
)

const (
	embedModel  = "embed-multilingual-v3.0"
	chatModel   = "command-r-08-2024"
	rerankModel = "rerank-v3.5"

	// maximum number of texts accepted by a single embed request
	embedMaxTexts = 96

	rerankScoreThreshold = 0.5
)

type CohereProvider struct {
	client *coclient.Client
}

func New() *CohereProvider {
	c := coclient.NewClient(
		coclient.WithToken(os.Getenv("COHERE_API_KEY")),
		coclient.WithHTTPClient(
			&http.Client{
				Timeout: 60 * time.Second,
			},
		),
	)
	return &CohereProvider{
		client: c,
	}
}

func (p CohereProvider) Chat(ctx context.Context, req api.ChatRequest) (api.CompletionStream, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("chat request failed: missing parameter 'query' in request")
	}

	coReq := &co.V2ChatStreamRequest{
		Model: chatModel,
	}

	if req.ModelName != "" {
		coReq.Model = req.ModelName
	}

	if req.SystemPrompt != "" {
		coReq.Messages = append(coReq.Messages, &co.ChatMessageV2{
			Role: "system",
			System: &co.SystemMessage{Content: &co.SystemMessageContent{
				String: req.SystemPrompt,
			}},
		})
	}

	history := parseRequestHistory(req.History)
	if len(history) > 0 {
		coReq.Messages = append(coReq.Messages, history...)
	}

	coReq.Messages = append(coReq.Messages, &co.ChatMessageV2{
		Role: "user",
		User: &co.UserMessage{Content: &co.UserMessageContent{
			String: req.Query,
		}},
	})

	stream, err := p.client.V2.ChatStream(ctx, coReq)
	if err != nil {
		return nil, fmt.Errorf("chat streaming request failed: %w", err)
	}

	return &CohereCompletionStream{stream: stream}, nil
}

func (p CohereProvider) EmbedQuery(ctx context.Context, q string) ([]float32, error) {
	resp, err := p.client.V2.Embed(
		ctx,
		&co.V2EmbedRequest{
			Texts:          []string{q},
			Model:          embedModel,
			InputType:      co.EmbedInputTypeSearchQuery,
			EmbeddingTypes: []co.EmbeddingType{co.EmbeddingTypeFloat},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("embed request failed: %w", err)
	}
	if len(resp.Embeddings.Float) == 0 {
		return nil, fmt.Errorf("embed response contained no vectors")
	}

	return toFloat32(resp.Embeddings.Float[0]), nil
}

// EmbedBatch splits the texts into request-sized batches and embeds them
// concurrently, reassembling the vectors in input order.
func (p CohereProvider) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	batches := make([][]string, 0, (len(texts)/embedMaxTexts)+1)
	for start := 0; start < len(texts); start += embedMaxTexts {
		end := start + embedMaxTexts
		if end > len(texts) {
			end = len(texts)
		}
		batches = append(batches, texts[start:end])
	}

	var mu sync.Mutex
	vectors := make([][]float32, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	for i, batch := range batches {
		offset := i * embedMaxTexts

		g.Go(func() error {
			resp, err := p.client.V2.Embed(gctx, &co.V2EmbedRequest{
				Texts:          batch,
				Model:          embedModel,
				InputType:      co.EmbedInputTypeSearchDocument,
				EmbeddingTypes: []co.EmbeddingType{co.EmbeddingTypeFloat},
			})
			if err != nil {
				return fmt.Errorf("embed request failed: %w", err)
			}

			mu.Lock()
			for j, vec := range resp.Embeddings.Float {
				vectors[offset+j] = toFloat32(vec)
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return vectors, nil
}

func (p CohereProvider) GetDimensions() uint {
	return 1024
}

func (p CohereProvider) Rerank(ctx context.Context, req api.RerankRequest) (*api.RerankResponse, error) {
	if req.Query == "" {
		return nil, fmt.Errorf("rerank request failed: missing parameter 'query' in request")
	}

	if len(req.Documents) == 0 {
		return nil, fmt.Errorf("rerank request failed: missing parameter 'documents' in request")
	}

	returnDocuments := true
	coReq := &co.V2RerankRequest{
		Query:           req.Query,
		Documents:       req.Documents,
		Model:           rerankModel,
		ReturnDocuments: &returnDocuments,
	}

	if req.ModelName != "" {
		coReq.Model = req.ModelName
	}

	if req.Limit != 0 {
		coReq.TopN = &req.Limit
	}

	resp, err := p.client.V2.Rerank(ctx, coReq)
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}

	scoredDocs := make([]*api.ScoredDocument, 0, len(resp.Results))
	for _, result := range resp.Results {
		if result.RelevanceScore >= rerankScoreThreshold {
			scoredDocs = append(scoredDocs, &api.ScoredDocument{
				Content: result.Document.Text,
				Score:   result.RelevanceScore,
			})
		}
	}

	return &api.RerankResponse{
		Query:     req.Query,
		Documents: scoredDocs,
		ModelName: coReq.Model,
	}, nil
}

func toFloat32(vec []float64) []float32 {
	f32 := make([]float32, 0, len(vec))
	for _, f := range vec {
		f32 = append(f32, float32(f))
	}
	return f32
}

func parseRequestHistory(h []*api.ChatMessage) []*co.ChatMessageV2 {
	messages := make([]*co.ChatMessageV2, 0, len(h))
	for _, chatMsg := range h {
		switch chatMsg.Role {
		case api.RoleUser:
			messages = append(messages, &co.ChatMessageV2{
				Role: "user",
				User: &co.UserMessage{Content: &co.UserMessageContent{
					String: chatMsg.Content,
				}},
			})
		case api.RoleAssistant:
			messages = append(messages, &co.ChatMessageV2{
				Role: "assistant",
				Assistant: &co.AssistantMessage{Content: &co.AssistantMessageContent{
					String: chatMsg.Content,
				}},
			})
		}
	}

	return messages
}

type CohereCompletionStream struct {
	stream *cocore.Stream[co.StreamedChatResponseV2]
}

func (s CohereCompletionStream) Recv() (string, error) {
	for {
		resp, err := s.stream.Recv()
		if err != nil {
			return "", err
		}

		if resp.ContentDelta != nil {
			return *resp.ContentDelta.Delta.Message.Content.Text, nil
		}
	}
}

func (s CohereCompletionStream) Close() error {
	return s.stream.Close()
}
