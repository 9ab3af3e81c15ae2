package api

import (
	"context"
	"errors"
	"io"
)

type CompletionStream interface {
	Recv() (string, error)
	Close() error
}

type completionStreamPayload struct {
	content string
	err     error
}

// StreamForEach receives from a completion stream, calling fn with each
// chunk as it arrives and returning the streamed chunks as a whole once
// the stream ends. A nil fn only accumulates. The underlying stream is
// always closed. Cancelling the context stops the read and returns the
// partial content together with ctx.Err().
func StreamForEach(ctx context.Context, stream CompletionStream, fn func(chunk string) error) (string, error) {
	defer stream.Close()
	dataChan := make(chan completionStreamPayload)

	go func() {
		defer close(dataChan)

		for {
			chunk, err := stream.Recv()

			if errors.Is(err, io.EOF) {
				return
			}

			select {
			case dataChan <- completionStreamPayload{content: chunk, err: err}:
				if err != nil {
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	var acc string

	for {
		select {
		case <-ctx.Done():
			return acc, ctx.Err()
		case payload, ok := <-dataChan:
			if !ok {
				// data stream closed
				return acc, nil
			}

			if payload.err != nil {
				return acc, payload.err
			}

			acc += payload.content

			if fn != nil {
				if err := fn(payload.content); err != nil {
					return acc, err
				}
			}
		}
	}
}
