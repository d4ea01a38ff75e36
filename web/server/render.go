package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
)

// RenderResult is the final SSE payload of a render
type RenderResult struct {
	Scene     string `json:"scene"`
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Stats represents render statistics
type Stats struct {
	Width            int     `json:"width"`
	Height           int     `json:"height"`
	TotalPixels      int     `json:"totalPixels"`
	RaysTraced       int     `json:"raysTraced"`
	RaysPerPixel     float64 `json:"raysPerPixel"`
	Tiles            int     `json:"tiles"`
	Workers          int     `json:"workers"`
	AverageLuminance float64 `json:"averageLuminance"`
}

type renderOutcome struct {
	image *canvas.Canvas
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams console output, then the image,
// as Server-Sent Events
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		s.sendSSEEvent(w, "error", fmt.Sprintf("Scene error: %v", err))
		return
	}

	config := renderer.MergeConfig(renderer.DefaultConfig(), sceneObj.Render)
	if req.MaxDepth > 0 {
		config.MaxDepth = req.MaxDepth
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	logger := NewWebLogger(renderID, consoleChan)

	// Render in the background; this goroutine is the only writer to w
	startTime := time.Now()
	done := make(chan renderOutcome, 1)
	go func() {
		img, stats, err := renderer.Render(sceneObj.Camera, sceneObj.World, config, logger)
		done <- renderOutcome{image: img, stats: stats, err: err}
	}()

	ctx := r.Context()
	for {
		select {
		case msg := <-consoleChan:
			s.sendConsoleMessage(w, msg)

		case outcome := <-done:
			// Flush console output queued before the render finished
			for len(consoleChan) > 0 {
				s.sendConsoleMessage(w, <-consoleChan)
			}

			if outcome.err != nil {
				s.sendSSEEvent(w, "error", fmt.Sprintf("Render error: %v", outcome.err))
				return
			}

			imageData, err := imageToBase64PNG(outcome.image)
			if err != nil {
				s.sendSSEEvent(w, "error", fmt.Sprintf("failed to encode image: %v", err))
				return
			}

			data, err := json.Marshal(RenderResult{
				Scene:     sceneObj.Name,
				ImageData: imageData,
				Stats:     newStats(outcome.stats, outcome.image),
				ElapsedMs: time.Since(startTime).Milliseconds(),
			})
			if err != nil {
				s.sendSSEEvent(w, "error", err.Error())
				return
			}
			s.sendSSEEvent(w, "image", string(data))
			s.sendSSEEvent(w, "complete", "Rendering completed")
			return

		case <-ctx.Done():
			// Client disconnected; the render finishes into the buffered channel
			return
		}
	}
}

func newStats(rs renderer.RenderStats, img *canvas.Canvas) Stats {
	return Stats{
		Width:            rs.Width,
		Height:           rs.Height,
		TotalPixels:      rs.TotalPixels,
		RaysTraced:       rs.RaysTraced,
		RaysPerPixel:     rs.RaysPerPixel(),
		Tiles:            rs.Tiles,
		Workers:          rs.Workers,
		AverageLuminance: renderer.CalculateAverageLuminance(img),
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

func (s *Server) sendConsoleMessage(w http.ResponseWriter, msg ConsoleMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	s.sendSSEEvent(w, "console", string(data))
}

// sendSSEEvent sends a generic SSE event
func (s *Server) sendSSEEvent(w http.ResponseWriter, event, data string) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts a canvas to base64-encoded PNG
func imageToBase64PNG(img *canvas.Canvas) (string, error) {
	var buf bytes.Buffer
	if err := img.WritePNG(&buf); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
