package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/cvbridge/internal/bridge"
)

// Defaults applied when optional arguments are omitted.
const (
	defaultGaussian = 5
	defaultCannyMin = 50.0
	defaultCannyMax = 150.0
)

// ErrUnknownTool is returned for tool names the server does not expose.
var ErrUnknownTool = errors.New("unknown tool")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_to_mat", "crop").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// A rejected operation returns a JSON-RPC error with code -32000 whose data
// is the rejection's {code, message}. Malformed arguments and unknown tools
// also use -32000 with the error text as data.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.Call(ctx, params.Name, params.Arguments)
	if err != nil {
		var rejection *bridge.Error
		if errors.As(err, &rejection) {
			return s.errorResponse(req.ID, -32000, rejection.Message, rejection)
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// Call runs the named tool with JSON arguments and waits for its outcome.
//
// A rejected operation is returned as a *bridge.Error.
func (s *Server) Call(ctx context.Context, name string, args json.RawMessage) (bridge.Result, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	d := bridge.NewDeferred()
	if err := s.dispatch(ctx, name, args, d); err != nil {
		return nil, err
	}
	return d.Wait(ctx)
}

// dispatch decodes args for the named tool and starts the bridge operation.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Calls the bridge operation, which settles p
func (s *Server) dispatch(ctx context.Context, name string, args json.RawMessage, p bridge.Promise) error {
	switch name {
	// Matrix handles
	case "image_to_mat":
		return s.handleImageToMat(ctx, args, p)
	case "mat_to_image":
		return s.handleMatToImage(ctx, args, p)
	case "mat_info":
		return s.handleMatInfo(ctx, args, p)
	case "mat_release":
		return s.handleMatRelease(ctx, args, p)

	// Edge detection
	case "edge_overlay":
		return s.handleEdgeOverlay(ctx, args, p)
	case "gaussian_blur":
		return s.handleGaussianBlur(ctx, args, p)
	case "canny":
		return s.handleCanny(ctx, args, p)

	// File operations
	case "crop":
		return s.handleCrop(ctx, args, p)
	case "combine":
		return s.handleCombine(ctx, args, p)

	default:
		return fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message string, data interface{}) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

func decodeArgs(args json.RawMessage, v interface{}) error {
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// thresholds holds optional Canny thresholds; nil means the default.
type thresholds struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

func (t thresholds) values() (float64, float64) {
	min, max := defaultCannyMin, defaultCannyMax
	if t.Min != nil {
		min = *t.Min
	}
	if t.Max != nil {
		max = *t.Max
	}
	return min, max
}

// === Matrix Handle Handlers ===

type imageToMatArgs struct {
	InPath string `json:"inPath"`
}

func (s *Server) handleImageToMat(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a imageToMatArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	s.bridge.ImageToMat(ctx, a.InPath, p)
	return nil
}

type matToImageArgs struct {
	MatIndex int    `json:"matIndex"`
	OutPath  string `json:"outPath"`
}

func (s *Server) handleMatToImage(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a matToImageArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	s.bridge.MatToImage(ctx, a.MatIndex, a.OutPath, p)
	return nil
}

type matIndexArgs struct {
	MatIndex int `json:"matIndex"`
}

func (s *Server) handleMatInfo(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a matIndexArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	s.bridge.MatInfo(ctx, a.MatIndex, p)
	return nil
}

func (s *Server) handleMatRelease(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a matIndexArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	s.bridge.ReleaseMat(ctx, a.MatIndex, p)
	return nil
}

// === Edge Detection Handlers ===

type edgeOverlayArgs struct {
	MatIndex  int    `json:"matIndex"`
	OutPath   string `json:"outPath"`
	CannyPath string `json:"cannyPath"`
	Gaussian  int    `json:"gaussian"`
	thresholds
}

func (s *Server) handleEdgeOverlay(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a edgeOverlayArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	if a.Gaussian == 0 {
		a.Gaussian = defaultGaussian
	}
	min, max := a.values()
	s.bridge.EdgeOverlay(ctx, a.MatIndex, a.OutPath, a.CannyPath, a.Gaussian, min, max, p)
	return nil
}

type gaussianBlurArgs struct {
	MatIndex int    `json:"matIndex"`
	OutPath  string `json:"outPath"`
	Gaussian int    `json:"gaussian"`
}

func (s *Server) handleGaussianBlur(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a gaussianBlurArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	if a.Gaussian == 0 {
		a.Gaussian = defaultGaussian
	}
	s.bridge.GaussianBlur(ctx, a.MatIndex, a.OutPath, a.Gaussian, p)
	return nil
}

type cannyArgs struct {
	OriginalIndex int    `json:"originalIndex"`
	BlurredIndex  int    `json:"blurredIndex"`
	OutPath       string `json:"outPath"`
	CannyPath     string `json:"cannyPath"`
	thresholds
}

func (s *Server) handleCanny(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a cannyArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	min, max := a.values()
	s.bridge.Canny(ctx, a.OriginalIndex, a.BlurredIndex, a.OutPath, a.CannyPath, min, max, p)
	return nil
}

// === File Operation Handlers ===

type cropArgs struct {
	ImagePath string `json:"imagePath"`
	OutPath   string `json:"outPath"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

func (s *Server) handleCrop(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a cropArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	s.bridge.Crop(ctx, a.ImagePath, a.OutPath, a.X, a.Y, a.Width, a.Height, p)
	return nil
}

type combineArgs struct {
	FirstImage  string `json:"firstImage"`
	SecondImage string `json:"secondImage"`
	OutPath     string `json:"outPath"`
}

func (s *Server) handleCombine(ctx context.Context, args json.RawMessage, p bridge.Promise) error {
	var a combineArgs
	if err := decodeArgs(args, &a); err != nil {
		return err
	}
	s.bridge.Combine(ctx, a.FirstImage, a.SecondImage, a.OutPath, p)
	return nil
}
