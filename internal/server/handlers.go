package server

import (
	"encoding/json"
	"fmt"

	"github.com/ironsheep/keypoint-tools-mcp/internal/detection"
	"github.com/ironsheep/keypoint-tools-mcp/internal/imaging"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_detect_keypoints").
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
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.logger.Printf("tool %s failed: %v", params.Name, err)
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

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for omitted parameters
//  3. Loads the image matrix from cache
//  4. Runs the detector or a single pipeline stage
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Keypoint Detection
	case "image_detect_keypoints":
		return s.handleDetectKeypoints(args)
	case "image_keypoint_overlay":
		return s.handleKeypointOverlay(args)

	// Pyramid Inspection
	case "image_gaussian_pyramid":
		return s.handleGaussianPyramid(args)
	case "image_dog_pyramid":
		return s.handleDoGPyramid(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
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
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Keypoint Detection Handlers ===

// detectArgs carries the detector parameters shared by the detection tools.
// Omitted numeric fields fall back to the detection package defaults; the
// thresholds are pointers because 0 is a meaningful value for them.
type detectArgs struct {
	Path            string   `json:"path"`
	Sigma0          float64  `json:"sigma0"`
	K               float64  `json:"k"`
	Levels          []int    `json:"levels"`
	ThContrast      *float64 `json:"th_contrast"`
	ThR             *float64 `json:"th_r"`
	CurvatureFilter bool     `json:"curvature_filter"`
}

func (a *detectArgs) config() detection.Config {
	cfg := detection.DefaultConfig()
	if a.Sigma0 != 0 {
		cfg.Sigma0 = a.Sigma0
	}
	if a.K != 0 {
		cfg.K = a.K
	}
	if a.Levels != nil {
		cfg.Levels = a.Levels
	}
	if a.ThContrast != nil {
		cfg.ContrastThreshold = *a.ThContrast
	}
	if a.ThR != nil {
		cfg.CurvatureThreshold = *a.ThR
	}
	cfg.CurvatureFilter = a.CurvatureFilter
	return cfg
}

// detect validates the arguments, loads the image matrix and runs the full
// pipeline.
func (s *Server) detect(a *detectArgs) (*detection.Result, error) {
	d, err := detection.NewDetector(a.config())
	if err != nil {
		return nil, err
	}
	d.SetLogger(s.logger)

	m, err := s.cache.Matrix(a.Path)
	if err != nil {
		return nil, err
	}
	res, err := d.Detect(m)
	if err != nil {
		return nil, fmt.Errorf("failed to detect keypoints: %w", err)
	}
	return res, nil
}

// KeypointsResult is the response of image_detect_keypoints.
type KeypointsResult struct {
	Width          int                  `json:"width"`
	Height         int                  `json:"height"`
	Count          int                  `json:"count"`
	Keypoints      []detection.Keypoint `json:"keypoints"`
	CountsPerLevel []int                `json:"counts_per_level"`
	DoGLevels      []int                `json:"dog_levels"`
	Config         detection.Config     `json:"config"`
}

func (s *Server) handleDetectKeypoints(args json.RawMessage) (interface{}, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	res, err := s.detect(&a)
	if err != nil {
		return nil, err
	}

	w, h := res.GaussianPyramid.Size()
	return &KeypointsResult{
		Width:          w,
		Height:         h,
		Count:          len(res.Keypoints),
		Keypoints:      res.Keypoints,
		CountsPerLevel: res.CountsPerLevel(),
		DoGLevels:      res.DoGLevels,
		Config:         a.config(),
	}, nil
}

type keypointOverlayArgs struct {
	detectArgs
	Scale       float64 `json:"scale"`
	MarkerColor string  `json:"marker_color"`
}

func (s *Server) handleKeypointOverlay(args json.RawMessage) (interface{}, error) {
	var a keypointOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 2.0
	}

	res, err := s.detect(&a.detectArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.KeypointOverlay(img, res.Keypoints, len(res.DoGPyramid), a.Scale, a.MarkerColor)
}

// === Pyramid Inspection Handlers ===

// gaussianPyramid builds only the Gaussian pyramid for the given arguments.
func (s *Server) gaussianPyramid(args json.RawMessage) (detection.Pyramid, []int, error) {
	var a detectArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, nil, err
	}
	cfg := a.config()
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	m, err := s.cache.Matrix(a.Path)
	if err != nil {
		return nil, nil, err
	}
	gp, err := detection.GaussianPyramid(m.Normalize(), cfg.Sigma0, cfg.K, cfg.Levels)
	if err != nil {
		return nil, nil, err
	}
	return gp, cfg.Levels, nil
}

func (s *Server) handleGaussianPyramid(args json.RawMessage) (interface{}, error) {
	gp, _, err := s.gaussianPyramid(args)
	if err != nil {
		return nil, err
	}
	return imaging.RenderPyramid(gp)
}

func (s *Server) handleDoGPyramid(args json.RawMessage) (interface{}, error) {
	gp, levels, err := s.gaussianPyramid(args)
	if err != nil {
		return nil, err
	}
	dog, _ := detection.DoGPyramid(gp, levels)
	return imaging.RenderPyramid(dog)
}
