package server

import (
	"github.com/ironsheep/keypoint-tools-mcp/internal/detection"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema shared by every tool's "path" argument.
func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

// pyramidProperties describes the arguments that shape the Gaussian pyramid.
func pyramidProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty(),
		"sigma0": map[string]interface{}{
			"type":        "number",
			"description": "Standard deviation of pyramid level 0. Default 1.0",
			"default":     detection.DefaultSigma0,
		},
		"k": map[string]interface{}{
			"type":        "number",
			"description": "Scale factor between consecutive levels; level i uses sigma0*k^i. Default sqrt(2)",
			"default":     detection.DefaultK,
		},
		"levels": map[string]interface{}{
			"type":        "array",
			"items":       map[string]interface{}{"type": "integer"},
			"description": "Strictly ascending level indices, at least 4. Default [-1,0,1,2,3,4]",
			"default":     detection.DefaultLevels(),
		},
	}
}

// detectProperties extends pyramidProperties with the extrema thresholds.
func detectProperties() map[string]interface{} {
	props := pyramidProperties()
	props["th_contrast"] = map[string]interface{}{
		"type":        "number",
		"description": "Minimum |DoG| response of a keypoint. Default 0.03",
		"default":     detection.DefaultContrastThreshold,
	}
	props["th_r"] = map[string]interface{}{
		"type":        "number",
		"description": "Maximum |principal curvature ratio|, applied only when curvature_filter is true. Default 12",
		"default":     detection.DefaultCurvatureThreshold,
	}
	props["curvature_filter"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Reject edge-like keypoints whose curvature ratio exceeds th_r. Default false",
		"default":     false,
	}
	return props
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	overlayProps := detectProperties()
	overlayProps["scale"] = map[string]interface{}{
		"type":        "number",
		"description": "Output magnification of the overlay. Default 2.0",
		"default":     2.0,
	}
	overlayProps["marker_color"] = map[string]interface{}{
		"type":        "string",
		"description": "Optional marker color (#RRGGBB or #RRGGBBAA). By default each DoG level gets its own hue",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Keypoint Detection
		{
			Name:        "image_detect_keypoints",
			Description: "Detect scale-space keypoints with a Difference-of-Gaussians pyramid. Returns (x, y, level) triples in pixel coordinates, x being the column.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": detectProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_keypoint_overlay",
			Description: "Detect keypoints and return the upscaled image with a dot drawn at each one, as base64-encoded PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": overlayProps,
				"required":   []string{"path"},
			},
		},

		// Pyramid Inspection
		{
			Name:        "image_gaussian_pyramid",
			Description: "Render every Gaussian pyramid level side by side as one normalized grayscale PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pyramidProperties(),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_dog_pyramid",
			Description: "Render every Difference-of-Gaussians level side by side as one normalized grayscale PNG.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": pyramidProperties(),
				"required":   []string{"path"},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
