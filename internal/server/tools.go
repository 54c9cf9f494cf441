package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

func integerProp(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": description,
	}
}

func numberProp(description string, def float64) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
		"default":     def,
	}
}

func objectSchema(properties map[string]interface{}, required ...string) map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

const (
	matIndexDesc  = "Handle returned by image_to_mat or gaussian_blur"
	matOutDesc    = "Output file path; the .png, .jpg or .jpeg extension selects the format. Empty generates a name when an output directory is configured"
	cannyOutDesc  = "Output path for the inverted Canny edge image (.png, .jpg or .jpeg)"
	gaussianDesc  = "Gaussian kernel size; positive and odd. Default 5"
	minDesc       = "Canny lower hysteresis threshold"
	maxDesc       = "Canny upper hysteresis threshold"
	fileOutDesc   = "Output file path; always written as JPEG quality 100"
	imagePathDesc = "Path of an existing PNG, JPEG or GIF file"
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Matrix handles
		{
			Name:        "image_to_mat",
			Description: "Decode an image file into an in-memory matrix. Returns {cols, rows, matIndex}.",
			InputSchema: objectSchema(map[string]interface{}{
				"inPath": stringProp(imagePathDesc),
			}, "inPath"),
		},
		{
			Name:        "mat_to_image",
			Description: "Write a matrix to a PNG (lossless) or JPEG (quality 80) file. Returns {width, height, uri}.",
			InputSchema: objectSchema(map[string]interface{}{
				"matIndex": integerProp(matIndexDesc),
				"outPath":  stringProp(matOutDesc),
			}, "matIndex", "outPath"),
		},
		{
			Name:        "mat_info",
			Description: "Describe a matrix. Returns {cols, rows, matIndex, channels}.",
			InputSchema: objectSchema(map[string]interface{}{
				"matIndex": integerProp(matIndexDesc),
			}, "matIndex"),
		},
		{
			Name:        "mat_release",
			Description: "Release a matrix. The handle is never reused. Returns {matIndex, released}.",
			InputSchema: objectSchema(map[string]interface{}{
				"matIndex": integerProp(matIndexDesc),
			}, "matIndex"),
		},

		// Edge detection
		{
			Name:        "edge_overlay",
			Description: "Grayscale, Gaussian blur and Canny a copy of a matrix, fill every contour on the copy and write it plus the inverted edge image. Returns {width, height, uri, cannyUri, contours}.",
			InputSchema: objectSchema(map[string]interface{}{
				"matIndex":  integerProp(matIndexDesc),
				"outPath":   stringProp(matOutDesc),
				"cannyPath": stringProp(cannyOutDesc),
				"gaussian":  integerProp(gaussianDesc),
				"min":       numberProp(minDesc, defaultCannyMin),
				"max":       numberProp(maxDesc, defaultCannyMax),
			}, "matIndex", "outPath", "cannyPath"),
		},
		{
			Name:        "gaussian_blur",
			Description: "Grayscale and blur a matrix, register the result as a new matrix and write it. Returns {width, height, uri, matIndex}.",
			InputSchema: objectSchema(map[string]interface{}{
				"matIndex": integerProp(matIndexDesc),
				"outPath":  stringProp(matOutDesc),
				"gaussian": integerProp(gaussianDesc),
			}, "matIndex", "outPath"),
		},
		{
			Name:        "canny",
			Description: "Run Canny on a blurred matrix and fill the contours on a copy of the original. Returns {width, height, uri, cannyUri, contours}.",
			InputSchema: objectSchema(map[string]interface{}{
				"originalIndex": integerProp("Handle of the matrix the contours are drawn on"),
				"blurredIndex":  integerProp("Handle returned by gaussian_blur; must match the original's size"),
				"outPath":       stringProp(matOutDesc),
				"cannyPath":     stringProp(cannyOutDesc),
				"min":           numberProp(minDesc, defaultCannyMin),
				"max":           numberProp(maxDesc, defaultCannyMax),
			}, "originalIndex", "blurredIndex", "outPath", "cannyPath"),
		},

		// File operations
		{
			Name:        "crop",
			Description: "Cut a rectangle out of an image file. Returns {uri, width, height}.",
			InputSchema: objectSchema(map[string]interface{}{
				"imagePath": stringProp(imagePathDesc),
				"outPath":   stringProp(fileOutDesc),
				"x":         integerProp("Left edge (0-based)"),
				"y":         integerProp("Top edge (0-based)"),
				"width":     integerProp("Rectangle width; x + width must not exceed the image width"),
				"height":    integerProp("Rectangle height; y + height must not exceed the image height"),
			}, "imagePath", "outPath", "x", "y", "width", "height"),
		},
		{
			Name:        "combine",
			Description: "Draw the second image, scaled, centred on a white canvas the size of the first, then draw the first image over it. Returns {uri, width, height}.",
			InputSchema: objectSchema(map[string]interface{}{
				"firstImage":  stringProp(imagePathDesc),
				"secondImage": stringProp(imagePathDesc),
				"outPath":     stringProp(fileOutDesc),
			}, "firstImage", "secondImage", "outPath"),
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
