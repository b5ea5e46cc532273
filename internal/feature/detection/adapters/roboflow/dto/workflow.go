// Package dto defines the request and response bodies of the Roboflow workflow endpoint.
package dto

// WorkflowRequest is the body of POST /{workspace}/workflows/{workflow}.
type WorkflowRequest struct {
	APIKey   string                   `json:"api_key"`
	UseCache bool                     `json:"use_cache"`
	Inputs   map[string]WorkflowImage `json:"inputs"`
}

// WorkflowImage is an image input encoded inline.
type WorkflowImage struct {
	Type  string `json:"type"`  // "base64"
	Value string `json:"value"` // base64-encoded image bytes
}

// WorkflowResponse holds one output per input image.
type WorkflowResponse struct {
	Outputs []WorkflowOutput `json:"outputs"`
}

// WorkflowOutput is the output of an object detection block.
type WorkflowOutput struct {
	Predictions struct {
		Image struct {
			Width  int `json:"width"`
			Height int `json:"height"`
		} `json:"image"`
		Predictions []Prediction `json:"predictions"`
	} `json:"predictions"`
}

// Prediction is a single bounding box.
type Prediction struct {
	Class       string  `json:"class"`
	ClassID     int     `json:"class_id"`
	Confidence  float64 `json:"confidence"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	DetectionID string  `json:"detection_id"`
}

// ErrorResponse is returned by the API for 4xx/5xx responses.
type ErrorResponse struct {
	Message string `json:"message"`
}
