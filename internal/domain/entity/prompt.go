package entity

import "google.golang.org/genai"

// ProxyRequest is the body the browser sends to the proxy.
type ProxyRequest struct {
	Prompt string `json:"prompt"`
}

// AuthenticatedCaller is resolved from the bearer token for a single request.
// An empty UID means the deployment does not verify callers.
type AuthenticatedCaller struct {
	UID string `json:"uid"`
}

func (c *AuthenticatedCaller) Anonymous() bool {
	return c == nil || c.UID == ""
}

// UpstreamPayload is the generateContent request body. Only the prompt text varies.
type UpstreamPayload struct {
	Contents []*genai.Content `json:"contents"`
	Tools    []*genai.Tool    `json:"tools"`
}

func NewUpstreamPayload(prompt string) *UpstreamPayload {
	return &UpstreamPayload{
		Contents: []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)},
		Tools:    []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	}
}

// UpstreamResponse is returned to the caller verbatim.
type UpstreamResponse struct {
	StatusCode int
	Body       []byte
	Attempts   int
}
