package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
)

// Screenshot captures the viewport. When path is non-empty the decoded
// image is written there and the path returned; otherwise the encoded
// payload comes back as raw bytes.
func (p *Page) Screenshot(ctx context.Context, path string, quality int, format string) (string, []byte, error) {
	params := map[string]any{"format": format}
	if format == "jpeg" {
		params["quality"] = quality
	}

	resp, err := p.client.Send(ctx, "Page.captureScreenshot", params)
	if err != nil {
		return "", nil, err
	}
	if resp.Error != nil {
		return "", nil, fmt.Errorf("screenshot rejected: %w", resp.Error)
	}
	var out struct {
		Data string `json:"data"`
	}
	if err := resp.Decode(&out); err != nil {
		return "", nil, fmt.Errorf("screenshot payload malformed: %w", err)
	}

	if path == "" {
		return "", []byte(out.Data), nil
	}

	raw, err := base64.StdEncoding.DecodeString(out.Data)
	if err != nil {
		return "", nil, fmt.Errorf("screenshot payload not base64: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", nil, fmt.Errorf("screenshot write failed: %w", err)
	}
	return path, nil, nil
}
