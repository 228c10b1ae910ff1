package browser

import (
	"context"
)

// selectAllModifiers is the platform chord modifier for select-all
// (Ctrl on the wire protocol's modifier bitmask).
const selectAllModifiers = 2

// Click resolves the selector, fetches the node's box model, and
// dispatches a synthetic press+release at the bounding-box center.
// Returns false when the selector matches nothing or the node has no
// box model (hidden or zero-size). Does not scroll the node into view.
func (p *Page) Click(ctx context.Context, selector string) (bool, error) {
	node, err := p.QuerySelector(ctx, selector)
	if err != nil {
		return false, err
	}
	if node == 0 {
		return false, nil
	}

	resp, err := p.client.Send(ctx, "DOM.getBoxModel", map[string]any{"nodeId": int64(node)})
	if err != nil {
		return false, err
	}
	if resp.Error != nil {
		return false, nil
	}
	var box struct {
		Model struct {
			Content []float64 `json:"content"`
		} `json:"model"`
	}
	if err := resp.Decode(&box); err != nil || len(box.Model.Content) < 6 {
		return false, nil
	}

	// content quad is [x1,y1, x2,y2, x3,y3, x4,y4]; center from the
	// top-left and bottom-right corners
	x := (box.Model.Content[0] + box.Model.Content[4]) / 2
	y := (box.Model.Content[1] + box.Model.Content[5]) / 2

	for _, evt := range []string{"mousePressed", "mouseReleased"} {
		_, err := p.client.Send(ctx, "Input.dispatchMouseEvent", map[string]any{
			"type":       evt,
			"x":          x,
			"y":          y,
			"button":     "left",
			"clickCount": 1,
		})
		if err != nil {
			return false, err
		}
	}
	return true, nil
}

// TypeText dispatches one key event per character. Only simple
// printable characters are supported.
func (p *Page) TypeText(ctx context.Context, text string) error {
	for _, r := range text {
		_, err := p.client.Send(ctx, "Input.dispatchKeyEvent", map[string]any{
			"type": "char",
			"text": string(r),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// Fill clicks into the field, selects its existing content, and types
// the replacement. A failed click makes this a silent no-op.
func (p *Page) Fill(ctx context.Context, selector, text string) error {
	ok, err := p.Click(ctx, selector)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	_, err = p.client.Send(ctx, "Input.dispatchKeyEvent", map[string]any{
		"type":      "keyDown",
		"key":       "a",
		"modifiers": selectAllModifiers,
	})
	if err != nil {
		return err
	}
	return p.TypeText(ctx, text)
}

// KeyPress dispatches a single key-down event. No matching key-up is
// sent; pages that care about the release will not see one.
func (p *Page) KeyPress(ctx context.Context, keyName string) error {
	_, err := p.client.Send(ctx, "Input.dispatchKeyEvent", map[string]any{
		"type": "keyDown",
		"key":  keyName,
	})
	return err
}
