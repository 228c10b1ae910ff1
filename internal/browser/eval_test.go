package browser

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hireloop/scout/internal/cdp"
)

func evalPage(t *testing.T, result map[string]any) *Page {
	t.Helper()
	fc := &fakeCommander{}
	fc.respond = func(_ int, method string, _ map[string]any) (*cdp.Response, error) {
		require.Equal(t, "Runtime.evaluate", method)
		return ok(t, result)
	}
	return New(fc, testConfig(), nil)
}

func TestEvaluatePrimitives(t *testing.T) {
	cases := []struct {
		name   string
		result map[string]any
		want   any
	}{
		{"string", map[string]any{"result": map[string]any{"type": "string", "value": "hello"}}, "hello"},
		{"number", map[string]any{"result": map[string]any{"type": "number", "value": 3.5}}, 3.5},
		{"boolean", map[string]any{"result": map[string]any{"type": "boolean", "value": false}}, false},
		{"array by value", map[string]any{"result": map[string]any{"type": "object", "value": []any{"a", "b"}}}, []any{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := evalPage(t, tc.result).Evaluate(context.Background(), "x")
			assert.Equal(t, Primitive, got.Kind)
			assert.Equal(t, tc.want, got.Value)
		})
	}
}

func TestEvaluateNullIsNone(t *testing.T) {
	got := evalPage(t, map[string]any{
		"result": map[string]any{"type": "object", "subtype": "null"},
	}).Evaluate(context.Background(), "null")
	assert.Equal(t, None, got.Kind)
}

func TestEvaluateUndefinedIsNone(t *testing.T) {
	got := evalPage(t, map[string]any{
		"result": map[string]any{"type": "undefined"},
	}).Evaluate(context.Background(), "void 0")
	assert.Equal(t, None, got.Kind)
}

func TestEvaluateThrownExceptionIsNone(t *testing.T) {
	got := evalPage(t, map[string]any{
		"result":           map[string]any{"type": "object", "description": "Error: boom"},
		"exceptionDetails": map[string]any{"text": "Uncaught"},
	}).Evaluate(context.Background(), "throw new Error('boom')")
	assert.Equal(t, None, got.Kind)
}

func TestEvaluateOpaqueDescription(t *testing.T) {
	got := evalPage(t, map[string]any{
		"result": map[string]any{"type": "function", "description": "function f() {}"},
	}).Evaluate(context.Background(), "f")
	assert.Equal(t, Opaque, got.Kind)
	assert.Equal(t, "function f() {}", got.Description)
}

func TestEvaluateDispatcherFailureIsNone(t *testing.T) {
	fc := &fakeCommander{}
	fc.respond = func(_ int, _ string, _ map[string]any) (*cdp.Response, error) {
		return nil, &cdp.CommandError{Method: "Runtime.evaluate", Err: errors.New("gone")}
	}
	got := New(fc, testConfig(), nil).Evaluate(context.Background(), "1+1")
	assert.Equal(t, None, got.Kind)
}

func TestEvaluateProtocolErrorIsNone(t *testing.T) {
	fc := &fakeCommander{}
	fc.respond = func(_ int, _ string, _ map[string]any) (*cdp.Response, error) {
		return &cdp.Response{Error: &cdp.ResponseError{Code: -32000, Message: "ctx destroyed"}}, nil
	}
	got := New(fc, testConfig(), nil).Evaluate(context.Background(), "1+1")
	assert.Equal(t, None, got.Kind)
}

func TestScreenshotReturnsEncodedPayload(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte("jpegbytes"))
	fc := &fakeCommander{}
	fc.respond = func(_ int, method string, params map[string]any) (*cdp.Response, error) {
		require.Equal(t, "Page.captureScreenshot", method)
		assert.Equal(t, "jpeg", params["format"])
		assert.Equal(t, 80, params["quality"])
		return ok(t, map[string]any{"data": encoded})
	}
	p := New(fc, testConfig(), nil)

	path, raw, err := p.Screenshot(context.Background(), "", 80, "jpeg")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, []byte(encoded), raw)
}

func TestScreenshotPersistsDecodedImage(t *testing.T) {
	payload := []byte("pretend-png")
	encoded := base64.StdEncoding.EncodeToString(payload)
	fc := &fakeCommander{}
	fc.respond = func(_ int, _ string, params map[string]any) (*cdp.Response, error) {
		// png format omits the quality parameter
		_, hasQuality := params["quality"]
		assert.False(t, hasQuality)
		return ok(t, map[string]any{"data": encoded})
	}
	p := New(fc, testConfig(), nil)

	dest := filepath.Join(t.TempDir(), "shot.png")
	path, raw, err := p.Screenshot(context.Background(), dest, 0, "png")
	require.NoError(t, err)
	assert.Equal(t, dest, path)
	assert.Nil(t, raw)

	written, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, written)
}
