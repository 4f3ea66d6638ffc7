package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/Dosada05/tournament-badges/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

const badgeSVG = `<?xml version="1.0" encoding="UTF-8"?>
<!-- badge -->
<svg xmlns="http://www.w3.org/2000/svg" width="64" height="64"><circle cx="32" cy="32" r="30" fill="gold"/></svg>`

func multipartImage(t *testing.T, data []byte) (io.Reader, string) {
	return multipartFile(t, "badge.png", "application/octet-stream", data)
}

func multipartFile(t *testing.T, filename, partType string, data []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename=%q`, filename))
	h.Set("Content-Type", partType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestCheckSVG(t *testing.T) {
	tests := map[string]struct {
		input   string
		wantErr error
	}{
		"plain svg":            {input: badgeSVG},
		"no prolog":            {input: `<svg><rect width="1" height="1"/></svg>`},
		"plain text":           {input: `hello world`, wantErr: errNotSVG},
		"html root":            {input: `<html><svg></svg></html>`, wantErr: errNotSVG},
		"empty":                {input: ``, wantErr: errNotSVG},
		"script element":       {input: `<svg><script>alert(1)</script></svg>`, wantErr: errUnsafeSVG},
		"event handler":        {input: `<svg onload="alert(1)"></svg>`, wantErr: errUnsafeSVG},
		"nested event handler": {input: `<svg><g><rect OnClick="x()"/></g></svg>`, wantErr: errUnsafeSVG},
		"foreign object":       {input: `<svg><foreignObject><div/></foreignObject></svg>`, wantErr: errUnsafeSVG},
		"javascript href":      {input: `<svg xmlns:xlink="http://www.w3.org/1999/xlink"><a xlink:href=" javascript:x()"/></svg>`, wantErr: errUnsafeSVG},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			err := checkSVG([]byte(tc.input))
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUploadImage_SVG(t *testing.T) {
	s := newTestServer(t)
	s.badges.On("UploadImage", mock.Anything, 1, 7, "image/svg+xml", mock.Anything).
		Return(&models.Badge{ID: 7}, nil)

	// Content-Type part'а не важен, тип определяется по содержимому
	body, contentType := multipartFile(t, "badge.svg", "application/octet-stream", []byte(badgeSVG))
	req := httptest.NewRequest(http.MethodPost, "/badges/7/image", body)
	req.Header.Set("Content-Type", contentType)

	rec := s.do(t, req, 1)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUploadImage_RejectsTextClaimingSVG(t *testing.T) {
	tests := map[string]string{
		"plain text":      "just some text, not an image",
		"svg with script": `<svg xmlns="http://www.w3.org/2000/svg"><script>fetch("/x")</script></svg>`,
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t)
			body, contentType := multipartFile(t, "badge.svg", "image/svg+xml", []byte(data))
			req := httptest.NewRequest(http.MethodPost, "/badges/7/image", body)
			req.Header.Set("Content-Type", contentType)

			rec := s.do(t, req, 1)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			s.badges.AssertNotCalled(t, "UploadImage", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}
