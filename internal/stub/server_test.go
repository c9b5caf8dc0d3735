package stub

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"ledger/internal/analytics"
	"ledger/internal/models"

	"go.uber.org/zap"
)

func multipartRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatal(err)
	}
	_, _ = part.Write(content)
	_ = w.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/analyze", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestStub_Analyze(t *testing.T) {
	app := NewApp(Options{MaxSizeMB: 1, Analytics: analytics.DefaultOptions()}, zap.NewNop())

	tests := []struct {
		name     string
		fileName string
		content  []byte
		status   int
	}{
		{"pdf", "statement.pdf", []byte("%PDF-1.7"), http.StatusOK},
		{"not pdf", "statement.csv", []byte("a,b"), http.StatusUnsupportedMediaType},
		{"empty", "statement.pdf", nil, http.StatusBadRequest},
		{"too large", "statement.pdf", make([]byte, 1024*1024+10), http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(multipartRequest(t, tt.fileName, tt.content))
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			defer resp.Body.Close()
			if resp.StatusCode != tt.status {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.status)
			}

			if tt.status == http.StatusOK {
				var result models.AnalysisResult
				if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if result.TransactionCount != 20 || result.IdleCash.MonthlyBurn != 42717 {
					t.Errorf("unexpected result: %+v", result.IdleCash)
				}
				return
			}

			var payload struct {
				Detail string `json:"detail"`
			}
			if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.Detail == "" {
				t.Errorf("expected a detail message, got %q (%v)", payload.Detail, err)
			}
		})
	}
}

func TestStub_Health(t *testing.T) {
	app := NewApp(Options{MaxSizeMB: 20, Analytics: analytics.DefaultOptions()}, zap.NewNop())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}
}
