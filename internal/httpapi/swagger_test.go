package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestSwaggerDoc(t *testing.T) {
	w := do(t, NewMux(newMockService()), http.MethodGet, "/swagger/doc.json", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not valid JSON: %v", err)
	}
	for _, p := range []string{"/topics", "/topics/{name}", "/topics/{name}/publish", "/status"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Fatalf("missing path %s in swagger doc", p)
		}
	}
}
