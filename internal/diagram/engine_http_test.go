package diagram

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTTPEngine_Generate(t *testing.T) {
	t.Parallel()

	png := []byte{0x89, 0x50, 0x4E, 0x47}
	var gotBody string
	var gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotPath = r.URL.Path
		w.Header().Set("Content-Description", "sequence diagram")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	engine := NewHTTPEngine(srv.URL + "/")

	img, desc, err := engine.Generate("@startuml\nA->B\n@enduml\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if gotPath != "/png" {
		t.Errorf("request path = %q, want /png", gotPath)
	}
	if gotBody != "@startuml\nA->B\n@enduml\n" {
		t.Errorf("server received %q, want the wrapped source verbatim", gotBody)
	}
	if string(img) != string(png) {
		t.Errorf("image = %v, want response body bytes", img)
	}
	if desc != "sequence diagram" {
		t.Errorf("description = %q, want Content-Description header", desc)
	}
}

func TestHTTPEngine_Generate_NoDescriptionHeader(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte{1})
	}))
	defer srv.Close()

	_, desc, err := NewHTTPEngine(srv.URL).Generate("@startuml\n@enduml\n")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if desc != fallbackDescription {
		t.Errorf("description = %q, want %q", desc, fallbackDescription)
	}
}

func TestHTTPEngine_Generate_ServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("syntax error line 2\nmore detail"))
	}))
	defer srv.Close()

	_, _, err := NewHTTPEngine(srv.URL).Generate("@startuml\nbroken\n@enduml\n")
	if err == nil {
		t.Fatal("Generate succeeded on a 400 response")
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error %q does not carry the status code", err)
	}
	if !strings.Contains(err.Error(), "syntax error line 2") {
		t.Errorf("error %q does not carry the first body line", err)
	}
	if strings.Contains(err.Error(), "more detail") {
		t.Errorf("error %q carries more than the first body line", err)
	}
}
