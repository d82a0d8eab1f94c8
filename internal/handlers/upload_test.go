package handlers

import (
	"bytes"
	"mime"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func multipartContext(t *testing.T, build func(w *multipart.Writer)) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	build(writer)
	_ = writer.Close()

	req := httptest.NewRequest("POST", "/api/admin/products", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParseMultipartProductRequestFields(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("nom", "  Casque Gamer ")
		_ = w.WriteField("prix", "149.99")
		_ = w.WriteField("stock", "12")
		_ = w.WriteField("categorie", "Audio")
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}
	if !parsed.NameSet || parsed.Name != "Casque Gamer" {
		t.Fatalf("expected trimmed name, got %+v", parsed)
	}
	if !parsed.PriceSet || parsed.Price != 149.99 {
		t.Fatalf("expected price 149.99, got %+v", parsed)
	}
	if !parsed.StockSet || parsed.Stock != 12 {
		t.Fatalf("expected stock 12, got %+v", parsed)
	}
	if parsed.DescriptionSet {
		t.Fatal("expected description unset")
	}
}

func TestParseMultipartProductRequestRejectsBadNumbers(t *testing.T) {
	for field, value := range map[string]string{"prix": "abc", "stock": "-1"} {
		c := multipartContext(t, func(w *multipart.Writer) {
			_ = w.WriteField(field, value)
		})
		if _, err := parseMultipartProductRequest(c); err == nil {
			t.Fatalf("expected error for %s=%s", field, value)
		}
	}
}

func TestParseMultipartProductRequestRejectsBadImage(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		part, _ := w.CreateFormFile("image", "virus.exe")
		_, _ = part.Write([]byte("nope"))
	})
	if _, err := parseMultipartProductRequest(c); err == nil {
		t.Fatal("expected error for unsupported image extension")
	}
}

func TestBuildMultipartBodyRoundTrip(t *testing.T) {
	c := multipartContext(t, func(w *multipart.Writer) {
		_ = w.WriteField("nom", "Clavier")
		_ = w.WriteField("prix", "45")
		part, _ := w.CreateFormFile("image", "clavier.png")
		_, _ = part.Write([]byte("fake png bytes"))
	})

	parsed, err := parseMultipartProductRequest(c)
	if err != nil {
		t.Fatalf("parseMultipartProductRequest returned error: %v", err)
	}

	contentType, body, err := buildMultipartBody(parsed)
	if err != nil {
		t.Fatalf("buildMultipartBody returned error: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		t.Fatalf("unexpected content type %q: %v", contentType, err)
	}

	reader := multipart.NewReader(body, params["boundary"])
	form, err := reader.ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("reading rebuilt form: %v", err)
	}
	if got := form.Value["nom"]; len(got) != 1 || got[0] != "Clavier" {
		t.Fatalf("expected nom forwarded, got %v", form.Value)
	}
	if got := form.Value["prix"]; len(got) != 1 || got[0] != "45" {
		t.Fatalf("expected prix forwarded, got %v", form.Value)
	}
	files := form.File["image"]
	if len(files) != 1 || files[0].Filename != "clavier.png" {
		t.Fatalf("expected image forwarded, got %v", form.File)
	}
}
