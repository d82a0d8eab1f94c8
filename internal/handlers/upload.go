package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

/*
=======================
  INPUT STRUCT
=======================
*/

type MultipartProductInput struct {
	Name           string
	NameSet        bool
	Price          float64
	PriceSet       bool
	Stock          int
	StockSet       bool
	Category       string
	CategorySet    bool
	Description    string
	DescriptionSet bool
	Image          *multipart.FileHeader
}

/*
=======================
  PARSER
=======================
*/

func parseMultipartProductRequest(c *gin.Context) (MultipartProductInput, error) {
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		return MultipartProductInput{}, err
	}

	input := MultipartProductInput{}

	// ---- STRING FIELDS ----

	if value, ok := c.GetPostForm("nom"); ok {
		input.Name = strings.TrimSpace(value)
		input.NameSet = true
	}

	if value, ok := c.GetPostForm("description"); ok {
		input.Description = strings.TrimSpace(value)
		input.DescriptionSet = true
	}

	if value, ok := c.GetPostForm("categorie"); ok {
		input.Category = strings.TrimSpace(value)
		input.CategorySet = true
	}

	// ---- NUMBER FIELDS ----

	if value, ok := c.GetPostForm("prix"); ok {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || parsed < 0 {
			return MultipartProductInput{}, fmt.Errorf("invalid price: %q", value)
		}
		input.Price = parsed
		input.PriceSet = true
	}

	if value, ok := c.GetPostForm("stock"); ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || parsed < 0 {
			return MultipartProductInput{}, fmt.Errorf("invalid stock: %q", value)
		}
		input.Stock = parsed
		input.StockSet = true
	}

	// ---- IMAGE FILE ----

	file, err := c.FormFile("image")
	if err == nil {
		if err := checkImage(file); err != nil {
			return MultipartProductInput{}, err
		}
		input.Image = file
	} else if !errors.Is(err, http.ErrMissingFile) &&
		!strings.Contains(err.Error(), "no such file") {
		return MultipartProductInput{}, err
	}

	return input, nil
}

func checkImage(file *multipart.FileHeader) error {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return fmt.Errorf("image file extension is required")
	}
	allowedExtensions := map[string]struct{}{
		".jpg":  {},
		".jpeg": {},
		".png":  {},
		".webp": {},
	}
	if _, ok := allowedExtensions[extension]; !ok {
		return fmt.Errorf("unsupported image type: %s", extension)
	}
	const maxImageSize = 5 << 20
	if file.Size > maxImageSize {
		return fmt.Errorf("image file too large (max 5MB)")
	}
	return nil
}

/*
=======================
  FORWARDING BODY
=======================
*/

// buildMultipartBody re-encodes the parsed form for the backend. Images
// are streamed through, never stored locally.
func buildMultipartBody(input MultipartProductInput) (string, *bytes.Buffer, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if input.NameSet {
		if err := writer.WriteField("nom", input.Name); err != nil {
			return "", nil, err
		}
	}
	if input.PriceSet {
		if err := writer.WriteField("prix", strconv.FormatFloat(input.Price, 'f', -1, 64)); err != nil {
			return "", nil, err
		}
	}
	if input.StockSet {
		if err := writer.WriteField("stock", strconv.Itoa(input.Stock)); err != nil {
			return "", nil, err
		}
	}
	if input.CategorySet {
		if err := writer.WriteField("categorie", input.Category); err != nil {
			return "", nil, err
		}
	}
	if input.DescriptionSet {
		if err := writer.WriteField("description", input.Description); err != nil {
			return "", nil, err
		}
	}

	if input.Image != nil {
		part, err := writer.CreateFormFile("image", input.Image.Filename)
		if err != nil {
			return "", nil, err
		}
		src, err := input.Image.Open()
		if err != nil {
			return "", nil, err
		}
		defer src.Close()
		if _, err := io.Copy(part, src); err != nil {
			return "", nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return "", nil, err
	}
	return writer.FormDataContentType(), body, nil
}

func respondMultipartError(c *gin.Context, route string, err error) {
	respondWithError(c, http.StatusBadRequest, route, err.Error())
}
