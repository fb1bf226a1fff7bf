package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/image-identifier/internal/handler"
	"github.com/menta2k/image-identifier/internal/router"
	"github.com/menta2k/image-identifier/pkg/admission"
	"github.com/menta2k/image-identifier/pkg/dispatch"
	"github.com/menta2k/image-identifier/pkg/session"
)

type scriptedVision struct {
	categoryReply string
	identifyReply string
}

func (s *scriptedVision) Generate(ctx context.Context, prompt, imageB64, mimeType string) (string, error) {
	if strings.Contains(prompt, "tell me if it contains") {
		return s.categoryReply, nil
	}
	return s.identifyReply, nil
}

func newTestRouter(vc *scriptedVision) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := session.New(admission.New(vc), dispatch.New(vc))
	return router.Setup(handler.NewIdentifyHandler(s))
}

func multipartImage(t *testing.T, field string, width, height int) (*bytes.Buffer, string) {
	t.Helper()
	var img bytes.Buffer
	require.NoError(t, png.Encode(&img, image.NewRGBA(image.Rect(0, 0, width, height))))

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	hdr := textproto.MIMEHeader{}
	hdr.Set("Content-Disposition", `form-data; name="`+field+`"; filename="upload.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := w.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(img.Bytes())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) handler.APIResponse {
	t.Helper()
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestIdentify_Success(t *testing.T) {
	r := newTestRouter(&scriptedVision{
		categoryReply: "Yes, a plant.",
		identifyReply: "Common Name: Basil\nScientific Name: Ocimum basilicum",
	})

	body, contentType := multipartImage(t, "image", 500, 500)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/plant", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)

	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "plant", data["mode"])
	assert.Equal(t, "success", data["status"])
	plant := data["plant"].(map[string]interface{})
	assert.Equal(t, "Basil", plant["name"])
}

func TestIdentify_UnknownMode(t *testing.T) {
	r := newTestRouter(&scriptedVision{})

	body, contentType := multipartImage(t, "image", 500, 500)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/mineral", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "UNKNOWN_MODE", resp.Error.Code)
}

func TestIdentify_MissingImageField(t *testing.T) {
	r := newTestRouter(&scriptedVision{})

	body, contentType := multipartImage(t, "not-image", 500, 500)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/plant", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "MISSING_IMAGE", resp.Error.Code)
}

func TestIdentify_CategoryMismatch(t *testing.T) {
	r := newTestRouter(&scriptedVision{
		categoryReply: "No, this is a bicycle.",
	})

	body, contentType := multipartImage(t, "image", 500, 500)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/animal", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "CATEGORY_MISMATCH", resp.Error.Code)
}

func TestIdentify_SmallImage(t *testing.T) {
	r := newTestRouter(&scriptedVision{categoryReply: "Yes."})

	body, contentType := multipartImage(t, "image", 100, 100)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/plant", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "IMAGE_TOO_SMALL", resp.Error.Code)
}

func TestIdentify_IdentityUnresolved(t *testing.T) {
	r := newTestRouter(&scriptedVision{
		categoryReply: "Yes.",
		identifyReply: "I really cannot tell.",
	})

	body, contentType := multipartImage(t, "image", 500, 500)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/plant", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeResponse(t, rec)
	assert.Equal(t, "IDENTITY_UNRESOLVED", resp.Error.Code)
}

func TestSnapshot_DefaultState(t *testing.T) {
	r := newTestRouter(&scriptedVision{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/skin", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "idle", data["status"])
	assert.Equal(t, "/images/default-skin.jpg", data["preview"])
}

func TestReset_AfterSuccess(t *testing.T) {
	r := newTestRouter(&scriptedVision{
		categoryReply: "Yes.",
		identifyReply: "Common Name: Basil\nScientific Name: Ocimum basilicum",
	})

	body, contentType := multipartImage(t, "image", 500, 500)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/identify/plant", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/session/plant/reset", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "idle", data["status"])
	assert.Nil(t, data["plant"])
}

func TestHealth(t *testing.T) {
	r := newTestRouter(&scriptedVision{})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
