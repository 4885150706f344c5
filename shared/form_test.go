package shared_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"corpbooking/shared"
	"corpbooking/shared/constant"
	"corpbooking/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noteRequest struct {
	Title    string                `json:"title" validate:"required"`
	File     *multipart.FileHeader `json:"-"`
	Contents multipart.File        `json:"-"`
}

func (n *noteRequest) FromForm(r *http.Request) {
	n.Title = r.FormValue("title")
}

func (n *noteRequest) AttachFile(header *multipart.FileHeader, file multipart.File) {
	n.File, n.Contents = header, file
}

func TestBindRequest_JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{"title":"agenda"}`))
	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)

	got, release, err := shared.BindRequest[noteRequest](req, "attachment")
	require.NoError(t, err)
	defer release()

	assert.Equal(t, "agenda", got.Title)
	assert.Nil(t, got.File)
}

func TestBindRequest_Multipart(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("title", "minutes"))

	part, err := writer.CreateFormFile("attachment", "minutes.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("hello"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/notes", body)
	req.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())

	got, release, err := shared.BindRequest[noteRequest](req, "attachment")
	require.NoError(t, err)
	defer release()

	assert.Equal(t, "minutes", got.Title)
	require.NotNil(t, got.File)
	assert.Equal(t, "minutes.txt", got.File.Filename)
}

func TestBindRequest_Invalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/notes", strings.NewReader(`{}`))

	_, release, err := shared.BindRequest[noteRequest](req, "attachment")

	require.Error(t, err)
	assert.NotNil(t, release)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}
