package forms

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTicket() url.Values {
	return url.Values{
		"requester_name":  {"Ana Pérez"},
		"requester_email": {"ana@example.com"},
		"requester_area":  {"Sistemas"},
		"description":     {"The printer on floor 2 is jammed"},
		"priority":        {"media"},
	}
}

func TestTicketValid(t *testing.T) {
	assert.Nil(t, NewValidator().Check(ParseTicket(validTicket())))
}

func TestTicketShortDescription(t *testing.T) {
	v := validTicket()
	v.Set("description", "too short")
	errs := NewValidator().Check(ParseTicket(v))
	require.True(t, errs.Any())
	assert.Equal(t, "The description field must be at least 10 characters", errs.Get("description"))
}

func TestTicketBadEmailAndPriority(t *testing.T) {
	v := validTicket()
	v.Set("requester_email", "nope")
	v.Set("priority", "urgent")
	errs := NewValidator().Check(ParseTicket(v))
	assert.Contains(t, errs.Get("requester_email"), "valid email")
	assert.Equal(t, "The priority field must be one of: baja, media, alta", errs.Get("priority"))
}

func TestSearchNormalises(t *testing.T) {
	f := ParseSearch(url.Values{"ticket_number": {"  tk-2024-0001 "}})
	assert.Equal(t, "TK-2024-0001", f.TicketNumber)
	assert.True(t, NewValidator().Check(ParseSearch(url.Values{})).Any())
}

func TestRoleRules(t *testing.T) {
	val := NewValidator()
	ok := ParseRole(url.Values{"name": {"help_desk"}, "display_name": {"Help desk"}, "level": {"2"}})
	assert.Nil(t, val.Check(ok))

	bad := ParseRole(url.Values{"name": {"Help Desk"}, "display_name": {"x"}, "level": {"4"}})
	errs := val.Check(bad)
	assert.Contains(t, errs.Get("name"), "lowercase letters and underscores")
	assert.NotEmpty(t, errs.Get("level"))
}

func userValues() url.Values {
	return url.Values{
		"name": {"Luis"}, "username": {"luis"}, "email": {"luis@example.com"},
		"cedula": {"1020"}, "role_id": {"3"},
	}
}

func TestNewUserPasswordRules(t *testing.T) {
	val := NewValidator()
	v := userValues()
	v.Set("password", "secret12")
	v.Set("password_confirmation", "secret13")
	errs := val.Check(ParseNewUser(v))
	assert.Equal(t, "The password confirmation does not match", errs.Get("password_confirmation"))

	v.Set("password", "short")
	v.Set("password_confirmation", "short")
	assert.NotEmpty(t, val.Check(ParseNewUser(v)).Get("password"))

	v.Set("password", "longenough")
	v.Set("password_confirmation", "longenough")
	assert.Nil(t, val.Check(ParseNewUser(v)))
}

func TestEditUserPasswordOptional(t *testing.T) {
	val := NewValidator()
	assert.Nil(t, val.Check(ParseEditUser(userValues())))

	v := userValues()
	v.Set("password", "longenough")
	assert.NotEmpty(t, val.Check(ParseEditUser(v)).Get("password_confirmation"))
}

func TestPermissionAndMenuAndArea(t *testing.T) {
	val := NewValidator()
	errs := val.Check(ParsePermission(url.Values{"module_id": {"1"}, "name": {"tickets.purge"}, "display_name": {"Purge"}, "action_type": {"purge"}}))
	assert.NotEmpty(t, errs.Get("action_type"))

	errs = val.Check(ParseMenuItem(url.Values{"key": {"k"}, "label": {"L"}, "route": {"/x"}, "order": {"-1"}}))
	assert.NotEmpty(t, errs.Get("order"))

	assert.NotEmpty(t, val.Check(ParseArea(url.Values{})).Get("name"))
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n0000000000000000")

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("attachment", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, "/", &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	require.NoError(t, r.ParseMultipartForm(MaxAttachmentSize*2))
	_, fh, err := r.FormFile("attachment")
	require.NoError(t, err)
	return fh
}

func TestAttachmentAcceptsImage(t *testing.T) {
	up, msg := ReadAttachment(fileHeader(t, "shot.png", pngHeader))
	assert.Empty(t, msg)
	require.NotNil(t, up)
	assert.Equal(t, "image/png", up.ContentType)
}

func TestAttachmentRejectsNonImage(t *testing.T) {
	up, msg := ReadAttachment(fileHeader(t, "notes.txt", []byte("plain text notes")))
	assert.Nil(t, up)
	assert.Equal(t, "The attachment must be an image", msg)
}

func TestAttachmentRejectsLarge(t *testing.T) {
	big := append(append([]byte{}, pngHeader...), make([]byte, MaxAttachmentSize)...)
	up, msg := ReadAttachment(fileHeader(t, "big.png", big))
	assert.Nil(t, up)
	assert.Equal(t, "The attachment must not exceed 5 MB", msg)
}

func TestAttachmentOptional(t *testing.T) {
	up, msg := ReadAttachment(nil)
	assert.Nil(t, up)
	assert.Empty(t, msg)
}

func TestCheckAttachmentFromBytes(t *testing.T) {
	up, msg := CheckAttachment("disk.png", pngHeader)
	assert.Empty(t, msg)
	require.NotNil(t, up)
	assert.Equal(t, "disk.png", up.Filename)

	_, msg = CheckAttachment("disk.pdf", []byte("%PDF-1.4 document"))
	assert.Equal(t, "The attachment must be an image", msg)
}
