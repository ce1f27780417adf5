package forms

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
)

// MaxAttachmentSize is the largest image the portal accepts.
const MaxAttachmentSize = 5 << 20

// MaxTicketBody caps a whole ticket submission: the image plus room for
// the text fields and multipart framing.
const MaxTicketBody = MaxAttachmentSize + 1<<20

var (
	MsgAttachmentTooLarge = fmt.Sprintf("The attachment must not exceed %d MB", MaxAttachmentSize>>20)
	MsgAttachmentUnread   = "The attachment could not be read"
)

// Upload is an attachment read into memory after it passed the checks.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

func (u *Upload) Reader() io.Reader { return bytes.NewReader(u.Data) }

// ReadAttachment checks an optional uploaded image. It returns (nil, "")
// when no file was chosen and a user-facing message when the file is
// rejected.
func ReadAttachment(fh *multipart.FileHeader) (*Upload, string) {
	if fh == nil || fh.Filename == "" {
		return nil, ""
	}
	if fh.Size > MaxAttachmentSize {
		return nil, MsgAttachmentTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return nil, MsgAttachmentUnread
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxAttachmentSize+1))
	if err != nil {
		return nil, MsgAttachmentUnread
	}
	return CheckAttachment(fh.Filename, data)
}

// CheckAttachment applies the size and image checks to bytes already in
// memory. The CLI reads files from disk and comes through here.
func CheckAttachment(filename string, data []byte) (*Upload, string) {
	if len(data) > MaxAttachmentSize {
		return nil, MsgAttachmentTooLarge
	}
	ctype := http.DetectContentType(data)
	if !strings.HasPrefix(ctype, "image/") {
		return nil, "The attachment must be an image"
	}
	return &Upload{Filename: filename, ContentType: ctype, Data: data}, ""
}
