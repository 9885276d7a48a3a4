package commands

import (
	"errors"
	"io"
	"path"
	"strings"

	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"
	"parcel/internal/pkg/guard"
)

var ErrUploadDocumentCommandIsNotConstructed = errors.New(
	"UploadDocumentCommand must be created via NewUploadDocumentCommand constructor",
)

// UploadDocumentCommand carries a driver's document file. The handler streams content to
// the document storage once.
type UploadDocumentCommand struct { //nolint:recvcheck //using for validation
	callerID    kernel.UUID
	docType     driver.DocumentType
	fileName    string
	contentType string
	content     io.Reader

	guard guard.ConstructorGuard
}

func NewUploadDocumentCommand(
	callerID kernel.UUID,
	docType driver.DocumentType,
	fileName, contentType string,
	content io.Reader,
) (UploadDocumentCommand, error) {
	cmd := UploadDocumentCommand{
		contentType: contentType,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCallerID(callerID),
		cmd.setType(docType),
		cmd.setFileName(fileName),
		cmd.setContent(content),
	); err != nil {
		return UploadDocumentCommand{}, err
	}

	return cmd, nil
}

func (c UploadDocumentCommand) Validate() error {
	return c.guard.Validate(ErrUploadDocumentCommandIsNotConstructed)
}

func (c UploadDocumentCommand) CallerID() kernel.UUID {
	return c.callerID
}

func (c UploadDocumentCommand) Type() driver.DocumentType {
	return c.docType
}

// FileName is the base name of the uploaded file, without directories.
func (c UploadDocumentCommand) FileName() string {
	return c.fileName
}

func (c UploadDocumentCommand) ContentType() string {
	return c.contentType
}

func (c UploadDocumentCommand) Content() io.Reader {
	return c.content
}

func (c *UploadDocumentCommand) setCallerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.callerID = id
	return nil
}

func (c *UploadDocumentCommand) setType(t driver.DocumentType) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.docType = t
	return nil
}

func (c *UploadDocumentCommand) setFileName(name string) error {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return errs.NewValueIsRequiredError("file")
	}
	c.fileName = name
	return nil
}

func (c *UploadDocumentCommand) setContent(r io.Reader) error {
	if r == nil {
		return errs.NewValueIsRequiredError("file")
	}
	c.content = r
	return nil
}
