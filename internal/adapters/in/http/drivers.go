package http

import (
	"errors"
	"net/http"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/model/driver"
	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

type AvailabilityRequest struct {
	Online bool `json:"online"`
}

type ReviewRequest struct {
	Reason string `json:"reason,omitempty"`
}

// SetAvailability handles PUT /api/v1/drivers/me/availability.
func (s *Server) SetAvailability(c echo.Context) error {
	var req AvailabilityRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	cmd, err := commands.NewSetDriverAvailabilityCommand(callerID(c), req.Online)
	if err != nil {
		return err
	}

	if err = s.handlers.SetDriverAvailability.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadDocument handles POST /api/v1/drivers/me/documents, a multipart form with a
// "type" field and a "file" part.
func (s *Server) UploadDocument(c echo.Context) error {
	docType, typeErr := driver.ParseDocumentType(c.FormValue("type"))
	header, fileErr := c.FormFile("file")
	if fileErr != nil {
		fileErr = errs.NewValueIsRequiredErrorWithCause("file", fileErr)
	}
	if err := errors.Join(typeErr, fileErr); err != nil {
		return err
	}

	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	cmd, err := commands.NewUploadDocumentCommand(
		callerID(c),
		docType,
		header.Filename,
		header.Header.Get(echo.HeaderContentType),
		file,
	)
	if err != nil {
		return err
	}

	documentID, err := s.handlers.UploadDocument.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}

	return s.renderDocument(c, http.StatusCreated, documentID)
}

// ListMyDocuments handles GET /api/v1/drivers/me/documents.
func (s *Server) ListMyDocuments(c echo.Context) error {
	query, err := queries.NewListDriverDocumentsQuery(callerID(c))
	if err != nil {
		return err
	}

	views, err := s.handlers.ListDriverDocuments.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// GetDocument handles GET /api/v1/documents/:id.
func (s *Server) GetDocument(c echo.Context) error {
	documentID, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return err
	}
	return s.renderDocument(c, http.StatusOK, documentID)
}

// ListDocumentsForReview handles GET /api/v1/admin/documents?status=PENDING.
func (s *Server) ListDocumentsForReview(c echo.Context) error {
	status := driver.DocumentStatusUnknown
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := driver.ParseDocumentStatus(raw)
		if err != nil {
			return err
		}
		status = parsed
	}

	query, err := queries.NewListDocumentsForReviewQuery(callerID(c), status)
	if err != nil {
		return err
	}

	views, err := s.handlers.ListDocumentsForReview.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, views)
}

// ReviewDocument handles POST /api/v1/admin/documents/:id/{approve,reject}.
func (s *Server) ReviewDocument(c echo.Context) error {
	var req ReviewRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	documentID, idErr := kernel.UUIDFromString(c.Param("id"))
	action, actionErr := driver.ParseReviewAction(c.Param("action"))
	if err := errors.Join(idErr, actionErr); err != nil {
		return err
	}

	cmd, err := commands.NewReviewDocumentCommand(documentID, callerID(c), action, req.Reason)
	if err != nil {
		return err
	}

	if err = s.handlers.ReviewDocument.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.renderDocument(c, http.StatusOK, documentID)
}

func (s *Server) renderDocument(c echo.Context, status int, documentID kernel.UUID) error {
	query, err := queries.NewGetDocumentQuery(documentID, callerID(c))
	if err != nil {
		return err
	}

	view, err := s.handlers.GetDocument.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(status, view)
}
