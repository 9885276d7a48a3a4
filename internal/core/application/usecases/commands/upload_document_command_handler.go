package commands

import (
	"context"
	"fmt"
	"time"

	"parcel/internal/core/domain/model/kernel"
	"parcel/internal/core/ports"
	"parcel/internal/pkg/errs"
)

const RuleOnlyDriversUpload = "only drivers can upload documents"

// UploadDocumentCommandHandler stores the file and records a PENDING document on the
// caller's driver profile. The file is written before the transaction commits; a failed
// commit leaves an unreferenced file behind.
type UploadDocumentCommandHandler struct {
	uowFactory AccountUoWFactory
	storage    ports.DocumentStorage
}

func NewUploadDocumentCommandHandler(uowFactory AccountUoWFactory, storage ports.DocumentStorage) UploadDocumentCommandHandler {
	return UploadDocumentCommandHandler{
		uowFactory: uowFactory,
		storage:    storage,
	}
}

// Handle returns the id of the new document.
//
// Returns:
//   - Forbidden when the caller is not a driver
//   - Conflict when an approved document of the type exists, or on a concurrent update
func (h UploadDocumentCommandHandler) Handle(ctx context.Context, cmd UploadDocumentCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	actor, err := loadActor(ctx, uow.UserRepository(), cmd.CallerID())
	if err != nil {
		return kernel.UUID{}, err
	}
	if !actor.IsDriver() {
		return kernel.UUID{}, errs.NewForbiddenError(RuleOnlyDriversUpload)
	}

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.GetByUserID(ctx, actor.ID)
	if err != nil {
		return kernel.UUID{}, err
	}
	if err = d.CanUpload(cmd.Type()); err != nil {
		return kernel.UUID{}, err
	}

	documentID := kernel.NewUUID()
	key := fmt.Sprintf("documents/%s/%s/%s", d.ID(), documentID, cmd.FileName())
	fileRef, err := h.storage.Save(ctx, key, cmd.Content(), cmd.ContentType())
	if err != nil {
		return kernel.UUID{}, err
	}

	if _, err = d.UploadDocument(documentID, cmd.Type(), fileRef, time.Now()); err != nil {
		return kernel.UUID{}, err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return documentID, nil
}
