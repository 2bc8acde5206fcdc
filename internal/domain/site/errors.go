package site

import "errors"

var (
	ErrSiteNotFound       = errors.New("site not found")
	ErrCheckpointNotFound = errors.New("checkpoint not found")
	ErrQRCodeExists       = errors.New("qr code already assigned to a checkpoint")
)
