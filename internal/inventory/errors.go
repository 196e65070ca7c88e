package inventory

import "errors"

// Error kinds surfaced by the coordinator and the backing stores. Handlers
// map them to HTTP status codes with errors.Is; nothing here is
// transport-specific.
var (
	// ErrInvalidRequestShape means the candidate did not reference exactly
	// one stock item matching its kind.
	ErrInvalidRequestShape = errors.New("request must reference exactly one medicine or feed matching its kind")

	// ErrInvalidQuantity means the requested quantity was below 1.
	ErrInvalidQuantity = errors.New("requested quantity must be at least 1")

	// ErrMissingLivestockReference means no livestock id was supplied.
	ErrMissingLivestockReference = errors.New("request must reference a livestock record")

	// ErrStockItemNotFound means the referenced medicine or feed does not
	// exist (any more).
	ErrStockItemNotFound = errors.New("stock item not found")

	// ErrInsufficientStock means the on-hand quantity cannot cover the
	// requested amount.
	ErrInsufficientStock = errors.New("insufficient stock on hand")

	// ErrRequestNotFound means no request with the given id exists.
	ErrRequestNotFound = errors.New("request not found")

	// ErrAlreadyFinalized means the request has already been approved or
	// rejected and cannot transition again.
	ErrAlreadyFinalized = errors.New("request has already been finalized")

	// ErrConcurrentModification means the stock item kept changing under
	// the approval and the bounded retries ran out.
	ErrConcurrentModification = errors.New("stock item was concurrently modified")

	// ErrPermissionDenied means the acting user does not own the stock
	// item behind the request.
	ErrPermissionDenied = errors.New("acting user does not own this stock item")
)
