package handler

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/rl1809/inventory-tracker/internal/core/domain"
	"github.com/rl1809/inventory-tracker/internal/port"
)

type errorClass struct {
	label      string
	message    string
	httpStatus int
	grpcCode   codes.Code
	sentinel   error
}

var (
	classOK          = errorClass{"ok", "ok", http.StatusOK, codes.OK, nil}
	classInvalid     = errorClass{"invalid", "invalid item name", http.StatusBadRequest, codes.InvalidArgument, domain.ErrInvalidName}
	classLimit       = errorClass{"limit", "item quantity at maximum", http.StatusConflict, codes.FailedPrecondition, domain.ErrQuantityLimit}
	classCorrupt     = errorClass{"corrupt", "corrupt inventory record", http.StatusInternalServerError, codes.DataLoss, domain.ErrInvalidQuantity}
	classUnavailable = errorClass{"unavailable", "store unavailable", http.StatusServiceUnavailable, codes.Unavailable, port.ErrStoreUnavailable}
	classInternal    = errorClass{"error", "internal error", http.StatusInternalServerError, codes.Internal, nil}
)

// Ordered: a name the store cannot address wraps both ErrInvalidName and
// the store error, and is reported as invalid.
var errorClasses = []errorClass{classInvalid, classLimit, classCorrupt, classUnavailable}

func classify(err error) errorClass {
	if err == nil {
		return classOK
	}
	for _, c := range errorClasses {
		if errors.Is(err, c.sentinel) {
			return c
		}
	}
	return classInternal
}

// fromStatus restores the sentinel behind a gRPC status so remote callers
// can use errors.Is like local ones. The status stays reachable through
// status.Code.
func fromStatus(err error) error {
	code := status.Code(err)
	for _, c := range errorClasses {
		if c.grpcCode == code {
			return fmt.Errorf("%w: %w", c.sentinel, err)
		}
	}
	return err
}
