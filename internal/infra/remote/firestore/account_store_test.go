package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/errors"
)

func TestDocumentName(t *testing.T) {
	account := &entity.Account{ID: "uid-1", Name: "Asha Rao"}
	assert.Equal(t, "Asha_Rao_uid-1", documentName(account))

	account = &entity.Account{ID: "uid-2", Name: "Dev Narayan Singh"}
	assert.Equal(t, "Dev_Narayan_Singh_uid-2", documentName(account))
}

func TestDTO_RoundTripPreservesMappedFields(t *testing.T) {
	dob := time.Date(2004, 7, 21, 0, 0, 0, 0, time.UTC)
	account := entity.NewAccount("uid-1", "Asha Rao", "asha@kiet.edu", "$2a$hash", "LIB-42", "9999999999")
	account.Designation = "Design Lead"
	account.CollegeEmail = "asha.rao@kiet.edu"
	account.DOB = dob

	got := fromDTO(toDTO(account))

	assert.Equal(t, account.ID, got.ID)
	assert.Equal(t, account.Email, got.Email)
	assert.Equal(t, account.LibraryID, got.LibraryID)
	// position and kiet_email are the wire names of these two fields
	assert.Equal(t, "Design Lead", got.Designation)
	assert.Equal(t, "asha.rao@kiet.edu", got.CollegeEmail)
	assert.Equal(t, dob, got.DOB)
	assert.Equal(t, entity.StatusPending, got.Status)
	assert.Equal(t, entity.AccessTypeUser, got.AccessType)
	assert.Equal(t, entity.AccountTypeUser, got.AccountType)
}

func TestFromDTO_ToleratesMissingDates(t *testing.T) {
	got := fromDTO(&accountDTO{ID: "uid-1", DOB: "", CreatedOn: 0})

	assert.True(t, got.DOB.IsZero())
	assert.True(t, got.CreatedOn.IsZero())

	got = fromDTO(&accountDTO{ID: "uid-1", DOB: "not-a-date"})
	assert.True(t, got.DOB.IsZero())
}

func TestMapRPCError(t *testing.T) {
	tests := []struct {
		name string
		code codes.Code
		want error
	}{
		{"not found", codes.NotFound, domainerrors.ErrDocumentNotFound},
		{"unauthenticated", codes.Unauthenticated, domainerrors.ErrUnauthorized},
		{"permission denied", codes.PermissionDenied, domainerrors.ErrForbidden},
		{"rate limited", codes.ResourceExhausted, domainerrors.ErrTooManyRequests},
		{"deadline", codes.DeadlineExceeded, domainerrors.ErrRequestTimeout},
		{"cancelled", codes.Canceled, domainerrors.ErrOperationCancelled},
		{"unavailable", codes.Unavailable, domainerrors.ErrNoInternet},
		{"already exists", codes.AlreadyExists, domainerrors.ErrDuplicateEntry},
		{"anything else", codes.Internal, domainerrors.ErrStoreFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapRPCError(status.Error(tt.code, "rpc failed"))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))
		})
	}
}

func TestMapRPCError_NonRPC(t *testing.T) {
	err := mapRPCError(errors.New("boom"))
	assert.True(t, errors.Is(err, domainerrors.ErrStoreFailure))
}
