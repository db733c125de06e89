package firestore

import (
	"context"
	"log/slog"
	"strings"

	"ecell/internal/domain/entity"
	domainerrors "ecell/internal/domain/errors"
	"ecell/internal/domain/service"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// collectionTeamMembers is the deployed collection name; it predates this
// codebase and holds every account, not just team members.
const collectionTeamMembers = "Team Members"

// NewClient returns the Firestore client of the Firebase app.
func NewClient(app *firebase.App) (*firestore.Client, error) {
	client, err := app.Firestore(context.Background())
	if err != nil {
		return nil, errors.Wrap(err, "failed to get firestore client")
	}

	return client, nil
}

// accountStore implements service.RemoteAccountSource on Cloud Firestore.
type accountStore struct {
	client *firestore.Client
	logger *slog.Logger
}

// AccountStoreParams holds dependencies for accountStore, injected by Fx.
type AccountStoreParams struct {
	fx.In

	Client *firestore.Client
	Logger *slog.Logger
}

// NewAccountStore is the constructor for accountStore.
func NewAccountStore(params AccountStoreParams) service.RemoteAccountSource {
	return &accountStore{
		client: params.Client,
		logger: params.Logger,
	}
}

// Create writes the account document under its derived document name.
func (s *accountStore) Create(ctx context.Context, account *entity.Account) error {
	if _, err := s.client.Collection(collectionTeamMembers).
		Doc(documentName(account)).
		Set(ctx, toDTO(account)); err != nil {
		return errors.Wrap(mapRPCError(err), "failed to write account document")
	}

	return nil
}

// FindByKey retrieves the account whose id field equals the canonical key.
func (s *accountStore) FindByKey(ctx context.Context, key string) (*entity.Account, error) {
	return s.findByField(ctx, "id", key)
}

// FindByEmail retrieves the account registered with the given email.
func (s *accountStore) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	return s.findByField(ctx, "email", email)
}

// FindByLibraryID retrieves the account holding the given library card.
func (s *accountStore) FindByLibraryID(ctx context.Context, libraryID string) (*entity.Account, error) {
	return s.findByField(ctx, "library_id", libraryID)
}

// TeamMembers lists every team-member account.
func (s *accountStore) TeamMembers(ctx context.Context) ([]*entity.Account, error) {
	iter := s.client.Collection(collectionTeamMembers).
		Where("account_type", "==", entity.AccountTypeTeamMember).
		Documents(ctx)
	defer iter.Stop()

	var members []*entity.Account
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, errors.Wrap(mapRPCError(err), "failed to list team members")
		}

		var dto accountDTO
		if err := doc.DataTo(&dto); err != nil {
			s.logger.Warn("Skipping undecodable team member document", slog.String("doc", doc.Ref.ID), slog.Any("error", err))

			continue
		}
		members = append(members, fromDTO(&dto))
	}

	if len(members) == 0 {
		return nil, domainerrors.ErrNoDocumentsFound.WrapMessage("list team members")
	}

	return members, nil
}

// findByField runs an equality query and decodes the first match. Zero
// matches surface the NO_DOCUMENTS_FOUND sentinel; extra matches are a data
// problem worth logging, but the first one still wins.
func (s *accountStore) findByField(ctx context.Context, field, value string) (*entity.Account, error) {
	iter := s.client.Collection(collectionTeamMembers).
		Where(field, "==", value).
		Documents(ctx)
	defer iter.Stop()

	docs, err := iter.GetAll()
	if err != nil {
		return nil, errors.Wrapf(mapRPCError(err), "failed to query accounts by %s", field)
	}

	if len(docs) == 0 {
		return nil, domainerrors.ErrNoDocumentsFound.WrapMessage("account query by " + field)
	}
	if len(docs) > 1 {
		s.logger.Warn("Multiple account documents for unique field", slog.String("field", field), slog.Int("count", len(docs)))
	}

	var dto accountDTO
	if err := docs[0].DataTo(&dto); err != nil {
		return nil, domainerrors.ErrSerialization.WrapMessage("decode account document")
	}

	return fromDTO(&dto), nil
}

// documentName derives the fixed document name: display name with spaces
// replaced by underscores, suffixed with the canonical key.
func documentName(account *entity.Account) string {
	return strings.ReplaceAll(account.Name, " ", "_") + "_" + account.ID
}

// mapRPCError folds a Firestore RPC failure into the remote taxonomy.
func mapRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return domainerrors.ErrStoreFailure
	}

	switch st.Code() {
	case codes.NotFound:
		return domainerrors.ErrDocumentNotFound
	case codes.Unauthenticated:
		return domainerrors.ErrUnauthorized
	case codes.PermissionDenied:
		return domainerrors.ErrForbidden
	case codes.ResourceExhausted:
		return domainerrors.ErrTooManyRequests
	case codes.DeadlineExceeded:
		return domainerrors.ErrRequestTimeout
	case codes.Canceled:
		return domainerrors.ErrOperationCancelled
	case codes.Unavailable:
		return domainerrors.ErrNoInternet
	case codes.AlreadyExists:
		return domainerrors.ErrDuplicateEntry
	default:
		return domainerrors.ErrStoreFailure
	}
}
