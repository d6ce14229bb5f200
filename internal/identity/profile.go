package identity

import (
	"context"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/lfarias/grana/internal/errs"
	"github.com/lfarias/grana/internal/models"
)

// profileStore reads the enrichment record (display name, phone,
// avatar) the presentation layer shows next to the session.
type profileStore struct {
	coll *firestore.CollectionRef
}

func NewProfileStore(client *firestore.Client) *profileStore {
	return &profileStore{coll: client.Collection("profiles")}
}

func (s *profileStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	doc, err := s.coll.Doc(userID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errs.NewNotFoundError("profile not found")
		}
		return nil, errs.NewDatabaseError("read", "failed to get profile", err)
	}

	data := doc.Data()
	str := func(key string) string {
		v, _ := data[key].(string)
		return v
	}
	return &models.Profile{
		UserID:      userID,
		DisplayName: str("display_name"),
		Phone:       str("phone"),
		AvatarURL:   str("avatar_url"),
	}, nil
}
