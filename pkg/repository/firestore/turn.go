package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/darkking4096/Agente-IA/pkg/domain/model"
	"github.com/darkking4096/Agente-IA/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// turnDoc is the Firestore document representation of model.Turn
type turnDoc struct {
	PatientID string    `firestore:"PatientID"`
	Phone     string    `firestore:"Phone"`
	UserText  string    `firestore:"UserText"`
	BotText   string    `firestore:"BotText"`
	State     string    `firestore:"State"`
	CreatedAt time.Time `firestore:"CreatedAt"`
}

func toTurnDoc(t *model.Turn) *turnDoc {
	return &turnDoc{
		PatientID: string(t.PatientID),
		Phone:     string(t.Phone),
		UserText:  t.UserText,
		BotText:   t.BotText,
		State:     string(t.State),
		CreatedAt: t.CreatedAt,
	}
}

func fromTurnDoc(d *turnDoc) *model.Turn {
	return &model.Turn{
		PatientID: types.PatientID(d.PatientID),
		Phone:     types.Phone(d.Phone),
		UserText:  d.UserText,
		BotText:   d.BotText,
		State:     types.ConversationState(d.State),
		CreatedAt: d.CreatedAt,
	}
}

type turnRepository struct {
	client *firestore.Client
}

func newTurnRepository(client *firestore.Client) *turnRepository {
	return &turnRepository{client: client}
}

func (r *turnRepository) collection() *firestore.CollectionRef {
	return r.client.Collection("turns")
}

func (r *turnRepository) Append(ctx context.Context, turn *model.Turn) error {
	if turn.Phone == "" {
		return goerr.New("turn requires a phone number")
	}

	stored := *turn
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	if _, _, err := r.collection().Add(ctx, toTurnDoc(&stored)); err != nil {
		return goerr.Wrap(err, "failed to append turn", goerr.V("phone", turn.Phone.Masked()))
	}
	return nil
}

// Recent queries newest-first (requires the Phone+CreatedAt composite index,
// see the migrate command) and reverses into chronological order.
func (r *turnRepository) Recent(ctx context.Context, phone types.Phone, limit int) ([]*model.Turn, error) {
	q := r.collection().
		Where("Phone", "==", string(phone)).
		OrderBy("CreatedAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()

	newestFirst := make([]*model.Turn, 0)
	for {
		doc, err := iter.Next()
		if err != nil {
			if isIteratorDone(err) {
				break
			}
			return nil, goerr.Wrap(err, "failed to iterate turns", goerr.V("phone", phone.Masked()))
		}

		var d turnDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal turn")
		}
		newestFirst = append(newestFirst, fromTurnDoc(&d))
	}

	result := make([]*model.Turn, len(newestFirst))
	for i, t := range newestFirst {
		result[len(newestFirst)-1-i] = t
	}
	return result, nil
}

func (r *turnRepository) Count(ctx context.Context) (int, error) {
	return countDocuments(ctx, r.collection().Query)
}
