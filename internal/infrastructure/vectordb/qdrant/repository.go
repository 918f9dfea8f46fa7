// Package qdrant provides a VectorDB implementation using Qdrant.
package qdrant

import (
	"context"
	"fmt"
	"time"

	pb "github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/ersonp/kizuna-core/internal/domain/entities"
	"github.com/ersonp/kizuna-core/internal/infrastructure/config"
)

// Repository implements the VectorDB interface using Qdrant.
type Repository struct {
	client     pb.CollectionsClient
	points     pb.PointsClient
	collection string
	conn       *grpc.ClientConn
}

// NewRepository creates a new Qdrant repository.
func NewRepository(cfg config.QdrantConfig) (*Repository, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant: %w", err)
	}

	return &Repository{
		client:     pb.NewCollectionsClient(conn),
		points:     pb.NewPointsClient(conn),
		collection: cfg.Collection,
		conn:       conn,
	}, nil
}

// Close closes the gRPC connection.
func (r *Repository) Close() error {
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}

// EnsureCollection creates the collection if it doesn't exist.
func (r *Repository) EnsureCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err == nil {
		return nil
	}

	return r.createCollection(ctx, vectorSize)
}

// ResetCollection drops and recreates the collection for a full rebuild.
func (r *Repository) ResetCollection(ctx context.Context, vectorSize uint64) error {
	// Delete is a no-op when the collection doesn't exist yet
	if _, err := r.client.Delete(ctx, &pb.DeleteCollection{
		CollectionName: r.collection,
	}); err != nil {
		return fmt.Errorf("deleting collection: %w", err)
	}

	return r.createCollection(ctx, vectorSize)
}

// createCollection creates the memo collection with cosine distance.
func (r *Repository) createCollection(ctx context.Context, vectorSize uint64) error {
	_, err := r.client.Create(ctx, &pb.CreateCollection{
		CollectionName: r.collection,
		VectorsConfig: &pb.VectorsConfig{
			Config: &pb.VectorsConfig_Params{
				Params: &pb.VectorParams{
					Size:     vectorSize,
					Distance: pb.Distance_Cosine,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("creating collection: %w", err)
	}

	return nil
}

// SaveBatch upserts memos with their embeddings. The interaction id doubles
// as the point id, so re-indexing the same interaction overwrites its memo.
func (r *Repository) SaveBatch(ctx context.Context, memos []entities.Memo) error {
	points := make([]*pb.PointStruct, 0, len(memos))

	for _, memo := range memos {
		point := &pb.PointStruct{
			Id: &pb.PointId{
				PointIdOptions: &pb.PointId_Uuid{
					Uuid: memo.InteractionID,
				},
			},
			Vectors: &pb.Vectors{
				VectorsOptions: &pb.Vectors_Vector{
					Vector: &pb.Vector{
						Data: memo.Embedding,
					},
				},
			},
			Payload: map[string]*pb.Value{
				"person_id":  {Kind: &pb.Value_StringValue{StringValue: memo.PersonID}},
				"category":   {Kind: &pb.Value_StringValue{StringValue: memo.Category}},
				"text":       {Kind: &pb.Value_StringValue{StringValue: memo.Text}},
				"entry_date": {Kind: &pb.Value_StringValue{StringValue: memo.EntryDate.Format(time.RFC3339)}},
			},
		}
		points = append(points, point)
	}

	_, err := r.points.Upsert(ctx, &pb.UpsertPoints{
		CollectionName: r.collection,
		Points:         points,
	})
	if err != nil {
		return fmt.Errorf("upserting points: %w", err)
	}

	return nil
}

// Search returns the memos most similar to the embedding. A non-empty
// personID restricts results to that person's interactions.
func (r *Repository) Search(ctx context.Context, embedding []float32, personID string, limit int) ([]entities.Memo, error) {
	var filter *pb.Filter
	if personID != "" {
		filter = &pb.Filter{
			Must: []*pb.Condition{
				{
					ConditionOneOf: &pb.Condition_Field{
						Field: &pb.FieldCondition{
							Key: "person_id",
							Match: &pb.Match{
								MatchValue: &pb.Match_Keyword{
									Keyword: personID,
								},
							},
						},
					},
				},
			},
		}
	}

	resp, err := r.points.Search(ctx, &pb.SearchPoints{
		CollectionName: r.collection,
		Vector:         embedding,
		Limit:          uint64(limit),
		Filter:         filter,
		WithPayload: &pb.WithPayloadSelector{
			SelectorOptions: &pb.WithPayloadSelector_Enable{Enable: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("searching points: %w", err)
	}

	memos := make([]entities.Memo, 0, len(resp.Result))
	for _, point := range resp.Result {
		memo := payloadToMemo(point.Payload)
		memo.InteractionID = point.Id.GetUuid()
		memo.Score = point.Score
		memos = append(memos, memo)
	}
	return memos, nil
}

// Count returns the number of indexed memos.
func (r *Repository) Count(ctx context.Context) (uint64, error) {
	resp, err := r.client.Get(ctx, &pb.GetCollectionInfoRequest{
		CollectionName: r.collection,
	})
	if err != nil {
		return 0, fmt.Errorf("getting collection info: %w", err)
	}

	if resp.Result.PointsCount == nil {
		return 0, nil
	}

	return *resp.Result.PointsCount, nil
}

// payloadToMemo converts a Qdrant payload to a Memo entity.
func payloadToMemo(payload map[string]*pb.Value) entities.Memo {
	memo := entities.Memo{
		PersonID: getStringValue(payload, "person_id"),
		Category: getStringValue(payload, "category"),
		Text:     getStringValue(payload, "text"),
	}
	if raw := getStringValue(payload, "entry_date"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			memo.EntryDate = t
		}
	}
	return memo
}

// getStringValue extracts a string payload field.
func getStringValue(payload map[string]*pb.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}
