// Package vector wraps the Qdrant gRPC client. Chunks are stored as points
// whose payload carries the full clause record, so a search result can be
// rendered without a second lookup.
package vector

import (
	"context"
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"github.com/praveen-raj-m/compliance-ai/internal/chunk"
)

// hnswEf matches the search accuracy the collections were tuned for.
const hnswEf = 128

// Point is one embedded chunk ready for upsert.
type Point struct {
	ID     string
	Vector []float32
	Chunk  chunk.Chunk
}

// NewPoint assigns a fresh point id for an embedded chunk.
func NewPoint(c chunk.Chunk, vec []float32) Point {
	return Point{ID: uuid.NewString(), Vector: vec, Chunk: c}
}

type Db struct {
	points      qdrant.PointsClient
	collections qdrant.CollectionsClient
}

// Connect dials the Qdrant gRPC endpoint (6334; 6333 is the HTTP server).
func Connect(addr string) (*Db, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, err
	}
	return &Db{
		points:      qdrant.NewPointsClient(conn),
		collections: qdrant.NewCollectionsClient(conn),
	}, nil
}

// EnsureCollection creates a cosine-distance collection when it does not
// exist yet.
func (db *Db) EnsureCollection(ctx context.Context, name string, dim int) error {
	_, err := db.collections.Get(ctx, &qdrant.GetCollectionInfoRequest{CollectionName: name})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return err
	}

	_, err = db.collections.Create(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: &qdrant.VectorsConfig{
			Config: &qdrant.VectorsConfig_Params{
				Params: &qdrant.VectorParams{
					Size:     uint64(dim),
					Distance: qdrant.Distance_Cosine,
				},
			},
		},
	})
	return err
}

// Upsert writes the points into the collection in one request.
func (db *Db) Upsert(ctx context.Context, collection string, points []Point) error {
	qdrantPoints := make([]*qdrant.PointStruct, len(points))
	for i, p := range points {
		qdrantPoints[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: chunkPayload(p.Chunk),
		}
	}

	upsert, err := db.points.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: collection,
		Points:         qdrantPoints,
	})
	if err != nil {
		return err
	}
	opStatus := upsert.GetResult().GetStatus()
	if opStatus != qdrant.UpdateStatus_Acknowledged && opStatus != qdrant.UpdateStatus_Completed {
		return fmt.Errorf("upsert into %s not acknowledged, status %d", collection, opStatus)
	}
	return nil
}

// Search returns the chunks closest to the vector, best first. A non-empty
// source restricts matching server-side to payloads whose source field
// equals it exactly.
func (db *Db) Search(ctx context.Context, collection string, vec []float32, limit uint64, source string) ([]chunk.ScoredChunk, error) {
	request := &qdrant.SearchPoints{
		CollectionName: collection,
		Vector:         vec,
		Limit:          limit,
		WithPayload:    &qdrant.WithPayloadSelector{SelectorOptions: &qdrant.WithPayloadSelector_Enable{Enable: true}},
		Params:         &qdrant.SearchParams{HnswEf: proto.Uint64(hnswEf)},
	}
	if source != "" {
		request.Filter = sourceFilter(source)
	}

	resp, err := db.points.Search(ctx, request)
	if err != nil {
		return nil, err
	}

	results := make([]chunk.ScoredChunk, 0, len(resp.GetResult()))
	for _, point := range resp.GetResult() {
		payload := point.GetPayload()
		if payload == nil {
			return nil, fmt.Errorf("point %s in %s has no payload", point.GetId(), collection)
		}
		results = append(results, chunk.ScoredChunk{
			Chunk: chunkFromPayload(payload),
			Score: float64(point.GetScore()),
		})
	}
	return results, nil
}

// DeleteBySource removes every point of one source from the collection.
// Used to replace a standard wholesale on re-ingestion.
func (db *Db) DeleteBySource(ctx context.Context, collection, source string) error {
	_, err := db.points.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Filter{Filter: sourceFilter(source)},
		},
	})
	return err
}

// SwapAlias atomically repoints alias at collection and reports the
// collection it previously pointed at ("" when the alias is new).
func (db *Db) SwapAlias(ctx context.Context, alias, collection string) (previous string, err error) {
	aliases, err := db.collections.ListAliases(ctx, &qdrant.ListAliasesRequest{})
	if err != nil {
		return "", err
	}
	for _, a := range aliases.GetAliases() {
		if a.GetAliasName() == alias {
			previous = a.GetCollectionName()
			break
		}
	}

	actions := []*qdrant.AliasOperations{}
	if previous != "" {
		actions = append(actions, &qdrant.AliasOperations{
			Action: &qdrant.AliasOperations_DeleteAlias{
				DeleteAlias: &qdrant.DeleteAlias{AliasName: alias},
			},
		})
	}
	actions = append(actions, &qdrant.AliasOperations{
		Action: &qdrant.AliasOperations_CreateAlias{
			CreateAlias: &qdrant.CreateAlias{CollectionName: collection, AliasName: alias},
		},
	})

	_, err = db.collections.UpdateAliases(ctx, &qdrant.ChangeAliases{Actions: actions})
	if err != nil {
		return "", err
	}
	return previous, nil
}

// DropCollection deletes a collection outright.
func (db *Db) DropCollection(ctx context.Context, name string) error {
	_, err := db.collections.Delete(ctx, &qdrant.DeleteCollection{CollectionName: name})
	return err
}

// Count returns the exact number of points in the collection.
func (db *Db) Count(ctx context.Context, collection string) (uint64, error) {
	resp, err := db.points.Count(ctx, &qdrant.CountPoints{
		CollectionName: collection,
		Exact:          proto.Bool(true),
	})
	if err != nil {
		return 0, err
	}
	return resp.GetResult().GetCount(), nil
}

func sourceFilter(source string) *qdrant.Filter {
	return &qdrant.Filter{
		Must: []*qdrant.Condition{
			{
				ConditionOneOf: &qdrant.Condition_Field{
					Field: &qdrant.FieldCondition{
						Key:   "source",
						Match: &qdrant.Match{MatchValue: &qdrant.Match_Keyword{Keyword: source}},
					},
				},
			},
		},
	}
}

func chunkPayload(c chunk.Chunk) map[string]*qdrant.Value {
	keywords := make([]*qdrant.Value, len(c.TopKeywords))
	for i, kw := range c.TopKeywords {
		keywords[i] = &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: kw}}
	}
	return map[string]*qdrant.Value{
		"id":           {Kind: &qdrant.Value_StringValue{StringValue: c.ID}},
		"source":       {Kind: &qdrant.Value_StringValue{StringValue: c.Source}},
		"jurisdiction": {Kind: &qdrant.Value_StringValue{StringValue: c.Jurisdiction}},
		"article_id":   {Kind: &qdrant.Value_StringValue{StringValue: c.ArticleID}},
		"title":        {Kind: &qdrant.Value_StringValue{StringValue: c.Title}},
		"top_keywords": {Kind: &qdrant.Value_ListValue{ListValue: &qdrant.ListValue{Values: keywords}}},
		"full_text":    {Kind: &qdrant.Value_StringValue{StringValue: c.FullText}},
	}
}

func chunkFromPayload(payload map[string]*qdrant.Value) chunk.Chunk {
	c := chunk.Chunk{
		ID:           payload["id"].GetStringValue(),
		Source:       payload["source"].GetStringValue(),
		Jurisdiction: payload["jurisdiction"].GetStringValue(),
		ArticleID:    payload["article_id"].GetStringValue(),
		Title:        payload["title"].GetStringValue(),
		FullText:     payload["full_text"].GetStringValue(),
	}
	for _, v := range payload["top_keywords"].GetListValue().GetValues() {
		c.TopKeywords = append(c.TopKeywords, v.GetStringValue())
	}
	return c
}
