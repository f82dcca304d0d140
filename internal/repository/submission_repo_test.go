package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"finhealth/internal/model"
)

func TestSubmissionRepo(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create sets timestamp", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		sub := &model.Submission{ID: "sub-1", SessionID: "s-1"}
		require.NoError(mt, repo.Create(context.Background(), sub))
		assert.False(mt, sub.CreatedAt.IsZero())
	})

	mt.Run("get by id", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: "sub-1"},
			{Key: "sessionId", Value: "s-1"},
			{Key: "lead", Value: bson.D{{Key: "name", Value: "Sara"}, {Key: "company", Value: "Acme"}}},
		}))

		sub, err := repo.GetByID(context.Background(), "sub-1")
		require.NoError(mt, err)
		require.NotNil(mt, sub)
		assert.Equal(mt, "s-1", sub.SessionID)
		assert.Equal(mt, "Acme", sub.Lead.Company)
	})

	mt.Run("get by id missing", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		sub, err := repo.GetByID(context.Background(), "nope")
		require.NoError(mt, err)
		assert.Nil(mt, sub)
	})

	mt.Run("list", func(mt *mtest.T) {
		repo := NewSubmissionRepo(mt.DB)
		ns := mt.DB.Name() + "." + mt.Coll.Name()
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch,
			bson.D{{Key: "_id", Value: "sub-2"}, {Key: "sessionId", Value: "s-2"}},
			bson.D{{Key: "_id", Value: "sub-1"}, {Key: "sessionId", Value: "s-1"}},
		)
		end := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, end)

		subs, err := repo.List(context.Background(), 10, 0)
		require.NoError(mt, err)
		require.Len(mt, subs, 2)
		assert.Equal(mt, "sub-2", subs[0].ID)
	})
}
