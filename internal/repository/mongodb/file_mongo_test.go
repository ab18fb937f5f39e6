package mongodb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"jotter/internal/model"
	"jotter/internal/repository"
)

func TestFileMongo_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("assigns identity on insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		repo := NewFileMongo(mt.DB, repository.PdfsCollection)
		rec := &model.FileRecord{
			Name:       "doc.pdf",
			URL:        "http://localhost:3001/uploads/1700000000000-doc.pdf",
			UploadedAt: time.Now().UTC(),
		}

		stored, err := repo.Create(context.Background(), rec)
		require.NoError(mt, err)
		assert.False(mt, stored.ID.IsZero())
		assert.Equal(mt, "doc.pdf", stored.Name)
	})

	mt.Run("write error names the collection", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "write failed",
		}))

		repo := NewFileMongo(mt.DB, repository.ImagesCollection)
		_, err := repo.Create(context.Background(), &model.FileRecord{Name: "a.png", URL: "u"})
		assert.Error(mt, err)
		assert.Contains(mt, err.Error(), repository.ImagesCollection)
	})
}

func TestFileMongo_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns all records", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + repository.PdfsCollection
		first := mtest.CreateCursorResponse(1, ns, mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "name", Value: "doc.pdf"},
			{Key: "url", Value: "http://localhost:3001/uploads/1-doc.pdf"},
			{Key: "uploadedAt", Value: time.Now().UTC()},
		})
		last := mtest.CreateCursorResponse(0, ns, mtest.NextBatch)
		mt.AddMockResponses(first, last)

		repo := NewFileMongo(mt.DB, repository.PdfsCollection)
		recs, err := repo.List(context.Background())
		require.NoError(mt, err)
		require.Len(mt, recs, 1)
		assert.Equal(mt, "doc.pdf", recs[0].Name)
	})

	mt.Run("empty collection decodes to empty list", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + repository.ImagesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewFileMongo(mt.DB, repository.ImagesCollection)
		recs, err := repo.List(context.Background())
		require.NoError(mt, err)
		assert.NotNil(mt, recs)
		assert.Empty(mt, recs)
	})
}

func TestFileMongo_Count(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("returns store count", func(mt *mtest.T) {
		ns := mt.DB.Name() + "." + repository.ImagesCollection
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, bson.D{
			{Key: "n", Value: int32(3)},
		}))

		repo := NewFileMongo(mt.DB, repository.ImagesCollection)
		n, err := repo.Count(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), n)
	})
}

func TestStatsMongo_DatabaseSizeBytes(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("reports dbStats dataSize", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "dataSize", Value: 2048.0}))

		repo := NewStatsMongo(mt.DB)
		size, err := repo.DatabaseSizeBytes(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, int64(2048), size)
	})

	mt.Run("command failure is surfaced", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Message: "unauthorized",
			Name:    "Unauthorized",
		}))

		repo := NewStatsMongo(mt.DB)
		_, err := repo.DatabaseSizeBytes(context.Background())
		assert.Error(mt, err)
		assert.Contains(mt, err.Error(), "dbStats")
	})
}
