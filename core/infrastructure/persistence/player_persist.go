package persistence

import (
	"context"
	"errors"

	"uno/common/database"
	"uno/common/log"
	"uno/core/domain/entity"
	"uno/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const playerCollection = "players"

type PlayerRepository struct {
	mongo *database.MongoManager
}

func NewPlayerRepository(mongo *database.MongoManager) repository.PlayerRepository {
	return &PlayerRepository{mongo: mongo}
}

func (r *PlayerRepository) FindByUsername(ctx context.Context, username string) (*entity.PlayerRecord, error) {
	collection := r.mongo.Db.Collection(playerCollection)

	var record entity.PlayerRecord
	err := collection.FindOne(ctx, bson.M{"username": username}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPlayerNotFound
		}
		log.Error("查询玩家失败: %v", err)
		return nil, repository.ErrMongodb
	}
	return &record, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, username string) (*entity.PlayerRecord, error) {
	record, err := r.FindByUsername(ctx, username)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, err
	}

	collection := r.mongo.Db.Collection(playerCollection)
	record = entity.NewPlayerRecord(username)
	if _, err := collection.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			// 并发创建时取回已有记录
			return r.FindByUsername(ctx, username)
		}
		log.Error("创建玩家失败: %v", err)
		return nil, repository.ErrMongodb
	}
	return record, nil
}

func (r *PlayerRepository) IncrementStats(ctx context.Context, username string, won bool) (*entity.PlayerRecord, error) {
	collection := r.mongo.Db.Collection(playerCollection)

	inc := bson.M{"games_played": 1}
	if won {
		inc["games_won"] = 1
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var record entity.PlayerRecord
	err := collection.FindOneAndUpdate(ctx, bson.M{"username": username}, bson.M{"$inc": inc}, opts).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrPlayerNotFound
		}
		log.Error("更新玩家战绩失败: %v", err)
		return nil, repository.ErrMongodb
	}
	return &record, nil
}

func (r *PlayerRepository) Leaderboard(ctx context.Context, limit int64) ([]entity.PlayerRecord, error) {
	collection := r.mongo.Db.Collection(playerCollection)

	// 胜场降序，平手按场次少者靠前；排序键之外保持插入序，保证平手顺序稳定
	opts := options.Find().
		SetSort(bson.D{{Key: "games_won", Value: -1}, {Key: "games_played", Value: 1}}).
		SetLimit(limit)
	cursor, err := collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, repository.ErrMongodb
	}
	defer cursor.Close(ctx)

	var records []entity.PlayerRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, repository.ErrMongodb
	}
	return records, nil
}

// EnsureIndexes 用户名唯一索引
func (r *PlayerRepository) EnsureIndexes(ctx context.Context) error {
	collection := r.mongo.Db.Collection(playerCollection)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
