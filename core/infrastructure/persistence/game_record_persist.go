package persistence

import (
	"context"

	"uno/common/database"
	"uno/common/log"
	"uno/core/domain/entity"
	"uno/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const gameCollection = "games"
const matchSeqKey = "uno:seq:match"

type GameRecordRepository struct {
	mongo *database.MongoManager
	redis *database.RedisManager
}

func NewGameRecordRepository(mongo *database.MongoManager, redis *database.RedisManager) repository.GameRecordRepository {
	return &GameRecordRepository{mongo: mongo, redis: redis}
}

func (r *GameRecordRepository) Save(ctx context.Context, record *entity.GameRecord) error {
	collection := r.mongo.Db.Collection(gameCollection)

	if r.redis != nil {
		seq, err := r.redis.Incr(ctx, matchSeqKey)
		if err != nil {
			// 局号只是辅助信息，拿不到不阻塞落库
			log.Warn("获取局号失败: %v", err)
		} else {
			record.MatchNo = seq
		}
	}

	filter := bson.M{"room_code": record.RoomCode}
	update := bson.M{"$set": record}
	opts := options.Update().SetUpsert(true)

	if _, err := collection.UpdateOne(ctx, filter, update, opts); err != nil {
		log.Error("保存对局快照失败: %v", err)
		return repository.ErrMongodb
	}
	return nil
}

func (r *GameRecordRepository) FindActive(ctx context.Context, limit int64) ([]entity.ActiveGameSummary, error) {
	collection := r.mongo.Db.Collection(gameCollection)

	opts := options.Find().
		SetLimit(limit).
		SetProjection(bson.M{"room_code": 1, "players.username": 1, "game_status": 1})
	cursor, err := collection.Find(ctx, bson.M{"game_status": "active"}, opts)
	if err != nil {
		return nil, repository.ErrMongodb
	}
	defer cursor.Close(ctx)

	var docs []entity.GameRecord
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, repository.ErrMongodb
	}

	summaries := make([]entity.ActiveGameSummary, 0, len(docs))
	for _, doc := range docs {
		usernames := make([]string, 0, len(doc.Players))
		for _, p := range doc.Players {
			usernames = append(usernames, p.Username)
		}
		summaries = append(summaries, entity.ActiveGameSummary{
			RoomCode:   doc.RoomCode,
			Players:    usernames,
			GameStatus: doc.GameStatus,
		})
	}
	return summaries, nil
}

func (r *GameRecordRepository) CountByStatus(ctx context.Context) (*entity.GameCounts, error) {
	collection := r.mongo.Db.Collection(gameCollection)

	counts := &entity.GameCounts{}
	var err error
	if counts.Total, err = collection.CountDocuments(ctx, bson.M{}); err != nil {
		return nil, repository.ErrMongodb
	}
	if counts.Active, err = collection.CountDocuments(ctx, bson.M{"game_status": "active"}); err != nil {
		return nil, repository.ErrMongodb
	}
	if counts.Finished, err = collection.CountDocuments(ctx, bson.M{"game_status": "finished"}); err != nil {
		return nil, repository.ErrMongodb
	}
	if counts.Waiting, err = collection.CountDocuments(ctx, bson.M{"game_status": "waiting"}); err != nil {
		return nil, repository.ErrMongodb
	}
	return counts, nil
}

func (r *GameRecordRepository) EnsureIndexes(ctx context.Context, retentionSeconds int32) error {
	collection := r.mongo.Db.Collection(gameCollection)

	_, err := collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "room_code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			// 保留窗口：到期快照由 mongod 自动清除
			Keys:    bson.D{{Key: "created_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(retentionSeconds),
		},
	})
	return err
}
