package study

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

func (dbService *StudyDBService) createIndexesForResponsesCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	// (studyId, visitorId) is intentionally not unique: the duplicate check
	// happens before insert, concurrent double submits are tolerated
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "studyId", Value: 1},
				{Key: "visitorId", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "studyId", Value: 1},
			},
		},
		{
			Keys: bson.D{
				{Key: "submittedAt", Value: 1},
			},
		},
	}
	_, err := dbService.collectionResponses().Indexes().CreateMany(ctx, indexes)
	return err
}

// AddResponseRecord inserts the record with all embedded answers in one
// document write.
func (dbService *StudyDBService) AddResponseRecord(record studyTypes.ResponseRecord) (studyTypes.ResponseRecord, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionResponses().InsertOne(ctx, record)
	if err != nil {
		return record, err
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return record, nil
}

// HasResponseForVisitor reports whether a record for this (study, visitor)
// pair already exists.
func (dbService *StudyDBService) HasResponseForVisitor(studyID primitive.ObjectID, visitorID string) (bool, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{
		"studyId":   studyID,
		"visitorId": visitorID,
	}

	err := dbService.collectionResponses().FindOne(ctx, filter, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetResponsesByStudy returns all records for a study ordered by submission
// time.
func (dbService *StudyDBService) GetResponsesByStudy(studyID primitive.ObjectID) (responses []studyTypes.ResponseRecord, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"studyId": studyID}
	opts := options.Find().SetSort(bson.M{"submittedAt": 1})

	cursor, err := dbService.collectionResponses().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &responses)
	if err != nil {
		return nil, err
	}
	return responses, nil
}

func (dbService *StudyDBService) GetResponseCountByStudy(studyID primitive.ObjectID) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	return dbService.collectionResponses().CountDocuments(ctx, bson.M{"studyId": studyID})
}

// DeleteResponsesByStudy removes all records of a study. Only used when the
// owning study itself is deleted.
func (dbService *StudyDBService) DeleteResponsesByStudy(studyID primitive.ObjectID) (int64, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionResponses().DeleteMany(ctx, bson.M{"studyId": studyID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
