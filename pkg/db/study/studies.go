package study

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	studyTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/study/types"
)

func (dbService *StudyDBService) createIndexesForStudiesCollection() error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	_, err := dbService.collectionStudies().Indexes().CreateOne(
		ctx,
		mongo.IndexModel{
			Keys: bson.D{
				{Key: "ownerId", Value: 1},
			},
		},
	)
	return err
}

func (dbService *StudyDBService) CreateStudy(study studyTypes.Study) (studyTypes.Study, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionStudies().InsertOne(ctx, study)
	if err != nil {
		return study, err
	}
	study.ID = res.InsertedID.(primitive.ObjectID)
	return study, nil
}

// GetStudyByID fetches one study with its full question set.
func (dbService *StudyDBService) GetStudyByID(studyID primitive.ObjectID) (study studyTypes.Study, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": studyID}
	err = dbService.collectionStudies().FindOne(ctx, filter).Decode(&study)
	return study, err
}

func (dbService *StudyDBService) GetStudiesByOwner(ownerID primitive.ObjectID) (studies []studyTypes.Study, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"ownerId": ownerID}
	cursor, err := dbService.collectionStudies().Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	err = cursor.All(ctx, &studies)
	if err != nil {
		return nil, err
	}
	return studies, nil
}

// ReplaceStudy writes the updated study document. The caller is responsible
// for ownership checks and question id consistency.
func (dbService *StudyDBService) ReplaceStudy(study studyTypes.Study) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": study.ID}
	res, err := dbService.collectionStudies().ReplaceOne(ctx, filter, study)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (dbService *StudyDBService) DeleteStudy(studyID primitive.ObjectID) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": studyID}
	res, err := dbService.collectionStudies().DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
