package user

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	userTypes "github.com/TheRealJensJK/Studyfront-backend/pkg/user-management/types"
)

func (dbService *UserDBService) CreateUser(user userTypes.User) (userTypes.User, error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	res, err := dbService.collectionUsers().InsertOne(ctx, user)
	if err != nil {
		return user, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (dbService *UserDBService) GetUserByEmail(email string) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"email": email}
	err = dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *UserDBService) GetUserByID(userID primitive.ObjectID) (user userTypes.User, err error) {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": userID}
	err = dbService.collectionUsers().FindOne(ctx, filter).Decode(&user)
	return user, err
}

func (dbService *UserDBService) UpdateLastLogin(userID primitive.ObjectID, at time.Time) error {
	ctx, cancel := dbService.getContext()
	defer cancel()

	filter := bson.M{"_id": userID}
	update := bson.M{"$set": bson.M{"lastLogin": at}}
	_, err := dbService.collectionUsers().UpdateOne(ctx, filter, update)
	return err
}
