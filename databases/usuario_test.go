package databases_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/registroapp/registro-api/databases"
	"github.com/registroapp/registro-api/databases/mocks"
	"github.com/registroapp/registro-api/models"
)

func TestUsuarioFindOne(t *testing.T) {
	var db databases.DatabaseHelper
	var collection databases.CollectionHelper
	var srHelperCorrect databases.SingleResultHelper

	db = &mocks.DatabaseHelper{}
	collection = &mocks.CollectionHelper{}
	srHelperCorrect = &mocks.SingleResultHelper{}

	srHelperCorrect.(*mocks.SingleResultHelper).
		On("Decode", mock.AnythingOfType("*models.Usuario")).
		Run(func(args mock.Arguments) {
			arg := args.Get(0).(*models.Usuario)
			arg.Email = "ana@example.com"
		}).Return(nil)

	collection.(*mocks.CollectionHelper).
		On("FindOne", context.Background(), bson.M{"email": "ana@example.com"}).
		Return(srHelperCorrect)

	db.(*mocks.DatabaseHelper).
		On("Collection", "usuarios").Return(collection)

	usuarioDba := databases.NewUsuarioDatabase(db)

	var usuario models.Usuario
	err := usuarioDba.FindOne(context.Background(), bson.M{"email": "ana@example.com"}).Decode(&usuario)

	assert.NoError(t, err)
	assert.Equal(t, "ana@example.com", usuario.Email)
}

func TestUsuarioCountDocuments(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	collection := &mocks.CollectionHelper{}

	collection.On("CountDocuments", context.Background(), bson.M{"username": "ana123"}).
		Return(int64(1), nil)
	db.On("Collection", "usuarios").Return(collection)

	usuarioDba := databases.NewUsuarioDatabase(db)

	count, err := usuarioDba.CountDocuments(context.Background(), bson.M{"username": "ana123"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestUsuarioCountDocumentsError(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	collection := &mocks.CollectionHelper{}

	collection.On("CountDocuments", context.Background(), mock.Anything).
		Return(int64(0), errors.New("mocked-error"))
	db.On("Collection", "usuarios").Return(collection)

	usuarioDba := databases.NewUsuarioDatabase(db)

	count, err := usuarioDba.CountDocuments(context.Background(), bson.M{"email": "x@y.com"})
	assert.EqualError(t, err, "mocked-error")
	assert.Equal(t, int64(0), count)
}

func TestUsuarioInsertOneDuplicateKey(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	collection := &mocks.CollectionHelper{}

	dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	collection.On("InsertOne", context.Background(), mock.AnythingOfType("models.Usuario")).
		Return(nil, dupErr)
	db.On("Collection", "usuarios").Return(collection)

	usuarioDba := databases.NewUsuarioDatabase(db)

	res, err := usuarioDba.InsertOne(context.Background(), models.Usuario{Email: "ana@example.com"})
	assert.Nil(t, res)
	assert.True(t, mongo.IsDuplicateKeyError(err))
}

func TestUsuarioDeleteOne(t *testing.T) {
	db := &mocks.DatabaseHelper{}
	collection := &mocks.CollectionHelper{}

	collection.On("DeleteOne", context.Background(), bson.M{"username": "ana123"}).
		Return(int64(1), nil)
	db.On("Collection", "usuarios").Return(collection)

	usuarioDba := databases.NewUsuarioDatabase(db)

	deleted, err := usuarioDba.DeleteOne(context.Background(), bson.M{"username": "ana123"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}
