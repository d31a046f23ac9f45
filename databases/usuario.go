package databases

// go generate: mockery --name UsuarioDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/registroapp/registro-api/models"
)

const usuarioName = "usuarios"

// UsuarioDatabase contains the methods to use with the usuario collection.
// Uniqueness of username/email/telefono is enforced by the collection's
// unique indexes; InsertOne surfaces the duplicate-key error when a commit
// races a pre-check.
type UsuarioDatabase interface {
	FindOne(ctx context.Context, filter interface{}) SingleResultHelper
	CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error)
	InsertOne(ctx context.Context, usuario models.Usuario) (InsertOneResultHelper, error)
	DeleteOne(ctx context.Context, filter interface{}) (int64, error)
}

type usuarioDatabase struct {
	db DatabaseHelper
}

// NewUsuarioDatabase initializes a new instance of usuario database with the
// provided db connection
func NewUsuarioDatabase(db DatabaseHelper) UsuarioDatabase {
	return &usuarioDatabase{
		db: db,
	}
}

func (u *usuarioDatabase) FindOne(ctx context.Context, filter interface{}) SingleResultHelper {
	return u.db.Collection(usuarioName).FindOne(ctx, filter)
}

func (u *usuarioDatabase) CountDocuments(ctx context.Context, filter interface{}, opts ...*options.CountOptions) (int64, error) {
	count, err := u.db.Collection(usuarioName).CountDocuments(ctx, filter, opts...)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (u *usuarioDatabase) InsertOne(ctx context.Context, usuario models.Usuario) (InsertOneResultHelper, error) {
	res, err := u.db.Collection(usuarioName).InsertOne(ctx, usuario)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (u *usuarioDatabase) DeleteOne(ctx context.Context, filter interface{}) (int64, error) {
	return u.db.Collection(usuarioName).DeleteOne(ctx, filter)
}
