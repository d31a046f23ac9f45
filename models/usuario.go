package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Usuario holds the structure for the usuarios collection in mongo.
// Password and RespuestaSecreta carry bcrypt hashes once committed and are
// excluded from JSON the same way the frontend has always expected.
type Usuario struct {
	ID               primitive.ObjectID `json:"_id" bson:"_id,omitempty"`
	Nombre           string             `json:"nombre" bson:"nombre"`
	Ap               string             `json:"ap" bson:"ap"`
	Am               string             `json:"am" bson:"am"`
	Username         string             `json:"username" bson:"username"`
	Email            string             `json:"email" bson:"email"`
	Password         string             `json:"-" bson:"password"`
	Telefono         string             `json:"telefono" bson:"telefono"`
	PreguntaSecreta  string             `json:"preguntaSecreta" bson:"preguntaSecreta"`
	RespuestaSecreta string             `json:"-" bson:"respuestaSecreta"`
	Rol              string             `json:"rol" bson:"rol"`
	Verificado       bool               `json:"verificado" bson:"verificado"`
	CreatedAt        interface{}        `json:"createdAt" bson:"createdAt"`
}

// UsuarioPublico is the subset of a committed usuario returned to the client
// after a successful verification
type UsuarioPublico struct {
	ID         string `json:"id"`
	Nombre     string `json:"nombre"`
	Email      string `json:"email"`
	Verificado bool   `json:"verificado"`
}
