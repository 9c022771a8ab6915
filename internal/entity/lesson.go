package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Lesson is a catalog entry with limited seat capacity. Price, location and
// icon are display attributes and are round-tripped as stored.
type Lesson struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"       validate:"required"`
	Topic    string             `bson:"topic"         json:"topic"    validate:"required,max=100"`
	Space    int64              `bson:"space"         json:"space"    validate:"gte=0"`
	Price    float64            `bson:"price"         json:"price"    validate:"gte=0"`
	Location string             `bson:"location"      json:"location" validate:"max=200"`
	Icon     string             `bson:"icon"          json:"icon"     validate:"max=100"`
}
