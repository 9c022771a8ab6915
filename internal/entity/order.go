package entity

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MethodHomeDelivery is the delivery method that makes address and zip
// mandatory on an order.
const MethodHomeDelivery = "Home Delivery"

type Order struct {
	ID        string       `bson:"_id,omitempty"     json:"orderId,omitempty"`
	FirstName string       `bson:"firstName"         json:"firstName"         validate:"required,alpha,max=100"`
	LastName  string       `bson:"lastName"          json:"lastName"          validate:"required,alpha,max=100"`
	Phone     string       `bson:"phone"             json:"phone"             validate:"required,numeric,min=7,max=15"`
	Method    string       `bson:"method"            json:"method"            validate:"required,max=50"`
	Address   string       `bson:"address,omitempty" json:"address,omitempty" validate:"max=500"`
	Zip       ZipCode      `bson:"zip,omitempty"     json:"zip,omitempty"`
	Items     []*OrderItem `bson:"lessons"           json:"lessons"           validate:"required,min=1,dive"`
	CreatedAt time.Time    `bson:"createdAt"         json:"createdAt,omitempty"`
}

// OrderItem starts as a client-supplied lesson reference (ID) and is
// enriched during reconciliation with the resolved lesson id and topic.
// The raw client id never reaches the store.
type OrderItem struct {
	ID          string             `bson:"-"                     json:"id,omitempty"`
	LessonID    primitive.ObjectID `bson:"lessonId,omitempty"    json:"lessonId,omitempty"`
	LessonTopic string             `bson:"lessonTopic,omitempty" json:"lessonTopic,omitempty"`
	Quantity    int64              `bson:"quantity"              json:"quantity" validate:"required,gte=1"`
}

// ZipCode keeps the textual form of a zip whether the client sent a JSON
// string or a bare number.
type ZipCode string

func (z *ZipCode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*z = ZipCode(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*z = ZipCode(n.String())
	return nil
}

func (z ZipCode) String() string {
	return string(z)
}
