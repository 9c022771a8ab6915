package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"

	"github.com/brianvoe/gofakeit/v7"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var topics = []string{
	"Math", "English", "Science", "Art", "Music",
	"Chess", "Coding", "Drama", "French", "Karate",
}

func main() {
	mongoURI := flag.String("uri", "mongodb://localhost:27017", "MongoDB connection URI")
	dbName := flag.String("db", "afterschool", "Database name")
	count := flag.Int("count", 10, "Number of lessons to seed")
	drop := flag.Bool("drop", false, "Drop the lessons collection before seeding")

	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(*mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err = client.Disconnect(context.Background()); err != nil {
			log.Printf("Failed to disconnect: %v", err)
		}
	}()

	collection := client.Database(*dbName).Collection("lessons")

	if *drop {
		if err = collection.Drop(ctx); err != nil {
			log.Fatalf("Failed to drop lessons collection: %v", err)
		}
		log.Println("Dropped lessons collection")
	}

	lessons := make([]any, 0, *count)
	for i := range *count {
		lessons = append(lessons, generateFakeLesson(i))
	}

	result, err := collection.InsertMany(ctx, lessons)
	if err != nil {
		log.Fatalf("Failed to insert lessons: %v", err)
	}

	log.Printf("Seeded %d lessons into %s.lessons\n", len(result.InsertedIDs), *dbName)
}

func generateFakeLesson(i int) entity.Lesson {
	topic := topics[i%len(topics)]
	return entity.Lesson{
		Topic:    topic,
		Space:    int64(gofakeit.Number(5, 20)),
		Price:    float64(gofakeit.Number(40, 200)),
		Location: gofakeit.City(),
		Icon:     "fa-" + gofakeit.Word(),
	}
}
