package db

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	FarmersCollection      *mongo.Collection
	AwardsCollection       *mongo.Collection
	CertificatesCollection *mongo.Collection
	VendorOrdersCollection *mongo.Collection
	SnapshotsCollection    *mongo.Collection
	Client                 *mongo.Client
)

// Initialize MongoDB connection
func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	Client, err = mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}

	FarmersCollection = Client.Database("storageguard").Collection("farmers")
	AwardsCollection = Client.Database("storageguard").Collection("awards")
	CertificatesCollection = Client.Database("storageguard").Collection("certificates")
	VendorOrdersCollection = Client.Database("storageguard").Collection("vendororders")
	SnapshotsCollection = Client.Database("storageguard").Collection("snapshots")
}
