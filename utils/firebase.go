// utils/firebase.go
package utils

import (
	"cleanly/config"
	"context"
	"log"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client. Outside
// production the credentials file may be absent; pushes are then disabled
// instead of refusing to boot.
func FirebaseInit() {
	credFile := config.AppConfig.FirebaseCredentialsFile
	if credFile == "" {
		if config.IsProduction() {
			log.Fatal("firebase: FIREBASE_CREDENTIALS_FILE is required in production")
		}
		GetLogger().Warn("firebase: no credentials file configured, push notifications disabled")
		return
	}

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credFile))
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}

	FCMClient = client
}
