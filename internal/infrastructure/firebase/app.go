package firebase

import (
	"context"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	fbapp "firebase.google.com/go/v4"
	"google.golang.org/api/option"

	"rentory/pkg/config"
	"rentory/pkg/logger"
)

// CredentialsOption picks the service account credentials: inline JSON
// first (production), then a key file (local development).
func CredentialsOption(cfg *config.Config) (option.ClientOption, error) {
	if cfg.FirebaseServiceAccountJSON != "" {
		logger.Info("Using Firebase service account from environment variable")
		return option.WithCredentialsJSON([]byte(cfg.FirebaseServiceAccountJSON)), nil
	}

	path := cfg.FirebaseServiceAccountPath
	if path == "" {
		return nil, fmt.Errorf("FIREBASE_SERVICE_ACCOUNT_JSON or FIREBASE_SERVICE_ACCOUNT_PATH is required for the firestore store")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("service account file does not exist: %s", path)
	}

	logger.Info("Using Firebase service account from file: %s", path)
	return option.WithCredentialsFile(path), nil
}

// NewFirestoreClient initializes the Firebase app for the configured project
// and returns its Firestore client. The caller closes it.
func NewFirestoreClient(ctx context.Context, cfg *config.Config) (*firestore.Client, error) {
	if cfg.FirebaseProject == "" {
		return nil, fmt.Errorf("FIREBASE_PROJECT_ID is required for the firestore store")
	}

	opt, err := CredentialsOption(cfg)
	if err != nil {
		return nil, err
	}

	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase: %w", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Firestore client: %w", err)
	}
	return client, nil
}
