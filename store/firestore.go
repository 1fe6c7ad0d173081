package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrNotFound is returned by repository lookups when a document does not
// exist. Callers decide whether that degrades to a default or a 404.
var ErrNotFound = errors.New("document not found")

// Connect opens a Firestore client for the configured project.
func Connect(ctx context.Context) (*firestore.Client, error) {
	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		return nil, fmt.Errorf("GOOGLE_CLOUD_PROJECT not set")
	}

	client, err := firestore.NewClient(ctx, projectID, CredentialOptions()...)
	if err != nil {
		return nil, fmt.Errorf("firestore init failed: %w", err)
	}

	log.Println("Firestore connected for project", projectID)
	return client, nil
}

// CredentialOptions builds client options from GOOGLE_APPLICATION_CREDENTIALS,
// which may hold either inline JSON or a file path.
func CredentialOptions() []option.ClientOption {
	credJSON := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")

	var opts []option.ClientOption
	if credJSON != "" {
		if strings.HasPrefix(credJSON, "{") {
			opts = append(opts, option.WithCredentialsJSON([]byte(credJSON)))
		} else {
			// It's a file path
			opts = append(opts, option.WithCredentialsFile(credJSON))
		}
	}
	return opts
}

// IsNotFound reports whether err means the requested document is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || status.Code(err) == codes.NotFound
}

// IsPrecondition reports whether err is a precondition-class failure. For
// ordered Firestore queries this is what comes back when the composite index
// backing the sort has not been provisioned.
func IsPrecondition(err error) bool {
	return status.Code(err) == codes.FailedPrecondition
}
