package firebase

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	credentials "cloud.google.com/go/iam/credentials/apiv1"
	"cloud.google.com/go/storage"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"sewalink/backend/internal/config"
)

// Clients bundles the Firebase and GCP clients the server talks to.
type Clients struct {
	App       *firebase.App
	Auth      *auth.Client
	Firestore *firestore.Client
	Storage   *storage.Client
	Messaging *messaging.Client
	IAM       *credentials.IamCredentialsClient

	ProjectID string
	Bucket    string
}

func NewClients(ctx context.Context, cfg config.Config) (*Clients, error) {
	if cfg.ProjectID == "" {
		return nil, fmt.Errorf("missing FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT")
	}

	// On Cloud Run Application Default Credentials apply. Locally either
	// FIREBASE_SERVICE_ACCOUNT_JSON (raw json) or GOOGLE_APPLICATION_CREDENTIALS (path).
	var opts []option.ClientOption
	if raw := os.Getenv("FIREBASE_SERVICE_ACCOUNT_JSON"); raw != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(raw)))
	} else if cred := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"); cred != "" {
		opts = append(opts, option.WithCredentialsFile(cred))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, err
	}

	fs, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, err
	}

	st, err := storage.NewClient(ctx, opts...)
	if err != nil {
		_ = fs.Close()
		return nil, err
	}

	msg, err := app.Messaging(ctx)
	if err != nil {
		log.Printf("[firebase] messaging disabled: %v", err)
		msg = nil
	}

	// only needed to sign upload URLs
	iam, err := credentials.NewIamCredentialsClient(ctx, opts...)
	if err != nil {
		log.Printf("[firebase] iam credentials client unavailable: %v", err)
		iam = nil
	}

	return &Clients{
		App:       app,
		Auth:      authClient,
		Firestore: fs,
		Storage:   st,
		Messaging: msg,
		IAM:       iam,
		ProjectID: cfg.ProjectID,
		Bucket:    cfg.StorageBucket,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Firestore != nil {
		_ = c.Firestore.Close()
	}
	if c.Storage != nil {
		_ = c.Storage.Close()
	}
	if c.IAM != nil {
		_ = c.IAM.Close()
	}
}
