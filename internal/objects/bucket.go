package objects

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	credentials "cloud.google.com/go/iam/credentials/apiv1"
	credentialspb "cloud.google.com/go/iam/credentials/apiv1/credentialspb"
	"cloud.google.com/go/storage"
)

var (
	ErrNotConfigured = errors.New("object storage not configured")
	ErrNotOwned      = errors.New("not an upload of this user")
)

// Bucket is the Cloud Storage bucket that holds user uploads under users/{uid}/.
type Bucket struct {
	client *storage.Client
	iam    *credentials.IamCredentialsClient
	name   string
	signer string
}

// NewBucket wires a bucket; iam and signer are only needed for signed URLs.
func NewBucket(client *storage.Client, iam *credentials.IamCredentialsClient, name, signer string) *Bucket {
	return &Bucket{client: client, iam: iam, name: name, signer: signer}
}

func (b *Bucket) Name() string { return b.name }

// UserPrefix is the object prefix every upload of uid lives under.
func UserPrefix(uid string) string {
	return "users/" + uid + "/"
}

// DownloadURL is the Firebase Storage URL the front-end renders.
func (b *Bucket) DownloadURL(objectPath string) string {
	return fmt.Sprintf("https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media", b.name, url.PathEscape(objectPath))
}

// SignedUploadURL returns a V4 signed PUT URL for objectPath.
func (b *Bucket) SignedUploadURL(ctx context.Context, objectPath, contentType string, ttl time.Duration) (string, time.Time, error) {
	if b == nil || b.name == "" {
		return "", time.Time{}, fmt.Errorf("%w: FIREBASE_STORAGE_BUCKET is not set", ErrNotConfigured)
	}
	if b.signer == "" {
		return "", time.Time{}, fmt.Errorf("%w: SIGNED_URL_SERVICE_ACCOUNT_EMAIL is not set", ErrNotConfigured)
	}
	if b.iam == nil {
		return "", time.Time{}, fmt.Errorf("%w: IAM credentials client not available", ErrNotConfigured)
	}
	if ttl <= 0 || ttl > time.Hour {
		ttl = 15 * time.Minute
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	exp := time.Now().Add(ttl)

	opts := &storage.SignedURLOptions{
		Scheme:         storage.SigningSchemeV4,
		Method:         "PUT",
		Expires:        exp,
		ContentType:    contentType,
		GoogleAccessID: b.signer,
		SignBytes: func(payload []byte) ([]byte, error) {
			resp, err := b.iam.SignBlob(ctx, &credentialspb.SignBlobRequest{
				Name:    fmt.Sprintf("projects/-/serviceAccounts/%s", b.signer),
				Payload: payload,
			})
			if err != nil {
				return nil, err
			}
			return resp.SignedBlob, nil
		},
	}

	u, err := storage.SignedURL(b.name, objectPath, opts)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign url (check service account + permissions): %w", err)
	}
	return u, exp, nil
}

// RemoveOwned deletes the object behind rawURL when it sits in this bucket
// under uid's prefix. It reports whether anything was deleted.
func (b *Bucket) RemoveOwned(ctx context.Context, uid, rawURL string) (bool, error) {
	if b == nil || b.client == nil {
		return false, nil
	}
	bucket, path, ok := ParseObjectURL(rawURL)
	if !ok || bucket != b.name || !strings.HasPrefix(path, UserPrefix(uid)) {
		return false, nil
	}

	err := b.client.Bucket(b.name).Object(path).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to delete object %s: %w", path, err)
	}
	return true, nil
}

// OwnedUpload returns the object path behind rawURL when it is a kind upload
// of uid in this bucket, i.e. users/{uid}/{kind}/{name}.
func (b *Bucket) OwnedUpload(uid, kind, rawURL string) (string, error) {
	if b == nil || b.name == "" {
		return "", ErrNotConfigured
	}
	bucket, p, ok := ParseObjectURL(rawURL)
	if !ok || bucket != b.name || uid == "" || kind == "" {
		return "", ErrNotOwned
	}
	name := strings.TrimPrefix(p, UserPrefix(uid)+kind+"/")
	if name == p || name == "" || strings.Contains(name, "/") {
		return "", ErrNotOwned
	}
	return p, nil
}

// ParseObjectURL understands gs:// URLs, Firebase download URLs and
// storage.googleapis.com URLs.
func ParseObjectURL(raw string) (bucket, path string, ok bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", "", false
	}

	switch {
	case u.Scheme == "gs":
		bucket = u.Host
		path = strings.TrimPrefix(u.Path, "/")

	case u.Host == "firebasestorage.googleapis.com":
		// /v0/b/{bucket}/o/{escaped object}
		parts := strings.SplitN(strings.TrimPrefix(u.EscapedPath(), "/"), "/", 5)
		if len(parts) != 5 || parts[0] != "v0" || parts[1] != "b" || parts[3] != "o" {
			return "", "", false
		}
		bucket = parts[2]
		if path, err = url.PathUnescape(parts[4]); err != nil {
			return "", "", false
		}

	case u.Host == "storage.googleapis.com":
		parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
		if len(parts) != 2 {
			return "", "", false
		}
		bucket, path = parts[0], parts[1]

	default:
		return "", "", false
	}

	if bucket == "" || path == "" {
		return "", "", false
	}
	return bucket, path, true
}
