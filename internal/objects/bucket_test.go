package objects

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseObjectURL(t *testing.T) {
	cases := []struct {
		raw    string
		bucket string
		path   string
		ok     bool
	}{
		{"gs://sewalink.appspot.com/users/u1/portfolio/a.png", "sewalink.appspot.com", "users/u1/portfolio/a.png", true},
		{"https://firebasestorage.googleapis.com/v0/b/sewalink.appspot.com/o/users%2Fu1%2Fcover%2Fc.jpg?alt=media&token=x", "sewalink.appspot.com", "users/u1/cover/c.jpg", true},
		{"https://storage.googleapis.com/sewalink.appspot.com/users/u1/a.png", "sewalink.appspot.com", "users/u1/a.png", true},
		{"https://images.unsplash.com/photo-1?w=1200", "", "", false},
		{"https://firebasestorage.googleapis.com/v0/b/only-bucket", "", "", false},
		{"gs://bucket-without-path", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			bucket, path, ok := ParseObjectURL(tc.raw)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.bucket, bucket)
			assert.Equal(t, tc.path, path)
		})
	}
}

func TestDownloadURLRoundTrip(t *testing.T) {
	b := NewBucket(nil, nil, "sewalink.appspot.com", "")
	u := b.DownloadURL("users/u1/avatar/me.png")
	assert.Equal(t, "https://firebasestorage.googleapis.com/v0/b/sewalink.appspot.com/o/users%2Fu1%2Favatar%2Fme.png?alt=media", u)

	bucket, path, ok := ParseObjectURL(u)
	require.True(t, ok)
	assert.Equal(t, "sewalink.appspot.com", bucket)
	assert.Equal(t, "users/u1/avatar/me.png", path)
}

func TestSignedUploadURLNeedsConfig(t *testing.T) {
	_, _, err := NewBucket(nil, nil, "", "").SignedUploadURL(context.Background(), "users/u1/a.png", "", time.Minute)
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, _, err = NewBucket(nil, nil, "b", "").SignedUploadURL(context.Background(), "users/u1/a.png", "", time.Minute)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestRemoveOwnedWithoutClientIsNoop(t *testing.T) {
	removed, err := NewBucket(nil, nil, "b", "").RemoveOwned(context.Background(), "u1", "gs://b/users/u1/a.png")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestOwnedUpload(t *testing.T) {
	b := NewBucket(nil, nil, "sewalink.appspot.com", "")

	p, err := b.OwnedUpload("u1", "avatar", b.DownloadURL("users/u1/avatar/me.png"))
	require.NoError(t, err)
	assert.Equal(t, "users/u1/avatar/me.png", p)

	p, err = b.OwnedUpload("u1", "cover", "gs://sewalink.appspot.com/users/u1/cover/c.jpg")
	require.NoError(t, err)
	assert.Equal(t, "users/u1/cover/c.jpg", p)

	rejected := []struct {
		name, kind, raw string
	}{
		{"other bucket", "avatar", "gs://elsewhere.appspot.com/users/u1/avatar/me.png"},
		{"other user", "avatar", "gs://sewalink.appspot.com/users/u2/avatar/me.png"},
		{"avatar used as cover", "cover", "gs://sewalink.appspot.com/users/u1/avatar/me.png"},
		{"nested path", "avatar", "gs://sewalink.appspot.com/users/u1/avatar/x/me.png"},
		{"prefix only", "avatar", "gs://sewalink.appspot.com/users/u1/avatar/"},
		{"not storage", "avatar", "https://example.com/users/u1/avatar/me.png"},
	}
	for _, tc := range rejected {
		t.Run(tc.name, func(t *testing.T) {
			_, err := b.OwnedUpload("u1", tc.kind, tc.raw)
			assert.ErrorIs(t, err, ErrNotOwned)
		})
	}

	var unset *Bucket
	_, err = unset.OwnedUpload("u1", "avatar", "gs://sewalink.appspot.com/users/u1/avatar/me.png")
	assert.ErrorIs(t, err, ErrNotConfigured)
}
